package errors

import (
	"errors"
	"fmt"
)

// upstreamError is satisfied by the store API client's typed error. Declared
// here as an interface to keep the dependency direction one-way.
type upstreamError interface {
	error
	StatusCode() int
	UpstreamMessage() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus  int    `json:"upstream_status,omitempty"`
	UpstreamMessage string `json:"upstream_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var upErr upstreamError
	if errors.As(err, &upErr) {
		d.UpstreamStatus = upErr.StatusCode()
		d.UpstreamMessage = upErr.UpstreamMessage()
	}

	return d
}
