package storeapi

import (
	"context"
	"net/http"

	"github.com/avidalh/electrostore-gateway/pkg/enums"
)

// User mirrors an upstream Usuario record. PasswordHash is exposed by the
// upstream list endpoint and consumed only by the login flow.
type User struct {
	ID           string     `json:"uId"`
	Name         string     `json:"nombre"`
	Email        string     `json:"email"`
	Role         enums.Role `json:"rol"`
	PasswordHash string     `json:"passwordHash,omitempty"`
}

// ListUsers returns every Usuario record.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/Usuario", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUserInput carries the fields accepted by the Usuario create endpoint.
type CreateUserInput struct {
	Name         string     `json:"nombre"`
	Email        string     `json:"email"`
	Role         enums.Role `json:"rol"`
	PasswordHash string     `json:"passwordHash"`
}

// CreateUser registers a new Usuario record.
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/Usuario", input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes the Usuario record with the given id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/Usuario/"+id, nil, nil, nil)
}
