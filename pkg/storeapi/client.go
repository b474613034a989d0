package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	headerIdempotencyKey       = "Idempotency-Key"
	errorBodyReadLimit   int64 = 4096
)

var errBaseURLRequired = errors.New("store api base url is required")

// Client wraps the remote ElectroStore REST API consumed by the gateway.
// Every storefront and admin screen ultimately reads or writes through it.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the store API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// APIError carries the status and optional {message} body of a non-2xx
// upstream response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("store api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("store api: status %d", e.Status)
}

// StatusCode returns the upstream HTTP status.
func (e *APIError) StatusCode() int { return e.Status }

// UpstreamMessage returns the server-provided message, if any.
func (e *APIError) UpstreamMessage() string { return e.Message }

// IsNotFound reports whether the error is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Ping verifies upstream reachability with a lightweight list call.
func (c *Client) Ping(ctx context.Context) error {
	var out []Category
	return c.do(ctx, http.MethodGet, "/Categoria", nil, &out, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	if c == nil || c.httpClient == nil {
		return errors.New("store api client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute %s %s request: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeAPIError reads the optional {message} error body. Non-JSON bodies
// are tolerated and leave Message empty; some upstream endpoints return
// plain-text errors.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	if err != nil {
		return apiErr
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = strings.TrimSpace(body.Message)
	}
	return apiErr
}
