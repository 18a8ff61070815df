// Package api is the HTTP client for the BlogSphere backend REST API.
// It maps logical resource names to URLs under one configurable base URL,
// attaches the bearer token to authenticated requests, and decodes the
// backend's {success, data} envelope. There is no retry and no batching;
// every call is a single stateless request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Endpoints is the fixed mapping from resource names to base URLs.
type Endpoints struct {
	Blogs         string
	Users         string
	Auth          string
	Categories    string
	Comments      string
	Health        string
	Reactions     string
	Bookmarks     string
	Tags          string
	Notifications string
	Uploads       string
	PasswordReset string
}

// NewEndpoints builds the resource map for a given API base URL,
// e.g. "http://localhost:3000/api".
func NewEndpoints(base string) Endpoints {
	return Endpoints{
		Blogs:         base + "/blogs",
		Users:         base + "/users",
		Auth:          base + "/auth",
		Categories:    base + "/categories",
		Comments:      base + "/comments",
		Health:        base + "/health",
		Reactions:     base + "/reactions",
		Bookmarks:     base + "/bookmarks",
		Tags:          base + "/tags",
		Notifications: base + "/notifications",
		Uploads:       base + "/uploads",
		PasswordReset: base + "/password-reset",
	}
}

// ErrNotFound is returned when the backend reports 404 for a resource.
var ErrNotFound = errors.New("api: not found")

// ErrUnauthorized is returned when the backend rejects the bearer token.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a server-rejected response: a non-2xx status with a JSON body
// carrying a human-readable message. The message is surfaced to the user
// verbatim. The backend is inconsistent about the field name, so both
// {"error": ...} and {"message": ...} bodies are accepted.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
}

// Client issues requests against the BlogSphere backend.
type Client struct {
	Endpoints Endpoints
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (used in tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client for the given API base URL.
func New(base string, opts ...Option) *Client {
	c := &Client{
		Endpoints: NewEndpoints(base),
		http:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the backend's JSON response wrapper. List endpoints return
// data as an array, item endpoints as an object. Error bodies put the
// message in either "error" or "message".
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Action  string          `json:"action"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (e *envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// do sends one request and decodes the envelope. A non-empty token is
// attached as a bearer header. Non-2xx responses become *Error (or the
// ErrNotFound / ErrUnauthorized sentinels); transport failures are
// returned wrapped so callers can distinguish connectivity errors.
func (c *Client) do(ctx context.Context, method, url, token string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}
	var env envelope
	if len(raw) > 0 {
		// Error bodies are sometimes plain text; tolerate bad JSON there.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("api: decode response: %w", err)
		}
	}
	if resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return nil, ErrNotFound
		case http.StatusUnauthorized:
			return nil, ErrUnauthorized
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: env.errorMessage()}
	}
	return &env, nil
}

// getJSON issues a GET and unmarshals the envelope's data field into out.
func (c *Client) getJSON(ctx context.Context, url, token string, out any) error {
	env, err := c.do(ctx, http.MethodGet, url, token, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func decodeData(env *envelope, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("api: decode data: %w", err)
	}
	return nil
}

// Healthy reports whether the backend's health endpoint answers 2xx.
func (c *Client) Healthy(ctx context.Context) bool {
	_, err := c.do(ctx, http.MethodGet, c.Endpoints.Health, "", nil)
	return err == nil
}
