package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// loginResponse is the one endpoint that answers outside the envelope:
// token and user sit at the top level of the body.
type loginResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, User, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return "", User{}, fmt.Errorf("api: encode credentials: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoints.Auth+"/login", bytes.NewReader(body))
	if err != nil {
		return "", User{}, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", User{}, fmt.Errorf("api: login: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", User{}, fmt.Errorf("api: read response: %w", err)
	}
	var lr loginResponse
	_ = json.Unmarshal(raw, &lr)
	if resp.StatusCode >= 300 {
		msg := lr.Message
		if msg == "" {
			msg = lr.Error
		}
		return "", User{}, &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	if lr.Token == "" {
		return "", User{}, fmt.Errorf("api: login response carried no token")
	}
	return lr.Token, lr.User, nil
}

// Register creates a new account. The caller logs in separately afterwards.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	_, err := c.do(ctx, http.MethodPost, c.Endpoints.Auth+"/register", "", reg)
	return err
}

// RequestPasswordReset asks the backend to mail a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	_, err := c.do(ctx, http.MethodPost, c.Endpoints.PasswordReset+"/request-reset", "", payload)
	return err
}

// ResetPassword sets a new password using a token from the reset mail.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	payload := map[string]string{"password": password, "confirmPassword": password}
	u := c.Endpoints.PasswordReset + "/reset/" + url.PathEscape(token)
	_, err := c.do(ctx, http.MethodPost, u, "", payload)
	return err
}
