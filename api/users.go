package api

import (
	"context"
	"net/http"
)

// Profile returns the token's user profile.
func (c *Client) Profile(ctx context.Context, token string) (User, error) {
	var user User
	err := c.getJSON(ctx, c.Endpoints.Users+"/profile", token, &user)
	return user, err
}

// ProfileUpdate is the editable subset of the profile.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UpdateProfile saves first/last name and email.
func (c *Client) UpdateProfile(ctx context.Context, token string, upd ProfileUpdate) error {
	_, err := c.do(ctx, http.MethodPut, c.Endpoints.Users+"/profile", token, upd)
	return err
}

// ChangePassword swaps the current password for a new one.
func (c *Client) ChangePassword(ctx context.Context, token, current, next string) error {
	payload := map[string]string{"currentPassword": current, "newPassword": next}
	_, err := c.do(ctx, http.MethodPut, c.Endpoints.Users+"/change-password", token, payload)
	return err
}
