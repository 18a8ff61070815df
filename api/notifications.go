package api

import (
	"context"
	"fmt"
	"net/http"
)

// Notifications returns the newest notifications for the token's user.
func (c *Client) Notifications(ctx context.Context, token string, limit int) ([]Notification, error) {
	var notifications []Notification
	u := fmt.Sprintf("%s/users/notifications?limit=%d", c.Endpoints.Notifications, limit)
	if err := c.getJSON(ctx, u, token, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns how many notifications are unread.
func (c *Client) UnreadCount(ctx context.Context, token string) (int, error) {
	var count struct {
		Count int `json:"count"`
	}
	u := c.Endpoints.Notifications + "/users/notifications/unread/count"
	if err := c.getJSON(ctx, u, token, &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, token string, id int64) error {
	u := fmt.Sprintf("%s/notifications/%d/read", c.Endpoints.Notifications, id)
	_, err := c.do(ctx, http.MethodPut, u, token, nil)
	return err
}

// MarkAllNotificationsRead marks every notification of the user as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, token string) error {
	u := c.Endpoints.Notifications + "/users/notifications/read-all"
	_, err := c.do(ctx, http.MethodPut, u, token, nil)
	return err
}
