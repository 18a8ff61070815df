package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ListComments returns the comments under a blog, newest first.
func (c *Client) ListComments(ctx context.Context, blogID int64) ([]Comment, error) {
	var comments []Comment
	u := fmt.Sprintf("%s/%d/comments", c.Endpoints.Blogs, blogID)
	if err := c.getJSON(ctx, u, "", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// MyComments returns every comment written by the token's user.
func (c *Client) MyComments(ctx context.Context, token string) ([]Comment, error) {
	var comments []Comment
	if err := c.getJSON(ctx, c.Endpoints.Comments+"/my-comments", token, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a comment under a blog and returns the stored comment.
func (c *Client) CreateComment(ctx context.Context, token string, blogID int64, content string) (Comment, error) {
	payload := map[string]string{"content": strings.TrimSpace(content)}
	u := fmt.Sprintf("%s/%d/comments", c.Endpoints.Blogs, blogID)
	env, err := c.do(ctx, http.MethodPost, u, token, payload)
	if err != nil {
		return Comment{}, err
	}
	var comment Comment
	err = decodeData(env, &comment)
	return comment, err
}

// UpdateComment replaces a comment's content. The backend enforces that
// only the author may edit; the client gates the controls beforehand.
func (c *Client) UpdateComment(ctx context.Context, token string, blogID, commentID int64, content string) error {
	payload := map[string]string{"content": strings.TrimSpace(content)}
	u := fmt.Sprintf("%s/%d/comments/%d", c.Endpoints.Blogs, blogID, commentID)
	_, err := c.do(ctx, http.MethodPut, u, token, payload)
	return err
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, token string, blogID, commentID int64) error {
	u := fmt.Sprintf("%s/%d/comments/%d", c.Endpoints.Blogs, blogID, commentID)
	_, err := c.do(ctx, http.MethodDelete, u, token, nil)
	return err
}
