package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListTags returns the site-wide tag catalog.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.getJSON(ctx, c.Endpoints.Tags, "", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// BlogTags returns the tags attached to one blog.
func (c *Client) BlogTags(ctx context.Context, blogID int64) ([]Tag, error) {
	var tags []Tag
	u := fmt.Sprintf("%s/blogs/%d/tags", c.Endpoints.Tags, blogID)
	if err := c.getJSON(ctx, u, "", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// SaveBlogTags replaces a blog's tag set with the given names. PUT
// semantics: the server-side set becomes exactly this set, not a merge.
func (c *Client) SaveBlogTags(ctx context.Context, token string, blogID int64, names []string) error {
	payload := map[string][]string{"tags": names}
	u := fmt.Sprintf("%s/blogs/%d/tags", c.Endpoints.Tags, blogID)
	_, err := c.do(ctx, http.MethodPut, u, token, payload)
	return err
}
