package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// bookmarkStatus is the data block of bookmark endpoints. The status
// endpoint reports isBookmarked; the toggle endpoint reports bookmarked.
type bookmarkStatus struct {
	IsBookmarked *bool `json:"isBookmarked"`
	Bookmarked   *bool `json:"bookmarked"`
}

// IsBookmarked reports whether the token's user bookmarked a blog.
func (c *Client) IsBookmarked(ctx context.Context, token string, blogID int64) (bool, error) {
	var status bookmarkStatus
	u := fmt.Sprintf("%s/blogs/%d/bookmarks/status", c.Endpoints.Bookmarks, blogID)
	if err := c.getJSON(ctx, u, token, &status); err != nil {
		return false, err
	}
	return status.IsBookmarked != nil && *status.IsBookmarked, nil
}

// ToggleBookmark flips the bookmark and returns the server-reported new
// state. The bool result is nil when the server did not report one, in
// which case the caller negates its prior local value.
func (c *Client) ToggleBookmark(ctx context.Context, token string, blogID int64) (*bool, error) {
	u := fmt.Sprintf("%s/blogs/%d/bookmarks/toggle", c.Endpoints.Bookmarks, blogID)
	env, err := c.do(ctx, http.MethodPut, u, token, nil)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, nil
	}
	var status bookmarkStatus
	if err := json.Unmarshal(env.Data, &status); err != nil {
		return nil, nil
	}
	return status.Bookmarked, nil
}

// Bookmarks lists the blogs the token's user bookmarked.
func (c *Client) Bookmarks(ctx context.Context, token string) ([]Blog, error) {
	var blogs []Blog
	if err := c.getJSON(ctx, c.Endpoints.Bookmarks+"/users/bookmarks", token, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}
