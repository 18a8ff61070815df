package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListBlogs returns the full blog listing, newest first.
func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	var blogs []Blog
	if err := c.getJSON(ctx, c.Endpoints.Blogs, "", &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetBlog returns a single blog by id.
func (c *Client) GetBlog(ctx context.Context, id int64) (Blog, error) {
	var blog Blog
	err := c.getJSON(ctx, fmt.Sprintf("%s/%d", c.Endpoints.Blogs, id), "", &blog)
	return blog, err
}

// PopularBlogs returns the trending list, ranked by the backend.
func (c *Client) PopularBlogs(ctx context.Context, limit int) ([]Blog, error) {
	var blogs []Blog
	u := fmt.Sprintf("%s/popular?limit=%d", c.Endpoints.Blogs, limit)
	if err := c.getJSON(ctx, u, "", &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// SearchBlogs matches blogs by title, content or author.
func (c *Client) SearchBlogs(ctx context.Context, query string) ([]Blog, error) {
	var blogs []Blog
	u := c.Endpoints.Blogs + "/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, u, "", &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// BlogsByCategory returns the blogs in a category, looked up by name.
func (c *Client) BlogsByCategory(ctx context.Context, categoryName string) ([]Blog, error) {
	var blogs []Blog
	u := c.Endpoints.Blogs + "/category-name/" + url.PathEscape(categoryName)
	if err := c.getJSON(ctx, u, "", &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// BlogDraft is the payload for creating or updating a blog.
type BlogDraft struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID int64  `json:"categoryId"`
}

// CreateBlog publishes a new blog owned by the token's user.
func (c *Client) CreateBlog(ctx context.Context, token string, draft BlogDraft) (Blog, error) {
	env, err := c.do(ctx, http.MethodPost, c.Endpoints.Blogs, token, draft)
	if err != nil {
		return Blog{}, err
	}
	var blog Blog
	err = decodeData(env, &blog)
	return blog, err
}

// UpdateBlog replaces an existing blog's title, content and category.
func (c *Client) UpdateBlog(ctx context.Context, token string, id int64, draft BlogDraft) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", c.Endpoints.Blogs, id), token, draft)
	return err
}

// IncrementView records one view of a blog. The token is attached when
// present so the backend can attribute it, but anonymous views count too.
func (c *Client) IncrementView(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%d/view", c.Endpoints.Blogs, id), token, nil)
	return err
}
