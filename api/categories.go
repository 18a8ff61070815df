package api

import (
	"context"
	"net/url"
)

// ListCategories returns all categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, c.Endpoints.Categories, "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoriesWithCounts returns all categories with their blog counts,
// as shown on the category grid.
func (c *Client) CategoriesWithCounts(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, c.Endpoints.Categories+"/with-blog-count", "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryByName looks a category up by its display name.
func (c *Client) CategoryByName(ctx context.Context, name string) (Category, error) {
	var category Category
	u := c.Endpoints.Categories + "?name=" + url.QueryEscape(name)
	err := c.getJSON(ctx, u, "", &category)
	return category, err
}
