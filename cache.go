package blogsphere

import (
	"context"
	"sync"
	"time"

	"github.com/firatdemir47/blogsphere-web/api"
)

// catalogCache is an in-memory cache of the category list and the tag
// catalog with TTL. Both are read-mostly data fetched from the backend
// and shown on nearly every page, so they are not refetched per request.
type catalogCache struct {
	mu         sync.RWMutex
	categories []api.Category
	tags       []api.Tag
	fetched    time.Time
	ttl        time.Duration
	client     *api.Client
}

func newCatalogCache(client *api.Client, ttl time.Duration) *catalogCache {
	return &catalogCache{client: client, ttl: ttl}
}

func (c *catalogCache) valid() bool {
	return c.categories != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh fetch.
func (c *catalogCache) Invalidate() {
	c.mu.Lock()
	c.categories = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *catalogCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	categories, err := c.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	tags, err := c.client.ListTags(ctx)
	if err != nil {
		return err
	}
	c.categories = categories
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached categories and tags after ensuring the
// cache is fresh. It tries a read lock first; only takes a write lock
// when a reload is needed.
func (c *catalogCache) ensureLoaded(ctx context.Context) ([]api.Category, []api.Tag, error) {
	c.mu.RLock()
	if c.valid() {
		categories, tags := c.categories, c.tags
		c.mu.RUnlock()
		return categories, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.categories, c.tags, nil
}

// Categories returns the cached category list.
func (c *catalogCache) Categories(ctx context.Context) ([]api.Category, error) {
	categories, _, err := c.ensureLoaded(ctx)
	return categories, err
}

// Tags returns the cached tag catalog.
func (c *catalogCache) Tags(ctx context.Context) ([]api.Tag, error) {
	_, tags, err := c.ensureLoaded(ctx)
	return tags, err
}
