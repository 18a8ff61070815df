package blogsphere

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/firatdemir47/blogsphere-web/api"
)

func catalogBackend(t *testing.T, calls *atomic.Int64) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/categories":
			w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Tech"}]}`))
		case "/tags":
			w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"go"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return api.New(srv.URL)
}

func TestCatalogCacheServesFromMemory(t *testing.T) {
	var calls atomic.Int64
	cache := newCatalogCache(catalogBackend(t, &calls), time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		categories, err := cache.Categories(ctx)
		if err != nil {
			t.Fatalf("categories: %v", err)
		}
		if len(categories) != 1 || categories[0].Name != "Tech" {
			t.Fatalf("categories = %+v", categories)
		}
	}
	tags, err := cache.Tags(ctx)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "go" {
		t.Fatalf("tags = %+v", tags)
	}

	// One load fills both halves: two backend calls total.
	if got := calls.Load(); got != 2 {
		t.Errorf("backend calls = %d, want 2", got)
	}
}

func TestCatalogCacheInvalidate(t *testing.T) {
	var calls atomic.Int64
	cache := newCatalogCache(catalogBackend(t, &calls), time.Minute)
	ctx := context.Background()

	if _, err := cache.Categories(ctx); err != nil {
		t.Fatalf("categories: %v", err)
	}
	cache.Invalidate()
	if _, err := cache.Categories(ctx); err != nil {
		t.Fatalf("categories after invalidate: %v", err)
	}

	if got := calls.Load(); got != 4 {
		t.Errorf("backend calls = %d, want 4 after invalidate", got)
	}
}

func TestCatalogCacheExpires(t *testing.T) {
	var calls atomic.Int64
	cache := newCatalogCache(catalogBackend(t, &calls), 50*time.Millisecond)
	ctx := context.Background()

	if _, err := cache.Categories(ctx); err != nil {
		t.Fatalf("categories: %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	if _, err := cache.Categories(ctx); err != nil {
		t.Fatalf("categories after ttl: %v", err)
	}

	if got := calls.Load(); got != 4 {
		t.Errorf("backend calls = %d, want 4 after expiry", got)
	}
}
