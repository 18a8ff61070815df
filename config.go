package blogsphere

import "time"

// SiteConfig holds all configuration for the BlogSphere web client.
type SiteConfig struct {
	Name        string // Site name (default "BlogSphere")
	URL         string // Canonical URL of this frontend (default "http://localhost:8080")
	Description string // Site description for meta tags and the feed

	Addr       string // Listen address (default ":8080")
	APIBaseURL string // Backend REST API base URL (default "http://localhost:3000/api")

	SessionSecret string // Required: session cookie encryption secret
	CookieSecure  bool   // Set true for HTTPS

	DataPath       string        // Local SQLite path for drafts and view dedup (default "data/local.db")
	CatalogTTL     time.Duration // Category/tag catalog cache TTL (default 5min)
	MaxUploadFiles int           // Max files per upload batch (default 5)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "BlogSphere"
	}
	if c.URL == "" {
		c.URL = "http://localhost:8080"
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "http://localhost:3000/api"
	}
	if c.DataPath == "" {
		c.DataPath = "data/local.db"
	}
	if c.CatalogTTL == 0 {
		c.CatalogTTL = 5 * time.Minute
	}
	if c.MaxUploadFiles == 0 {
		c.MaxUploadFiles = 5
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
