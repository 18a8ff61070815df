// Package blogsphere is a server-rendered web client for the BlogSphere
// blogging platform. It renders every page of the site with Go, Echo and
// templ, and issues REST calls to the separate BlogSphere backend for all
// persistence: blogs, auth, comments, reactions, bookmarks, tags,
// notifications and uploads.
package blogsphere

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/reconcile"
)

// App is the central application. It wires together the API client, the
// session middleware, the local draft/view store, and the page handlers.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	API    *api.Client
	Local  *LocalStore

	catalog      *catalogCache
	guard        *reconcile.Guard
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the API client, local store, middleware and routes,
// and starts the server.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("blogsphere: SessionSecret is required")
	}

	if a.API == nil {
		a.API = api.New(a.Config.APIBaseURL)
	}

	local, err := OpenLocalStore(a.Config.DataPath)
	if err != nil {
		return fmt.Errorf("blogsphere: open local store: %w", err)
	}
	a.Local = local

	a.catalog = newCatalogCache(a.API, a.Config.CatalogTTL)
	a.guard = reconcile.NewGuard()
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/blog/:id/", a.handleBlogDetail)
	e.GET("/trending/", a.handleTrending)
	e.GET("/categories/", a.handleCategories)
	e.GET("/category/:name/", a.handleCategoryDetail)
	e.GET("/search/", a.handleSearch)
	e.GET("/about/", a.handleAbout)
	e.GET("/health/", a.handleHealth)

	// Auth
	e.GET("/login/", a.handleLoginPage)
	e.POST("/login/", a.handleLogin)
	e.GET("/register/", a.handleRegisterPage)
	e.POST("/register/", a.handleRegister)
	e.POST("/logout/", a.handleLogout)
	e.GET("/password-reset/", a.handlePasswordResetPage)
	e.POST("/password-reset/", a.handlePasswordResetRequest)
	e.POST("/password-reset/:token/", a.handlePasswordReset)

	// Account pages (session required)
	e.GET("/profile/", a.handleProfile)
	e.POST("/profile/", a.handleProfileUpdate)
	e.POST("/profile/password/", a.handlePasswordChange)
	e.POST("/profile/avatar/", a.handleProfileAvatar)
	e.GET("/bookmarks/", a.handleBookmarks)
	e.GET("/my-comments/", a.handleMyComments)
	e.GET("/notifications/", a.handleNotifications)

	// Compose
	e.GET("/write/", a.handleWritePage)
	e.POST("/write/", a.handleWrite)
	e.GET("/blog/:id/edit/", a.handleEditPage)
	e.POST("/blog/:id/edit/", a.handleEdit)
	e.POST("/blog/:id/draft/", a.handleDraftSave)

	// In-page actions (HTMX partials)
	e.POST("/blog/:id/reactions/:kind/", a.handleReactionToggle)
	e.POST("/blog/:id/bookmark/", a.handleBookmarkToggle)
	e.POST("/blog/:id/comments/", a.handleCommentCreate)
	e.POST("/blog/:id/comments/:commentID/", a.handleCommentUpdate)
	e.DELETE("/blog/:id/comments/:commentID/", a.handleCommentDelete)
	e.POST("/blog/:id/tags/", a.handleTagSave)
	e.POST("/notifications/:id/read/", a.handleNotificationRead)
	e.POST("/notifications/read-all/", a.handleNotificationsReadAll)
	e.POST("/uploads/", a.handleUpload)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Local != nil {
		return a.Local.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("blogsphere: required environment variable %s is not set", key)
	}
	return v
}
