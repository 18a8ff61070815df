package blogsphere

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/reconcile"
)

// toggleTestApp wires an App against a stub backend for direct handler
// invocation. Only the fields the toggle handlers touch are set.
func toggleTestApp(t *testing.T, backend http.HandlerFunc) *App {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := SiteConfig{Name: "BlogSphere", SessionSecret: "test"}
	cfg.setDefaults()
	return &App{
		Config: cfg,
		Echo:   echo.New(),
		API:    api.New(srv.URL),
		guard:  reconcile.NewGuard(),
	}
}

// actionContext builds an authenticated request context for an in-page
// action on blog 5.
func actionContext(a *App, path string, htmx bool) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	c.Set(sessionContextKey, Session{SID: "s1", Token: "tok", User: api.User{ID: 1, Username: "ada"}})
	return c, rec
}

// rejectingBackend serves blog 5 with known counters and refuses every
// toggle with a 400 and a message, the way reaction limits come back.
func rejectingBackend(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/toggle"):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/blogs/5"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":{"id":5,"title":"Go tips","like_count":3,"dislike_count":1}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestReactionToggleRejectedKeepsServerMessage(t *testing.T) {
	a := toggleTestApp(t, rejectingBackend("you have reached the reaction limit"))

	c, rec := actionContext(a, "/blog/5/reactions/like/", true)
	c.SetPath("/blog/:id/reactions/:kind/")
	c.SetParamNames("id", "kind")
	c.SetParamValues("5", "like")

	if err := a.handleReactionToggle(c); err != nil {
		t.Fatalf("handler returned error instead of rendering: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "you have reached the reaction limit") {
		t.Errorf("response should carry the server's message, got %q", body)
	}
	if !strings.Contains(body, ">3</span>") {
		t.Errorf("response should keep the prior like count, got %q", body)
	}
}

func TestReactionToggleRejectedRedirectsWithMessage(t *testing.T) {
	a := toggleTestApp(t, rejectingBackend("you have reached the reaction limit"))

	c, rec := actionContext(a, "/blog/5/reactions/like/", false)
	c.SetPath("/blog/:id/reactions/:kind/")
	c.SetParamNames("id", "kind")
	c.SetParamValues("5", "like")

	if err := a.handleReactionToggle(c); err != nil {
		t.Fatalf("handler returned error instead of redirecting: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/blog/5/?error=") {
		t.Errorf("redirect should return to the blog with an error, got %q", loc)
	}
	if !strings.Contains(loc, "reaction+limit") && !strings.Contains(loc, "reaction%20limit") {
		t.Errorf("redirect should carry the server's message, got %q", loc)
	}
}

func TestBookmarkToggleRejectedKeepsServerMessage(t *testing.T) {
	a := toggleTestApp(t, rejectingBackend("bookmarks are unavailable right now"))

	c, rec := actionContext(a, "/blog/5/bookmark/", true)
	c.SetPath("/blog/:id/bookmark/")
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := a.handleBookmarkToggle(c); err != nil {
		t.Fatalf("handler returned error instead of rendering: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if body := rec.Body.String(); !strings.Contains(body, "bookmarks are unavailable right now") {
		t.Errorf("response should carry the server's message, got %q", body)
	}
}

func TestReactionToggleBackendDownIsBadGateway(t *testing.T) {
	a := toggleTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/blogs/5") {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":{"id":5,"title":"Go tips","like_count":3,"dislike_count":1}}`))
			return
		}
		// Drop the connection so the client sees a transport error
		// rather than an HTTP status.
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				conn.Close()
			}
		}
	})

	c, rec := actionContext(a, "/blog/5/reactions/like/", true)
	c.SetPath("/blog/:id/reactions/:kind/")
	c.SetParamNames("id", "kind")
	c.SetParamValues("5", "like")

	if err := a.handleReactionToggle(c); err != nil {
		t.Fatalf("handler returned error instead of rendering: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}
