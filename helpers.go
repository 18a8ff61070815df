package blogsphere

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/views"
)

const listPageSize = 10

// page assembles the chrome state every template needs: site config,
// the signed-in user, the CSRF token, and any flash carried over a
// redirect in the query string.
func (a *App) page(c echo.Context) views.Page {
	s := currentSession(c)
	p := views.Page{
		Site: views.Site{
			Name:        a.Config.Name,
			URL:         a.Config.URL,
			Description: a.Config.Description,
		},
		CSRF:  csrfToken(c),
		Path:  c.Request().URL.Path,
		Flash: c.QueryParam("flash"),
		Error: c.QueryParam("error"),
	}
	if s.LoggedIn() {
		user := s.User
		p.User = &user
		// The unread badge is best effort; a failed count never blocks
		// the page.
		if n, err := a.API.UnreadCount(c.Request().Context(), s.Token); err == nil {
			p.Unread = n
		}
	}
	return p
}

// redirectFlash redirects to path with a one-shot flash message.
func redirectFlash(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+"?flash="+url.QueryEscape(msg))
}

// redirectError redirects to path with a one-shot error banner.
func redirectError(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+"?error="+url.QueryEscape(msg))
}

// userMessage translates an API error into the text shown to the user.
// Server-provided messages pass through verbatim; everything else gets a
// generic line so internals never leak into a page.
func userMessage(err error) string {
	var apiErr *api.Error
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, api.ErrNotFound):
		return "That item no longer exists."
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return "Something went wrong. Please try again."
	}
}

// blogCards converts API blogs into listing card view models.
func blogCards(blogs []api.Blog) []views.BlogCard {
	cards := make([]views.BlogCard, 0, len(blogs))
	for _, b := range blogs {
		cards = append(cards, views.BlogCard{
			Blog:    b,
			Excerpt: views.Excerpt(b.Content, 180),
			Minutes: views.ReadingMinutes(b.Content),
		})
	}
	return cards
}

// paginate slices one page out of blogs and reports whether more follow.
func paginate(blogs []api.Blog, page, size int) ([]api.Blog, bool) {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(blogs) {
		return nil, false
	}
	end := start + size
	if end > len(blogs) {
		end = len(blogs)
	}
	return blogs[start:end], end < len(blogs)
}

// pageParam reads the ?page= query parameter, defaulting to 1.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// idParam parses a numeric path parameter, returning a 404 for garbage
// so probe URLs never reach the backend.
func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return id, nil
}

// isHTMX reports whether the request came from htmx and wants a partial.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
