package blogsphere

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/reconcile"
	"github.com/firatdemir47/blogsphere-web/views"
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()

	blogs, err := a.API.ListBlogs(ctx)
	if err != nil {
		return err
	}
	page := pageParam(c)
	slice, hasMore := paginate(blogs, page, listPageSize)

	// Popular sidebar and the category strip are decoration; either may
	// fail without taking the page down.
	popular, err := a.API.PopularBlogs(ctx, 5)
	if err != nil {
		c.Logger().Errorf("popular blogs: %v", err)
		popular = nil
	}
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		c.Logger().Errorf("category catalog: %v", err)
		categories = nil
	}

	return Render(c, views.Home(a.page(c), blogCards(slice), popular, categories, page, hasMore))
}

func (a *App) handleBlogDetail(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	s := currentSession(c)

	blog, err := a.API.GetBlog(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.page(c)))
		}
		return err
	}

	// One view per browser session per blog. The local store decides;
	// the increment itself happens off the request path.
	if first, err := a.Local.MarkViewed(s.SID, id); err == nil && first {
		token := s.Token
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := a.API.IncrementView(ctx, token, id); err != nil {
				a.Echo.Logger.Errorf("increment view for blog %d: %v", id, err)
			}
		}()
		blog.ViewCount++
	}

	comments, err := a.API.ListComments(ctx, id)
	if err != nil {
		c.Logger().Errorf("comments for blog %d: %v", id, err)
	}
	tags, err := a.API.BlogTags(ctx, id)
	if err != nil {
		c.Logger().Errorf("tags for blog %d: %v", id, err)
	}

	reaction := views.ReactionView{LikeCount: blog.LikeCount, DislikeCount: blog.DislikeCount}
	bookmarked := false
	if s.LoggedIn() {
		if ur, err := a.API.UserReaction(ctx, s.Token, id); err == nil {
			reaction.UserReaction = ur
		}
		if bm, err := a.API.IsBookmarked(ctx, s.Token, id); err == nil {
			bookmarked = bm
		}
	}

	bp := views.BlogPage{
		Blog:       blog,
		Minutes:    views.ReadingMinutes(blog.Content),
		Tags:       tags,
		Comments:   comments,
		Reaction:   reaction,
		Bookmarked: bookmarked,
		CanEdit:    s.LoggedIn() && s.User.ID == blog.AuthorID,
		Related:    a.relatedBlogs(ctx, blog),
	}
	return Render(c, views.BlogDetail(a.page(c), bp))
}

// relatedBlogs picks up to four other blogs from the same category.
func (a *App) relatedBlogs(ctx context.Context, blog api.Blog) []api.Blog {
	if blog.CategoryName == "" {
		return nil
	}
	siblings, err := a.API.BlogsByCategory(ctx, blog.CategoryName)
	if err != nil {
		return nil
	}
	var related []api.Blog
	for _, b := range siblings {
		if b.ID == blog.ID {
			continue
		}
		related = append(related, b)
		if len(related) == 4 {
			break
		}
	}
	return related
}

func (a *App) handleTrending(c echo.Context) error {
	blogs, err := a.API.PopularBlogs(c.Request().Context(), 20)
	if err != nil {
		return err
	}
	return Render(c, views.Trending(a.page(c), blogCards(blogs)))
}

func (a *App) handleCategories(c echo.Context) error {
	categories, err := a.API.CategoriesWithCounts(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, views.Categories(a.page(c), categories))
}

func (a *App) handleCategoryDetail(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	ctx := c.Request().Context()

	category, err := a.API.CategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.page(c)))
		}
		return err
	}
	blogs, err := a.API.BlogsByCategory(ctx, category.Name)
	if err != nil {
		return err
	}
	return Render(c, views.CategoryDetail(a.page(c), category, blogCards(blogs)))
}

func (a *App) handleSearch(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	var blogs []api.Blog
	if query != "" {
		var err error
		blogs, err = a.API.SearchBlogs(c.Request().Context(), query)
		if err != nil {
			return err
		}
	}
	return Render(c, views.Search(a.page(c), query, blogCards(blogs)))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, views.About(a.page(c)))
}

func (a *App) handleHealth(c echo.Context) error {
	status := map[string]string{"frontend": "ok", "backend": "ok"}
	code := http.StatusOK
	if !a.API.Healthy(c.Request().Context()) {
		status["backend"] = "unreachable"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, reconcile.ErrBusy) {
		_ = c.String(http.StatusTooManyRequests, "Hold on, still working on the last click.")
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.page(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.page(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
