package blogsphere

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/reconcile"
	"github.com/firatdemir47/blogsphere-web/views"
)

// handleReactionToggle flips the user's like or dislike on a blog. At
// most one toggle per session per blog runs at a time; a second click
// while the first is in flight gets ErrBusy instead of a double send.
func (a *App) handleReactionToggle(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		if isHTMX(c) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return redirectToLogin(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	kind := c.Param("kind")
	if kind != reconcile.Like && kind != reconcile.Dislike {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown reaction")
	}

	key := fmt.Sprintf("%s:reaction:%d", s.SID, id)
	if err := a.guard.TryAcquire(key); err != nil {
		return err
	}
	defer a.guard.Release(key)

	ctx := c.Request().Context()

	blog, err := a.API.GetBlog(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	prior := reconcile.ReactionState{
		LikeCount:    blog.LikeCount,
		DislikeCount: blog.DislikeCount,
	}
	if ur, err := a.API.UserReaction(ctx, s.Token, id); err == nil {
		prior.UserReaction = ur
	}

	result, err := a.API.ToggleReaction(ctx, s.Token, id, kind)
	if err != nil {
		// A refused toggle keeps the displayed state and shows the
		// server's own message (reaction limits arrive this way).
		msg := userMessage(err)
		if isHTMX(c) {
			return RenderStatus(c, apiStatus(err), views.ReactionFailure(a.page(c), id, views.ReactionView{
				LikeCount:    prior.LikeCount,
				DislikeCount: prior.DislikeCount,
				UserReaction: prior.UserReaction,
			}, msg))
		}
		return redirectError(c, views.BlogURL(id), msg)
	}
	state := reconcile.Reconcile(prior, result, kind)

	if isHTMX(c) {
		return Render(c, views.ReactionBar(a.page(c), id, views.ReactionView{
			LikeCount:    state.LikeCount,
			DislikeCount: state.DislikeCount,
			UserReaction: state.UserReaction,
		}))
	}
	return c.Redirect(http.StatusSeeOther, views.BlogURL(id))
}

func (a *App) handleBookmarkToggle(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		if isHTMX(c) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return redirectToLogin(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s:bookmark:%d", s.SID, id)
	if err := a.guard.TryAcquire(key); err != nil {
		return err
	}
	defer a.guard.Release(key)

	ctx := c.Request().Context()

	prior := false
	if bm, err := a.API.IsBookmarked(ctx, s.Token, id); err == nil {
		prior = bm
	}
	reported, err := a.API.ToggleBookmark(ctx, s.Token, id)
	if err != nil {
		msg := userMessage(err)
		if isHTMX(c) {
			return RenderStatus(c, apiStatus(err), views.BookmarkFailure(a.page(c), id, prior, msg))
		}
		return redirectError(c, views.BlogURL(id), msg)
	}
	bookmarked := reconcile.Bookmark(prior, reported)

	if isHTMX(c) {
		return Render(c, views.BookmarkButton(a.page(c), id, bookmarked))
	}
	return c.Redirect(http.StatusSeeOther, views.BlogURL(id))
}

func (a *App) handleCommentCreate(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		if isHTMX(c) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return redirectToLogin(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	content := strings.TrimSpace(c.FormValue("content"))
	if content == "" {
		return redirectError(c, views.BlogURL(id), "A comment needs some text.")
	}

	if _, err := a.API.CreateComment(c.Request().Context(), s.Token, id, content); err != nil {
		return redirectError(c, views.BlogURL(id), userMessage(err))
	}
	return a.respondComments(c, id)
}

// handleCommentUpdate also carries deletes from browsers without htmx,
// which tunnel the method through a _method form field.
func (a *App) handleCommentUpdate(c echo.Context) error {
	if strings.EqualFold(c.FormValue("_method"), http.MethodDelete) {
		return a.handleCommentDelete(c)
	}
	s, ok := requireSession(c)
	if !ok {
		if isHTMX(c) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return redirectToLogin(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	commentID, err := idParam(c, "commentID")
	if err != nil {
		return err
	}
	content := strings.TrimSpace(c.FormValue("content"))
	if content == "" {
		return redirectError(c, views.BlogURL(id), "A comment needs some text.")
	}

	if err := a.API.UpdateComment(c.Request().Context(), s.Token, id, commentID, content); err != nil {
		return redirectError(c, views.BlogURL(id), userMessage(err))
	}
	return a.respondComments(c, id)
}

func (a *App) handleCommentDelete(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		if isHTMX(c) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return redirectToLogin(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	commentID, err := idParam(c, "commentID")
	if err != nil {
		return err
	}

	if err := a.API.DeleteComment(c.Request().Context(), s.Token, id, commentID); err != nil {
		return redirectError(c, views.BlogURL(id), userMessage(err))
	}
	return a.respondComments(c, id)
}

// apiStatus maps an API error onto the response status for a failed
// in-page action. Connectivity failures read as a bad gateway; anything
// the server rejected keeps its original status.
func apiStatus(err error) int {
	var apiErr *api.Error
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, api.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		return apiErr.StatusCode
	default:
		return http.StatusBadGateway
	}
}

// respondComments re-renders the comment section after a mutation, as a
// partial for htmx or a redirect back to the blog page otherwise.
func (a *App) respondComments(c echo.Context, blogID int64) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, views.BlogURL(blogID))
	}
	comments, err := a.API.ListComments(c.Request().Context(), blogID)
	if err != nil {
		return err
	}
	return Render(c, views.CommentList(a.page(c), blogID, comments))
}
