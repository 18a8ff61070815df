package blogsphere

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/validate"
	"github.com/firatdemir47/blogsphere-web/views"
)

func (a *App) handleWritePage(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	categories, err := a.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}

	form := views.ComposeForm{Categories: categories}
	if draft, err := a.Local.LatestDraft(s.SID, 0); err == nil {
		form.Title = draft.Title
		form.Content = draft.Content
		form.CategoryID = draft.CategoryID
		form.Tags = strings.Join(draft.Tags, ", ")
		form.DraftSavedAt = views.FormatDate(draft.SavedAt)
	}
	return Render(c, views.Compose(a.page(c), form))
}

func (a *App) handleWrite(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	form, err := a.composeForm(c)
	if err != nil {
		return a.renderComposeError(c, form, err)
	}
	ctx := c.Request().Context()

	blog, err := a.API.CreateBlog(ctx, s.Token, api.BlogDraft{
		Title:      form.Title,
		Content:    form.Content,
		CategoryID: form.CategoryID,
	})
	if err != nil {
		return a.renderComposeError(c, form, errors.New(userMessage(err)))
	}

	a.saveTags(c, s.Token, blog.ID, form.Tags)

	if err := a.Local.DeleteDrafts(s.SID, 0); err != nil {
		c.Logger().Errorf("delete drafts: %v", err)
	}
	return redirectFlash(c, views.BlogURL(blog.ID), "Published.")
}

func (a *App) handleEditPage(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	blog, err := a.API.GetBlog(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.page(c)))
		}
		return err
	}
	if blog.AuthorID != s.User.ID {
		return redirectError(c, views.BlogURL(id), "Only the author can edit this blog.")
	}

	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		return err
	}
	tags, err := a.API.BlogTags(ctx, id)
	if err != nil {
		c.Logger().Errorf("tags for blog %d: %v", id, err)
	}

	form := views.ComposeForm{
		BlogID:     id,
		Title:      blog.Title,
		Content:    blog.Content,
		CategoryID: blog.CategoryID,
		Tags:       views.JoinTagNames(tags),
		Categories: categories,
		Editing:    true,
	}
	// A local draft newer than the published version wins.
	if draft, derr := a.Local.LatestDraft(s.SID, id); derr == nil {
		form.Title = draft.Title
		form.Content = draft.Content
		if draft.CategoryID != 0 {
			form.CategoryID = draft.CategoryID
		}
		if len(draft.Tags) > 0 {
			form.Tags = strings.Join(draft.Tags, ", ")
		}
		form.DraftSavedAt = views.FormatDate(draft.SavedAt)
	}
	return Render(c, views.Compose(a.page(c), form))
}

func (a *App) handleEdit(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	form, ferr := a.composeForm(c)
	form.BlogID = id
	form.Editing = true
	if ferr != nil {
		return a.renderComposeError(c, form, ferr)
	}
	ctx := c.Request().Context()

	err = a.API.UpdateBlog(ctx, s.Token, id, api.BlogDraft{
		Title:      form.Title,
		Content:    form.Content,
		CategoryID: form.CategoryID,
	})
	if err != nil {
		return a.renderComposeError(c, form, errors.New(userMessage(err)))
	}

	a.saveTags(c, s.Token, id, form.Tags)

	if err := a.Local.DeleteDrafts(s.SID, id); err != nil {
		c.Logger().Errorf("delete drafts: %v", err)
	}
	return redirectFlash(c, views.BlogURL(id), "Changes saved.")
}

// handleDraftSave is the autosave endpoint. Blog id 0 means the write
// page; anything else is an edit in progress. Saves are silent.
func (a *App) handleDraftSave(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || blogID < 0 {
		return c.NoContent(http.StatusBadRequest)
	}
	categoryID, _ := strconv.ParseInt(c.FormValue("categoryId"), 10, 64)

	draft := Draft{
		// One draft slot per session and blog; each autosave replaces
		// the previous one.
		ID:         fmt.Sprintf("%s:%d", s.SID, blogID),
		SessionID:  s.SID,
		BlogID:     blogID,
		Title:      c.FormValue("title"),
		Content:    c.FormValue("content"),
		CategoryID: categoryID,
		Tags:       splitTags(c.FormValue("tags")),
	}
	if err := a.Local.SaveDraft(draft); err != nil {
		c.Logger().Errorf("save draft: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleTagSave replaces a blog's tag set outside the edit flow.
func (a *App) handleTagSave(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	blog, err := a.API.GetBlog(ctx, id)
	if err != nil {
		return err
	}
	if blog.AuthorID != s.User.ID {
		return redirectError(c, views.BlogURL(id), "Only the author can change tags.")
	}

	a.saveTags(c, s.Token, id, c.FormValue("tags"))
	return redirectFlash(c, views.BlogURL(id), "Tags updated.")
}

// saveTags replaces the blog's tags with the comma-separated set from
// the form. New tag names may grow the site catalog, so it refreshes.
func (a *App) saveTags(c echo.Context, token string, blogID int64, raw string) {
	names := splitTags(raw)
	if err := a.API.SaveBlogTags(c.Request().Context(), token, blogID, names); err != nil {
		c.Logger().Errorf("save tags for blog %d: %v", blogID, err)
		return
	}
	a.catalog.Invalidate()
}

func (a *App) composeForm(c echo.Context) (views.ComposeForm, error) {
	categoryID, _ := strconv.ParseInt(c.FormValue("categoryId"), 10, 64)
	form := views.ComposeForm{
		Title:      strings.TrimSpace(c.FormValue("title")),
		Content:    strings.TrimSpace(c.FormValue("content")),
		CategoryID: categoryID,
		Tags:       c.FormValue("tags"),
	}
	err := validate.First(
		validate.Required("title", form.Title),
		validate.Required("content", form.Content),
	)
	if err == nil && form.CategoryID < 1 {
		err = errors.New("choose a category")
	}
	return form, err
}

func (a *App) renderComposeError(c echo.Context, form views.ComposeForm, err error) error {
	if cats, cerr := a.catalog.Categories(c.Request().Context()); cerr == nil {
		form.Categories = cats
	}
	p := a.page(c)
	p.Error = err.Error()
	return RenderStatus(c, http.StatusBadRequest, views.Compose(p, form))
}
