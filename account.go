package blogsphere

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/validate"
	"github.com/firatdemir47/blogsphere-web/views"
)

// requireSession returns the session when a user is logged in. The bool
// is false for anonymous visitors, who get sent to the login page.
func requireSession(c echo.Context) (Session, bool) {
	s := currentSession(c)
	return s, s.LoggedIn()
}

func redirectToLogin(c echo.Context) error {
	return redirectError(c, "/login/", "Log in to continue.")
}

func (a *App) handleProfile(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	ctx := c.Request().Context()

	// Fetch fresh so edits made elsewhere show up; the session copy is
	// the fallback when the backend is slow to answer.
	user, err := a.API.Profile(ctx, s.Token)
	if err != nil {
		c.Logger().Errorf("fetch profile: %v", err)
		user = s.User
	}

	blogs, err := a.API.ListBlogs(ctx)
	if err != nil {
		c.Logger().Errorf("list blogs for profile: %v", err)
	}
	var mine []api.Blog
	for _, b := range blogs {
		if b.AuthorID == s.User.ID {
			mine = append(mine, b)
		}
	}
	return Render(c, views.Profile(a.page(c), user, blogCards(mine)))
}

func (a *App) handleProfileUpdate(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}

	upd := api.ProfileUpdate{
		FirstName: strings.TrimSpace(c.FormValue("firstName")),
		LastName:  strings.TrimSpace(c.FormValue("lastName")),
		Email:     strings.TrimSpace(c.FormValue("email")),
	}
	if err := validate.First(
		validate.Required("email", upd.Email),
		validate.Email(upd.Email),
	); err != nil {
		return redirectError(c, "/profile/", err.Error())
	}

	if err := a.API.UpdateProfile(c.Request().Context(), s.Token, upd); err != nil {
		return redirectError(c, "/profile/", userMessage(err))
	}

	// Keep the session copy in sync so the nav shows the new name now.
	user := s.User
	user.FirstName = upd.FirstName
	user.LastName = upd.LastName
	user.Email = upd.Email
	if err := setSession(c, s.Token, user); err != nil {
		c.Logger().Errorf("refresh session profile: %v", err)
	}
	return redirectFlash(c, "/profile/", "Profile saved.")
}

func (a *App) handlePasswordChange(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	current := c.FormValue("current")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	if err := validate.First(
		validate.Required("current password", current),
		validate.Password(password),
		validate.Match(password, confirm),
	); err != nil {
		return redirectError(c, "/profile/", err.Error())
	}

	if err := a.API.ChangePassword(c.Request().Context(), s.Token, current, password); err != nil {
		return redirectError(c, "/profile/", userMessage(err))
	}
	return redirectFlash(c, "/profile/", "Password changed.")
}

func (a *App) handleBookmarks(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	blogs, err := a.API.Bookmarks(c.Request().Context(), s.Token)
	if err != nil {
		return err
	}
	return Render(c, views.Bookmarks(a.page(c), blogCards(blogs)))
}

func (a *App) handleMyComments(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	comments, err := a.API.MyComments(c.Request().Context(), s.Token)
	if err != nil {
		return err
	}
	return Render(c, views.MyComments(a.page(c), comments))
}

func (a *App) handleNotifications(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	items, err := a.API.Notifications(c.Request().Context(), s.Token, 50)
	if err != nil {
		return err
	}
	return Render(c, views.Notifications(a.page(c), items))
}

func (a *App) handleNotificationRead(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := a.API.MarkNotificationRead(c.Request().Context(), s.Token, id); err != nil {
		return redirectError(c, "/notifications/", userMessage(err))
	}
	return c.Redirect(http.StatusSeeOther, "/notifications/")
}

func (a *App) handleNotificationsReadAll(c echo.Context) error {
	s, ok := requireSession(c)
	if !ok {
		return redirectToLogin(c)
	}
	if err := a.API.MarkAllNotificationsRead(c.Request().Context(), s.Token); err != nil {
		return redirectError(c, "/notifications/", userMessage(err))
	}
	return redirectFlash(c, "/notifications/", "All caught up.")
}
