package blogsphere

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/validate"
	"github.com/firatdemir47/blogsphere-web/views"
)

func (a *App) handleLoginPage(c echo.Context) error {
	if currentSession(c).LoggedIn() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return Render(c, views.Login(a.page(c), ""))
}

func (a *App) handleLogin(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if !a.loginLimiter.Allow(c.RealIP()) {
		p := a.page(c)
		p.Error = "Too many login attempts. Please wait a minute and try again."
		return RenderStatus(c, http.StatusTooManyRequests, views.Login(p, email))
	}

	if err := validate.First(
		validate.Required("email", email),
		validate.Email(email),
		validate.Required("password", password),
	); err != nil {
		p := a.page(c)
		p.Error = err.Error()
		return RenderStatus(c, http.StatusBadRequest, views.Login(p, email))
	}

	token, user, err := a.API.Login(c.Request().Context(), api.Credentials{Email: email, Password: password})
	if err != nil {
		c.Logger().Infof("login failed for %s: %v", email, err)
		p := a.page(c)
		p.Error = userMessage(err)
		return RenderStatus(c, http.StatusUnauthorized, views.Login(p, email))
	}

	if err := setSession(c, token, user); err != nil {
		return err
	}
	return redirectFlash(c, "/", "Welcome back, "+user.DisplayName()+".")
}

func (a *App) handleRegisterPage(c echo.Context) error {
	if currentSession(c).LoggedIn() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return Render(c, views.Register(a.page(c), views.RegisterForm{}))
}

func (a *App) handleRegister(c echo.Context) error {
	form := views.RegisterForm{
		Username:  strings.TrimSpace(c.FormValue("username")),
		Email:     strings.TrimSpace(c.FormValue("email")),
		FirstName: strings.TrimSpace(c.FormValue("firstName")),
		LastName:  strings.TrimSpace(c.FormValue("lastName")),
	}
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	if err := validate.First(
		validate.Required("username", form.Username),
		validate.MinLen("username", form.Username, 3),
		validate.Required("email", form.Email),
		validate.Email(form.Email),
		validate.Password(password),
		validate.Match(password, confirm),
	); err != nil {
		p := a.page(c)
		p.Error = err.Error()
		return RenderStatus(c, http.StatusBadRequest, views.Register(p, form))
	}

	err := a.API.Register(c.Request().Context(), api.Registration{
		Username:  form.Username,
		Email:     form.Email,
		Password:  password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		p := a.page(c)
		p.Error = userMessage(err)
		return RenderStatus(c, http.StatusBadRequest, views.Register(p, form))
	}
	return redirectFlash(c, "/login/", "Account created. Log in to get started.")
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearSession(c); err != nil {
		c.Logger().Errorf("clear session: %v", err)
	}
	return redirectFlash(c, "/", "You're logged out.")
}

func (a *App) handlePasswordResetPage(c echo.Context) error {
	if token := strings.TrimSpace(c.QueryParam("token")); token != "" {
		return Render(c, views.PasswordResetForm(a.page(c), token))
	}
	return Render(c, views.PasswordResetRequest(a.page(c), ""))
}

func (a *App) handlePasswordResetRequest(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	if err := validate.First(
		validate.Required("email", email),
		validate.Email(email),
	); err != nil {
		p := a.page(c)
		p.Error = err.Error()
		return RenderStatus(c, http.StatusBadRequest, views.PasswordResetRequest(p, email))
	}
	// Always the same answer, so the form can't be used to probe which
	// emails have accounts.
	if err := a.API.RequestPasswordReset(c.Request().Context(), email); err != nil {
		c.Logger().Errorf("password reset request: %v", err)
	}
	return redirectFlash(c, "/login/", "If that email has an account, a reset link is on its way.")
}

func (a *App) handlePasswordReset(c echo.Context) error {
	token := c.Param("token")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	if err := validate.First(
		validate.Password(password),
		validate.Match(password, confirm),
	); err != nil {
		p := a.page(c)
		p.Error = err.Error()
		return RenderStatus(c, http.StatusBadRequest, views.PasswordResetForm(p, token))
	}

	if err := a.API.ResetPassword(c.Request().Context(), token, password); err != nil {
		p := a.page(c)
		p.Error = userMessage(err)
		return RenderStatus(c, http.StatusBadRequest, views.PasswordResetForm(p, token))
	}
	return redirectFlash(c, "/login/", "Password updated. Log in with your new password.")
}
