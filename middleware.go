package blogsphere

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/firatdemir47/blogsphere-web/api"
)

const sessionName = "blogsphere_session"

// sessionContextKey is where the loaded session is injected per request.
// Handlers read the session from here, never from the cookie store directly,
// so logout is observed by everything on the very next request.
const sessionContextKey = "blogsphere.session"

// Session is the signed-in state persisted across requests: the opaque
// bearer token for the backend plus the user profile captured at login.
// Both are cleared together on logout.
type Session struct {
	// SID identifies this browser session to the local store (view
	// dedup, drafts) and the in-flight guard. It exists for anonymous
	// visitors too and carries no backend meaning.
	SID   string
	Token string
	User  api.User
}

// LoggedIn reports whether a bearer token is present.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
	}))

	e.Use(session.Middleware(a.newSessionStore()))
	e.Use(a.loadSession)

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:     middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup:    "header:X-CSRF-Token,form:_csrf,query:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public") ||
				path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt"
		},
	}))

	e.Use(cacheControlMiddleware)
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 7,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// loadSession reads the persisted token and user profile once per request
// and injects them into the request context. An expired token is cleared
// here, before any handler runs or any API call is made.
func (a *App) loadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(sessionName, c)
		if err != nil {
			c.Set(sessionContextKey, Session{SID: uuid.NewString()})
			return next(c)
		}
		var s Session
		if sid, ok := sess.Values["sid"].(string); ok && sid != "" {
			s.SID = sid
		} else {
			s.SID = uuid.NewString()
			sess.Values["sid"] = s.SID
			_ = sess.Save(c.Request(), c.Response())
		}
		if token, ok := sess.Values["token"].(string); ok {
			s.Token = token
		}
		if raw, ok := sess.Values["user"].(string); ok && raw != "" {
			// A corrupt profile is not fatal; the token still works.
			_ = json.Unmarshal([]byte(raw), &s.User)
		}
		if s.Token != "" && tokenExpired(s.Token) {
			c.Logger().Infof("session token expired for user %d, clearing", s.User.ID)
			_ = clearSession(c)
			s = Session{SID: s.SID}
		}
		c.Set(sessionContextKey, s)
		return next(c)
	}
}

// currentSession returns the session loaded by middleware.
func currentSession(c echo.Context) Session {
	s, _ := c.Get(sessionContextKey).(Session)
	return s
}

// setSession persists the bearer token and user profile after login.
func setSession(c echo.Context, token string, user api.User) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	profile, err := json.Marshal(user)
	if err != nil {
		return err
	}
	sess.Values["token"] = token
	sess.Values["user"] = string(profile)
	return sess.Save(c.Request(), c.Response())
}

// clearSession removes the token and user profile together.
func clearSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// tokenExpired inspects the bearer token's exp claim without verifying
// the signature (the backend owns verification). Opaque non-JWT tokens
// are never treated as expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}

// csrfToken extracts the CSRF token from the Echo context for forms.
func csrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			// Pages embed per-user state (nav, reactions), so never share.
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}
