package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/internal/session"
)

// Echo context keys set by Middleware.
const (
	SessionKey         = "session"
	IsAuthenticatedKey = "is_authenticated"
)

// Middleware resolves the session once per request and stashes it in the
// Echo context for handlers and templates.
func Middleware(manager *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := manager.Resolve(c)
			c.Set(SessionKey, sess)
			c.Set(IsAuthenticatedKey, sess.IsAuthenticated())
			return next(c)
		}
	}
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentSession(c).IsAuthenticated() {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}

// RequireAdmin additionally insists on the admin flag.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if !sess.IsAuthenticated() {
				return c.Redirect(http.StatusFound, "/login")
			}
			if !sess.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
