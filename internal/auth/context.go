// Package auth bridges the session manager and the view layer: a
// middleware that hydrates the session per request, and helpers that
// expose it to handlers and templates.
package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/internal/session"
)

// Context holds the authentication data templates render against.
type Context struct {
	IsAuthenticated bool
	IsAdmin         bool
	Username        string
	UserID          int64
}

// CurrentSession returns the session resolved by Middleware. Handlers
// running outside the middleware get an empty, logged-out session.
func CurrentSession(c echo.Context) *session.Session {
	sess, ok := c.Get(SessionKey).(*session.Session)
	if !ok || sess == nil {
		return &session.Session{}
	}
	return sess
}

// GetAuthContext builds the template-facing view of the current session.
func GetAuthContext(c echo.Context) *Context {
	sess := CurrentSession(c)
	if !sess.IsAuthenticated() {
		return &Context{}
	}
	return &Context{
		IsAuthenticated: true,
		IsAdmin:         sess.IsAdmin(),
		Username:        sess.User.Username,
		UserID:          sess.User.ID,
	}
}

// IsAuthenticated checks the current request's session.
func IsAuthenticated(c echo.Context) bool {
	isAuth, _ := c.Get(IsAuthenticatedKey).(bool)
	return isAuth
}
