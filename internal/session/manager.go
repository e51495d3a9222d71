// Package session owns the authentication lifecycle of both apps: it
// persists the bearer token in a per-browser cookie and rebuilds the
// in-memory session from it on every request.
package session

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/internal/backend"
)

const (
	cookieName = "campusnews_token"
	tokenKey   = "token"
)

// Manager is the session context shared by the view layer. It is the
// only writer of the token store; views merely invoke Login/Logout.
type Manager struct {
	store *sessions.CookieStore
	api   *backend.Client
}

// NewManager creates a session manager backed by a cookie store.
func NewManager(secret string, maxAge int, api *backend.Client) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   false, // behind HTTPS in production
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, api: api}
}

// Token returns the persisted token, or "" when logged out.
func (m *Manager) Token(c echo.Context) string {
	sess, err := m.store.Get(c.Request(), cookieName)
	if err != nil {
		// A cookie that fails to decode is the same as no cookie.
		return ""
	}
	token, _ := sess.Values[tokenKey].(string)
	return token
}

// SetToken writes the token through to the cookie store. An empty token
// removes the entry.
func (m *Manager) SetToken(c echo.Context, token string) error {
	sess, _ := m.store.Get(c.Request(), cookieName)
	if token == "" {
		sess.Options.MaxAge = -1
		delete(sess.Values, tokenKey)
	} else {
		sess.Values[tokenKey] = token
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Login authenticates reader credentials. On success the token is
// persisted and the resolved session is returned. On failure nothing
// about the current session changes.
func (m *Manager) Login(c echo.Context, username, password string) (*Session, error) {
	auth, err := m.api.Login(c.Request().Context(), username, password)
	if err != nil {
		return nil, err
	}
	if err := m.SetToken(c, auth.AccessToken); err != nil {
		return nil, err
	}
	return &Session{Token: auth.AccessToken, User: auth.User}, nil
}

// LoginAdmin authenticates dashboard credentials against the admin token
// endpoint, which returns the user inline.
func (m *Manager) LoginAdmin(c echo.Context, username, password string) (*Session, error) {
	auth, err := m.api.LoginAdmin(c.Request().Context(), username, password)
	if err != nil {
		return nil, err
	}
	if err := m.SetToken(c, auth.AccessToken); err != nil {
		return nil, err
	}
	return &Session{
		Token: auth.AccessToken,
		User: &backend.User{
			ID:       auth.UserID,
			Username: auth.Username,
			IsAdmin:  auth.IsAdmin,
		},
	}, nil
}

// Logout clears the token unconditionally. It always succeeds, including
// when already logged out.
func (m *Manager) Logout(c echo.Context) {
	if err := m.SetToken(c, ""); err != nil {
		slog.Debug("clearing session cookie failed", "error", err)
	}
}

// Resolve hydrates the session from the persisted token. When the token
// no longer resolves to a user (expired, revoked) it is discarded — the
// one automatic logout path.
func (m *Manager) Resolve(c echo.Context) *Session {
	token := m.Token(c)
	if token == "" {
		return &Session{}
	}

	user, err := m.api.Me(c.Request().Context(), token)
	if err != nil {
		slog.Info("stored token no longer resolves, logging out", "error", err)
		m.Logout(c)
		return &Session{}
	}

	return &Session{Token: token, User: user}
}
