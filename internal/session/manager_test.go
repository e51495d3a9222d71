package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/univmedia/campusnews/internal/backend"
)

// fakeAPI serves just enough of the backend contract for session tests.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "valid-token", "token_type": "bearer"})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "amina"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testManager(t *testing.T) *Manager {
	t.Helper()
	api := backend.NewClient(fakeAPI(t).URL, 5*time.Second)
	return NewManager("test-secret", 3600, api)
}

// newContext builds an echo context, optionally replaying cookies from a
// previous response so state carries across "requests".
func newContext(prev *httptest.ResponseRecorder) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if prev != nil {
		for _, cookie := range prev.Result().Cookies() {
			req.AddCookie(cookie)
		}
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogin_PersistsTokenAcrossRequests(t *testing.T) {
	m := testManager(t)

	c, rec := newContext(nil)
	sess, err := m.Login(c, "amina", "secret")
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, "valid-token", sess.Token)

	next, _ := newContext(rec)
	assert.Equal(t, "valid-token", m.Token(next))

	resolved := m.Resolve(next)
	assert.True(t, resolved.IsAuthenticated())
	assert.Equal(t, "amina", resolved.User.Username)
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	m := testManager(t)

	c, rec := newContext(nil)
	_, err := m.Login(c, "amina", "wrong")
	require.Error(t, err)
	assert.True(t, backend.IsStatus(err, http.StatusUnauthorized))

	// No cookie was written, so a follow-up request is still anonymous.
	next, _ := newContext(rec)
	assert.Empty(t, m.Token(next))
	assert.False(t, m.Resolve(next).IsAuthenticated())
}

func TestResolve_StaleTokenForcesLogout(t *testing.T) {
	m := testManager(t)

	c, rec := newContext(nil)
	require.NoError(t, m.SetToken(c, "revoked-token"))

	next, nextRec := newContext(rec)
	sess := m.Resolve(next)
	assert.False(t, sess.IsAuthenticated())

	// The failed resolve must also clear the cookie.
	var cleared bool
	for _, cookie := range nextRec.Result().Cookies() {
		if strings.HasPrefix(cookie.Name, "campusnews") && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "stale token should be discarded")
}

func TestLogout_IsIdempotent(t *testing.T) {
	m := testManager(t)

	c, rec := newContext(nil)
	require.NoError(t, m.SetToken(c, "valid-token"))

	next, _ := newContext(rec)
	m.Logout(next)
	m.Logout(next) // second logout is a no-op, not an error

	assert.Empty(t, m.Token(next))
}

func TestResolve_AnonymousWithoutToken(t *testing.T) {
	m := testManager(t)

	c, _ := newContext(nil)
	sess := m.Resolve(c)
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, sess.IsAdmin())
	assert.Zero(t, sess.UserID())
}

func TestSession_TokenWithoutUserIsNotAuthenticated(t *testing.T) {
	sess := &Session{Token: "tok"}
	assert.False(t, sess.IsAuthenticated())

	sess.User = &backend.User{ID: 1}
	assert.True(t, sess.IsAuthenticated())
}
