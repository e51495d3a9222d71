package devbackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	store, cleanup, err := NewTestStore()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	e := echo.New()
	NewServer(store).RegisterRoutes(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func doForm(t *testing.T, e *echo.Echo, path, username, password string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	form := fmt.Sprintf("username=%s&password=%s", username, password)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func registerUser(t *testing.T, e *echo.Echo, username string) {
	t.Helper()
	rec, _ := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func loginUser(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec, body := doForm(t, e, "/api/auth/token", username, "secret123")
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createPost(t *testing.T, e *echo.Echo, token, title, category string) int64 {
	t.Helper()
	rec, body := doJSON(t, e, http.MethodPost, "/api/posts", token, map[string]string{
		"title":     title,
		"content":   "contenu",
		"categorie": category,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id, ok := body["id"].(float64)
	require.True(t, ok, "post response should carry an id")
	return int64(id)
}

func TestAuthFlow(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "amina")

	t.Run("unknown user is 404", func(t *testing.T) {
		rec, body := doForm(t, e, "/api/auth/token", "nobody", "secret123")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", body["detail"])
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		rec, body := doForm(t, e, "/api/auth/token", "amina", "wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Incorrect password", body["detail"])
	})

	t.Run("token resolves via me", func(t *testing.T) {
		token := loginUser(t, e, "amina")
		rec, body := doJSON(t, e, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "amina", body["username"])
		assert.Equal(t, false, body["is_admin"])
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodGet, "/api/auth/me", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("duplicate registration is 400", func(t *testing.T) {
		rec, body := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
			"username": "amina", "email": "other@example.com", "password": "x",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User already exists", body["detail"])
	})
}

func TestAdminToken(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "reader")

	t.Run("non-admin rejected", func(t *testing.T) {
		rec, body := doForm(t, e, "/api/auth/token_admin", "reader", "secret123")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not an admin user", body["detail"])
	})
}

func TestPostLifecycle(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "amina")
	token := loginUser(t, e, "amina")

	id := createPost(t, e, token, "Rentrée", "Actualités")

	t.Run("anonymous list sees the post", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, "Rentrée", posts[0]["title"])
		assert.Equal(t, "Actualités", posts[0]["categorie"])
		assert.Equal(t, false, posts[0]["isliked"])
	})

	t.Run("update", func(t *testing.T) {
		rec, body := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), token, map[string]string{
			"title": "Rentrée 2026", "content": "mis à jour", "categorie": "Actualités",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Rentrée 2026", body["title"])
	})

	t.Run("my posts requires auth", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodGet, "/api/posts/my-posts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec, body := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Post not found", body["detail"])
	})
}

func TestLikeToggle(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "amina")
	token := loginUser(t, e, "amina")
	id := createPost(t, e, token, "Match de foot", "Sport")

	likePath := fmt.Sprintf("/api/posts/%d/like", id)

	rec, body := doJSON(t, e, http.MethodPost, likePath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["liked"])

	rec, body = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["likes"])
	assert.Equal(t, true, body["isliked"])

	// Second like removes it.
	rec, body = doJSON(t, e, http.MethodPost, likePath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["liked"])

	rec, body = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["likes"])
	assert.Equal(t, false, body["isliked"])
}

func TestLike_RequiresAuthAndExistingPost(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "amina")
	token := loginUser(t, e, "amina")

	rec, _ := doJSON(t, e, http.MethodPost, "/api/posts/1/like", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, e, http.MethodPost, "/api/posts/999/like", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVisits(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "amina")
	token := loginUser(t, e, "amina")
	id := createPost(t, e, token, "Concert", "Culture")

	for i := 0; i < 3; i++ {
		rec, _ := doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/posts/%d/visit", id), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/posts/%d/visits", id), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", strings.TrimSpace(rec.Body.String()))
}

func TestSimilarAndRecommendations(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "amina")
	registerUser(t, e, "karim")
	amina := loginUser(t, e, "amina")
	karim := loginUser(t, e, "karim")

	sport1 := createPost(t, e, amina, "Match 1", "Sport")
	createPost(t, e, amina, "Match 2", "Sport")
	createPost(t, e, amina, "Concert", "Culture")

	t.Run("similar shares the category", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/posts/%d/similar", sport1), nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, "Match 2", posts[0]["title"])
	})

	t.Run("recommendations follow liked categories", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", sport1), karim, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		// Karim's user id is 2: registered second.
		req := httptest.NewRequest(http.MethodGet, "/api/posts/user/2/recommendations", nil)
		recorder := httptest.NewRecorder()
		e.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		var posts []map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &posts))
		require.NotEmpty(t, posts)
		for _, p := range posts {
			assert.Equal(t, "Sport", p["categorie"])
			assert.NotEqual(t, "Match 1", p["title"], "already-liked posts are excluded")
		}
	})
}

func TestPostStatsAggregates(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "amina")
	token := loginUser(t, e, "amina")

	id := createPost(t, e, token, "Colloque", "Recherche")
	createPost(t, e, token, "Séminaire", "Recherche")
	createPost(t, e, token, "Tournoi", "Sport")

	doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", id), token, nil)
	doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/posts/%d/visit", id), "", nil)

	rec, body := doJSON(t, e, http.MethodGet, "/api/posts/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, float64(3), body["total_posts"])
	assert.Equal(t, float64(1), body["total_likes"])
	assert.Equal(t, float64(1), body["total_visits"])

	popular, ok := body["popular_categories"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, popular)
	top := popular[0].(map[string]any)
	assert.Equal(t, "Recherche", top["category"])
	assert.Equal(t, float64(2), top["count"])

	mostLiked, ok := body["most_liked_posts"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, mostLiked)
	assert.Equal(t, "Colloque", mostLiked[0].(map[string]any)["title"])
}

func TestUsersEndpointIsAdminOnly(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "reader")
	token := loginUser(t, e, "reader")

	rec, body := doJSON(t, e, http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", body["detail"])
}

func TestUserStats(t *testing.T) {
	e := setupTestServer(t)
	registerUser(t, e, "amina")
	token := loginUser(t, e, "amina")
	createPost(t, e, token, "Colloque", "Recherche")

	rec, body := doJSON(t, e, http.MethodGet, "/api/users/1/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "amina", body["username"])
	assert.Equal(t, float64(1), body["total_posts"])

	rec, body = doJSON(t, e, http.MethodGet, "/api/users/99/stats", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", body["detail"])
}

func TestSeed(t *testing.T) {
	store, cleanup, err := NewTestStore()
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, store.Seed(t.Context()))

	users, err := store.users(t.Context())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(users), 8)
	assert.Equal(t, "admin", users[0].Username)
	assert.True(t, users[0].IsAdmin)

	// Seeding twice must not duplicate anything.
	require.NoError(t, store.Seed(t.Context()))
	again, err := store.users(t.Context())
	require.NoError(t, err)
	assert.Len(t, again, len(users))
}
