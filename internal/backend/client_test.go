package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestLogin_SendsFormAndResolvesUser(t *testing.T) {
	var gotContentType, gotAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "amina", r.PostFormValue("username"))
		assert.Equal(t, "secret", r.PostFormValue("password"))
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok-123",
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"id":       7,
			"username": "amina",
			"email":    "amina@example.com",
			"is_admin": false,
		})
	})

	client, server := newTestClient(mux)
	defer server.Close()

	auth, err := client.Login(context.Background(), "amina", "secret")
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "tok-123", auth.AccessToken)
	require.NotNil(t, auth.User)
	assert.Equal(t, int64(7), auth.User.ID)
	assert.Equal(t, "amina", auth.User.Username)
}

func TestLogin_UnknownUserIs404(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "User not found"})
	}))
	defer server.Close()

	_, err := client.Login(context.Background(), "nobody", "secret")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User not found", apiErr.Detail)
}

func TestLogin_WrongPasswordIs401(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect password"})
	}))
	defer server.Close()

	_, err := client.Login(context.Background(), "amina", "wrong")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, IsUnreachable(err))
}

func TestClient_UnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listens anymore

	client := NewClient(server.URL, time.Second)
	_, err := client.Posts(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestPosts_TokenAttachedWhenPresent(t *testing.T) {
	var gotAuth []string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := client.Posts(context.Background(), "tok-abc")
	require.NoError(t, err)
	_, err = client.Posts(context.Background(), "")
	require.NoError(t, err)

	// Anonymous calls carry no Authorization header at all.
	require.Len(t, gotAuth, 2)
	assert.Equal(t, "Bearer tok-abc", gotAuth[0])
	assert.Empty(t, gotAuth[1])
}

func TestRecordVisit_ReportsOutcomeWithoutError(t *testing.T) {
	ok := make(chan bool, 1)
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if <-ok {
			json.NewEncoder(w).Encode(map[string]any{"post_id": 1})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ok <- true
	assert.True(t, client.RecordVisit(context.Background(), 1, ""))
	ok <- false
	assert.False(t, client.RecordVisit(context.Background(), 1, ""))
}

func TestSimilar_FailureYieldsEmpty(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	assert.Empty(t, client.Similar(context.Background(), 3))
	assert.Empty(t, client.Recommendations(context.Background(), 3, "tok"))
	assert.Zero(t, client.PostVisits(context.Background(), 3))
}

func TestPost_DecodesWireFields(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 12, "title": "Rentrée 2026", "content": "...",
			"image": "", "categorie": "Actualités", "user_id": 3,
			"created_at": "2026-02-01T10:00:00Z",
			"likes": 4, "isliked": true, "visits": 20
		}`))
	}))
	defer server.Close()

	post, err := client.Post(context.Background(), 12, "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(12), post.ID)
	assert.Equal(t, "Rentrée 2026", post.Title)
	assert.Equal(t, "Actualités", post.Category)
	assert.Equal(t, 4, post.Likes)
	assert.True(t, post.IsLiked)
	assert.Equal(t, 20, post.Visits)
}

func TestNewPostView_DefaultsImage(t *testing.T) {
	view := NewPostView(Post{ID: 5, Title: "t"})
	assert.Equal(t, DefaultPostImage, view.Image)
	assert.Equal(t, "5", view.ID)

	withImage := NewPostView(Post{ID: 5, Image: "/custom.jpg"})
	assert.Equal(t, "/custom.jpg", withImage.Image)
}

func TestNewPostViews_NeverNil(t *testing.T) {
	views := NewPostViews(nil)
	require.NotNil(t, views)
	assert.Empty(t, views)
}
