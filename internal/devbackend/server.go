// Package devbackend is a local stand-in for the campusnews API: it
// implements the documented HTTP contract over sqlite so the two apps
// and their integration tests can run without the production backend.
package devbackend

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type Server struct {
	store *Store
}

func NewServer(store *Store) *Server {
	return &Server{store: store}
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.POST("/auth/token", s.handleToken)
	api.POST("/auth/token_admin", s.handleTokenAdmin)
	api.GET("/auth/me", s.handleMe)
	api.POST("/auth/register", s.handleRegister)

	// Static post routes first so they never shadow /:id.
	api.GET("/posts/stats", s.handlePostStats)
	api.GET("/posts/my-posts", s.handleMyPosts)
	api.GET("/posts", s.handlePosts)
	api.POST("/posts", s.handleCreatePost)
	api.GET("/posts/:id", s.handlePost)
	api.PUT("/posts/:id", s.handleUpdatePost)
	api.DELETE("/posts/:id", s.handleDeletePost)
	api.POST("/posts/:id/like", s.handleLike)
	api.POST("/posts/:id/visit", s.handleVisit)
	api.GET("/posts/:id/visits", s.handleVisits)
	api.GET("/posts/:id/similar", s.handleSimilar)
	api.GET("/posts/user/:id/recommendations", s.handleRecommendations)

	api.GET("/users", s.handleUsers)
	api.GET("/users/:id/stats", s.handleUserStats)
}

func detail(status int, message string) error {
	return echo.NewHTTPError(status, map[string]string{"detail": message})
}

// bearerUser resolves the Authorization header to a user, or nil when
// the header is absent or does not resolve.
func (s *Server) bearerUser(c echo.Context) *userRow {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	user, err := s.store.userByToken(c.Request().Context(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil
	}
	return user
}

func (s *Server) requireUser(c echo.Context) (*userRow, error) {
	user := s.bearerUser(c)
	if user == nil {
		return nil, detail(http.StatusUnauthorized, "Could not validate credentials")
	}
	return user, nil
}

func (s *Server) authenticate(c echo.Context) (*userRow, error) {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.store.userByUsername(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, detail(http.StatusNotFound, "User not found")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, detail(http.StatusUnauthorized, "Incorrect password")
	}
	return user, nil
}

func (s *Server) issueToken(c echo.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.store.saveToken(c.Request().Context(), token, userID); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Server) handleToken(c echo.Context) error {
	user, err := s.authenticate(c)
	if err != nil {
		return err
	}
	token, err := s.issueToken(c, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *Server) handleTokenAdmin(c echo.Context) error {
	user, err := s.authenticate(c)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return detail(http.StatusUnauthorized, "Not an admin user")
	}
	token, err := s.issueToken(c, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"username":     user.Username,
		"is_admin":     user.IsAdmin,
	})
}

func userJSON(u *userRow) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"is_admin":   u.IsAdmin,
		"created_at": u.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := s.requireUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userJSON(user))
}

func (s *Server) handleRegister(c echo.Context) error {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&input); err != nil {
		return detail(http.StatusBadRequest, "Invalid payload")
	}

	if _, err := s.store.userByUsername(c.Request().Context(), input.Username); err == nil {
		return detail(http.StatusBadRequest, "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	id, err := s.store.createUser(c.Request().Context(), input.Username, input.Email, string(hash), false)
	if err != nil {
		return detail(http.StatusBadRequest, "User already exists")
	}

	user, err := s.store.userByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userJSON(user))
}

func postJSON(p postRow) map[string]any {
	return map[string]any{
		"id":         p.ID,
		"title":      p.Title,
		"content":    p.Content.String,
		"image":      p.Image.String,
		"categorie":  p.Category.String,
		"user_id":    p.UserID,
		"created_at": p.CreatedAt.Format(time.RFC3339),
		"likes":      p.Likes,
		"isliked":    p.IsLiked,
		"visits":     p.Visits,
	}
}

func postListJSON(posts []postRow) []map[string]any {
	out := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		out = append(out, postJSON(p))
	}
	return out
}

func (s *Server) viewerID(c echo.Context) int64 {
	if user := s.bearerUser(c); user != nil {
		return user.ID
	}
	return 0
}

func (s *Server) handlePosts(c echo.Context) error {
	posts, err := s.store.posts(c.Request().Context(), s.viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListJSON(posts))
}

func (s *Server) handleMyPosts(c echo.Context) error {
	user, err := s.requireUser(c)
	if err != nil {
		return err
	}
	posts, err := s.store.postsByAuthor(c.Request().Context(), user.ID, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListJSON(posts))
}

func (s *Server) postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, detail(http.StatusUnprocessableEntity, "Invalid id")
	}
	return id, nil
}

func (s *Server) handlePost(c echo.Context) error {
	id, err := s.postID(c)
	if err != nil {
		return err
	}
	post, err := s.store.postByID(c.Request().Context(), s.viewerID(c), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return detail(http.StatusNotFound, "Post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, postJSON(*post))
}

type postInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"categorie"`
}

func (s *Server) handleCreatePost(c echo.Context) error {
	user, err := s.requireUser(c)
	if err != nil {
		return err
	}
	var input postInput
	if err := c.Bind(&input); err != nil {
		return detail(http.StatusBadRequest, "Invalid payload")
	}
	id, err := s.store.createPost(c.Request().Context(), input.Title, input.Content, input.Image, input.Category, user.ID)
	if err != nil {
		return err
	}
	post, err := s.store.postByID(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postJSON(*post))
}

func (s *Server) handleUpdatePost(c echo.Context) error {
	user, err := s.requireUser(c)
	if err != nil {
		return err
	}
	id, err := s.postID(c)
	if err != nil {
		return err
	}
	var input postInput
	if err := c.Bind(&input); err != nil {
		return detail(http.StatusBadRequest, "Invalid payload")
	}
	if err := s.store.updatePost(c.Request().Context(), id, input.Title, input.Content, input.Image, input.Category); err != nil {
		return err
	}
	post, err := s.store.postByID(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postJSON(*post))
}

func (s *Server) handleDeletePost(c echo.Context) error {
	if _, err := s.requireUser(c); err != nil {
		return err
	}
	id, err := s.postID(c)
	if err != nil {
		return err
	}
	if err := s.store.deletePost(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleLike(c echo.Context) error {
	user, err := s.requireUser(c)
	if err != nil {
		return err
	}
	id, err := s.postID(c)
	if err != nil {
		return err
	}
	if _, err := s.store.postByID(c.Request().Context(), user.ID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return detail(http.StatusNotFound, "Post not found")
		}
		return err
	}
	liked, err := s.store.toggleLike(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":    user.ID,
		"post_id":    id,
		"liked":      liked,
		"created_at": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleVisit(c echo.Context) error {
	id, err := s.postID(c)
	if err != nil {
		return err
	}
	if err := s.store.recordVisit(c.Request().Context(), id, s.viewerID(c), c.RealIP()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"post_id":    id,
		"visit_date": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleVisits(c echo.Context) error {
	id, err := s.postID(c)
	if err != nil {
		return err
	}
	visits, err := s.store.postVisits(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, visits)
}

func (s *Server) handleSimilar(c echo.Context) error {
	id, err := s.postID(c)
	if err != nil {
		return err
	}
	posts, err := s.store.similarPosts(c.Request().Context(), id, 5)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListJSON(posts))
}

func (s *Server) handleRecommendations(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return detail(http.StatusUnprocessableEntity, "Invalid id")
	}
	posts, err := s.store.recommendedPosts(c.Request().Context(), userID, 5)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListJSON(posts))
}

func (s *Server) handlePostStats(c echo.Context) error {
	if _, err := s.requireUser(c); err != nil {
		return err
	}
	ctx := c.Request().Context()

	totalPosts, err := s.store.countRow(ctx, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return err
	}
	totalLikes, err := s.store.countRow(ctx, `SELECT COUNT(*) FROM likes`)
	if err != nil {
		return err
	}
	totalVisits, err := s.store.countRow(ctx, `SELECT COUNT(*) FROM visits`)
	if err != nil {
		return err
	}

	categories, err := s.store.categoryCounts(ctx,
		`SELECT categorie, COUNT(*) FROM posts WHERE categorie IS NOT NULL GROUP BY categorie ORDER BY COUNT(*) DESC`)
	if err != nil {
		return err
	}
	popular := make([]map[string]any, 0, len(categories))
	for _, cat := range categories {
		popular = append(popular, map[string]any{"category": cat.Category, "count": cat.Count})
	}

	mostLiked, err := s.store.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p ORDER BY likes DESC LIMIT 5`, 0)
	if err != nil {
		return err
	}
	mostVisited, err := s.store.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts p ORDER BY visits DESC LIMIT 5`, 0)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total_posts":        totalPosts,
		"total_likes":        totalLikes,
		"total_visits":       totalVisits,
		"popular_categories": popular,
		"most_liked_posts":   postListJSON(mostLiked),
		"most_visited_posts": postListJSON(mostVisited),
	})
}

func (s *Server) handleUsers(c echo.Context) error {
	user, err := s.requireUser(c)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return detail(http.StatusForbidden, "Admin access required")
	}
	users, err := s.store.users(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]map[string]any, 0, len(users))
	for i := range users {
		out = append(out, userJSON(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleUserStats(c echo.Context) error {
	if _, err := s.requireUser(c); err != nil {
		return err
	}
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return detail(http.StatusUnprocessableEntity, "Invalid id")
	}
	ctx := c.Request().Context()

	user, err := s.store.userByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return detail(http.StatusNotFound, "User not found")
		}
		return err
	}

	totalPosts, err := s.store.countRow(ctx, `SELECT COUNT(*) FROM posts WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	totalLikes, err := s.store.countRow(ctx,
		`SELECT COUNT(*) FROM likes l JOIN posts p ON p.id = l.post_id WHERE p.user_id = ?`, userID)
	if err != nil {
		return err
	}
	totalVisits, err := s.store.countRow(ctx,
		`SELECT COUNT(*) FROM visits v JOIN posts p ON p.id = v.post_id WHERE p.user_id = ?`, userID)
	if err != nil {
		return err
	}
	categories, err := s.store.categoryCounts(ctx,
		`SELECT categorie, COUNT(*) FROM posts WHERE user_id = ? AND categorie IS NOT NULL GROUP BY categorie ORDER BY COUNT(*) DESC`, userID)
	if err != nil {
		return err
	}
	favorite := make([]map[string]any, 0, len(categories))
	for _, cat := range categories {
		favorite = append(favorite, map[string]any{"category": cat.Category, "count": cat.Count})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user_id":             user.ID,
		"username":            user.Username,
		"total_posts":         totalPosts,
		"total_likes":         totalLikes,
		"total_visits":        totalVisits,
		"favorite_categories": favorite,
	})
}
