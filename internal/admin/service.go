// Package admin is the dashboard: post management, user tables and the
// statistics pages with charts and PDF export. Everything past login
// requires the admin flag.
package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/internal/auth"
	"github.com/univmedia/campusnews/internal/backend"
	"github.com/univmedia/campusnews/internal/locale"
	"github.com/univmedia/campusnews/internal/session"
	"github.com/univmedia/campusnews/service"
)

type Service struct {
	config   *service.Config
	api      *backend.Client
	sessions *session.Manager
	loc      *locale.Locale
}

func New(config *service.Config, api *backend.Client, sessions *session.Manager) *Service {
	return &Service{
		config:   config,
		api:      api,
		sessions: sessions,
		loc:      locale.French(),
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.Static("/public", "public")
	e.GET("/health", s.handleHealth)
	e.GET("/logout", s.handleLogout)

	withAuth := e.Group("")
	withAuth.Use(auth.Middleware(s.sessions))

	withAuth.GET("/login", s.handleLoginForm)
	withAuth.POST("/login", s.handleLogin)

	withAuth.GET("/", s.handleDashboard, auth.RequireAdmin())

	admin := withAuth.Group("/admin", auth.RequireAdmin())

	admin.GET("/posts", s.handlePostsList)
	admin.GET("/posts/new", s.handlePostForm)
	admin.POST("/posts", s.handleCreatePost)
	admin.GET("/posts/:id/edit", s.handlePostForm)
	admin.POST("/posts/:id", s.handleUpdatePost)
	admin.POST("/posts/:id/delete", s.handleDeletePost)

	admin.GET("/users", s.handleUsersList)
	admin.GET("/users/:id/stats", s.handleUserStats)

	admin.GET("/stats", s.handleStats)
	admin.GET("/stats/export.pdf", s.handleStatsExport)
	admin.GET("/charts/categories.png", s.handleCategoriesChart)
	admin.GET("/charts/most-liked.png", s.handleMostLikedChart)
	admin.GET("/charts/most-visited.png", s.handleMostVisitedChart)
	admin.GET("/charts/users/:id", s.handleUserChart)
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) data(c echo.Context, title string) map[string]any {
	return map[string]any{
		"App":   "dashadmin",
		"L":     s.loc,
		"Auth":  auth.GetAuthContext(c),
		"Title": title,
	}
}
