// Package reader is the public blog site: posts list, post detail with
// likes and visits, recommendations, login and registration.
package reader

import (
	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/internal/auth"
	"github.com/univmedia/campusnews/internal/backend"
	"github.com/univmedia/campusnews/internal/engagement"
	"github.com/univmedia/campusnews/internal/locale"
	"github.com/univmedia/campusnews/internal/session"
	"github.com/univmedia/campusnews/service"
)

type Service struct {
	config   *service.Config
	api      *backend.Client
	sessions *session.Manager
	tracker  *engagement.Tracker
	loc      *locale.Locale
}

func New(config *service.Config, api *backend.Client, sessions *session.Manager) *Service {
	return &Service{
		config:   config,
		api:      api,
		sessions: sessions,
		tracker:  engagement.NewTracker(),
		loc:      locale.Arabic(),
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.Static("/public", "public")
	e.GET("/health", s.handleHealth)

	// Logout clears the cookie; it must work without a resolvable session.
	e.GET("/logout", s.handleLogout)

	withAuth := e.Group("")
	withAuth.Use(auth.Middleware(s.sessions))

	withAuth.GET("/", s.handleHome)
	withAuth.GET("/posts/:id", s.handlePostDetail)
	withAuth.GET("/posts/:id/qr.png", s.handlePostQR)
	withAuth.POST("/posts/:id/like", s.handleLike)

	withAuth.GET("/login", s.handleLoginForm)
	withAuth.POST("/login", s.handleLogin)
	withAuth.GET("/register", s.handleRegisterForm)
	withAuth.POST("/register", s.handleRegister)

	withAuth.GET("/my-posts", s.handleMyPosts, auth.RequireAuth())
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(200, map[string]string{"status": "ok"})
}

// data builds the common render payload every template expects.
func (s *Service) data(c echo.Context, title string) map[string]any {
	return map[string]any{
		"App":   "blognews",
		"L":     s.loc,
		"Auth":  auth.GetAuthContext(c),
		"Title": title,
	}
}
