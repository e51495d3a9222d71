package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/internal/auth"
	"github.com/univmedia/campusnews/internal/backend"
	"github.com/univmedia/campusnews/internal/charts"
	"github.com/univmedia/campusnews/internal/export"
)

func (s *Service) handleDashboard(c echo.Context) error {
	sess := auth.CurrentSession(c)
	data := s.data(c, s.loc.T("nav.dashboard"))

	stats, err := s.api.PostStats(c.Request().Context(), sess.Token)
	if err != nil {
		data["Error"] = s.loc.T("error.load")
		return c.Render(http.StatusOK, "admin_dashboard", data)
	}

	data["Stats"] = stats
	return c.Render(http.StatusOK, "admin_dashboard", data)
}

func (s *Service) handleUsersList(c echo.Context) error {
	sess := auth.CurrentSession(c)
	data := s.data(c, s.loc.T("nav.users"))

	users, err := s.api.Users(c.Request().Context(), sess.Token)
	if err != nil {
		data["Error"] = s.loc.T("error.load")
		return c.Render(http.StatusOK, "admin_users", data)
	}

	data["Users"] = users
	return c.Render(http.StatusOK, "admin_users", data)
}

func (s *Service) handleUserStats(c echo.Context) error {
	data := s.data(c, s.loc.T("nav.stats"))
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad user id")
	}

	sess := auth.CurrentSession(c)
	stats, err := s.api.UserStats(c.Request().Context(), id, sess.Token)
	if err != nil {
		data["Error"] = s.loc.T("error.load")
		return c.Render(http.StatusOK, "admin_user_stats", data)
	}

	data["Stats"] = stats
	data["Title"] = stats.Username
	return c.Render(http.StatusOK, "admin_user_stats", data)
}

func (s *Service) handleStats(c echo.Context) error {
	sess := auth.CurrentSession(c)
	data := s.data(c, s.loc.T("nav.stats"))

	stats, err := s.api.PostStats(c.Request().Context(), sess.Token)
	if err != nil {
		data["Error"] = s.loc.T("error.load")
		return c.Render(http.StatusOK, "admin_stats", data)
	}

	data["Stats"] = stats
	return c.Render(http.StatusOK, "admin_stats", data)
}

func (s *Service) handleStatsExport(c echo.Context) error {
	sess := auth.CurrentSession(c)
	stats, err := s.api.PostStats(c.Request().Context(), sess.Token)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "stats unavailable")
	}

	pdf, err := export.StatsReport(stats, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "PDF rendering failed")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="campusnews-stats.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func (s *Service) handleCategoriesChart(c echo.Context) error {
	return s.renderStatsChart(c, "Catégories populaires", func(stats *backend.PostStats) []charts.Entry {
		entries := make([]charts.Entry, 0, len(stats.PopularCategories))
		for _, cat := range stats.PopularCategories {
			entries = append(entries, charts.Entry{Label: cat.Category, Value: cat.Count})
		}
		return entries
	})
}

func (s *Service) handleMostLikedChart(c echo.Context) error {
	return s.renderStatsChart(c, "Publications les plus aimées", func(stats *backend.PostStats) []charts.Entry {
		entries := make([]charts.Entry, 0, len(stats.MostLikedPosts))
		for _, p := range stats.MostLikedPosts {
			entries = append(entries, charts.Entry{Label: p.Title, Value: p.Likes})
		}
		return entries
	})
}

func (s *Service) handleMostVisitedChart(c echo.Context) error {
	return s.renderStatsChart(c, "Publications les plus visitées", func(stats *backend.PostStats) []charts.Entry {
		entries := make([]charts.Entry, 0, len(stats.MostVisitedPosts))
		for _, p := range stats.MostVisitedPosts {
			entries = append(entries, charts.Entry{Label: p.Title, Value: p.Visits})
		}
		return entries
	})
}

func (s *Service) renderStatsChart(c echo.Context, title string, pick func(*backend.PostStats) []charts.Entry) error {
	sess := auth.CurrentSession(c)
	stats, err := s.api.PostStats(c.Request().Context(), sess.Token)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "stats unavailable")
	}

	png, err := charts.Render(title, pick(stats))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "chart rendering failed")
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (s *Service) handleUserChart(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad user id")
	}

	sess := auth.CurrentSession(c)
	stats, err := s.api.UserStats(c.Request().Context(), id, sess.Token)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "stats unavailable")
	}

	entries := make([]charts.Entry, 0, len(stats.FavoriteCategories))
	for _, cat := range stats.FavoriteCategories {
		entries = append(entries, charts.Entry{Label: cat.Category, Value: cat.Count})
	}

	png, err := charts.Render("Catégories favorites", entries)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "chart rendering failed")
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
