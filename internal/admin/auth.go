package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Service) handleLoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_login", s.data(c, s.loc.T("nav.login")))
}

func (s *Service) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	data := s.data(c, s.loc.T("nav.login"))
	data["Username"] = username

	if username == "" || password == "" {
		data["Error"] = s.loc.T("validation.required")
		return c.Render(http.StatusOK, "admin_login", data)
	}

	if _, err := s.sessions.LoginAdmin(c, username, password); err != nil {
		data["Error"] = s.loc.LoginError(err)
		return c.Render(http.StatusOK, "admin_login", data)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Service) handleLogout(c echo.Context) error {
	s.sessions.Logout(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}
