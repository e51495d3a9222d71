package reader

import (
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/internal/backend"
)

func (s *Service) handleLoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", s.data(c, s.loc.T("nav.login")))
}

func (s *Service) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	data := s.data(c, s.loc.T("nav.login"))
	data["Username"] = username

	// Form-level validation stays local; nothing reaches the network.
	if username == "" || password == "" {
		data["Error"] = s.loc.T("validation.required")
		return c.Render(http.StatusOK, "login", data)
	}

	if _, err := s.sessions.Login(c, username, password); err != nil {
		data["Error"] = s.loc.LoginError(err)
		return c.Render(http.StatusOK, "login", data)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Service) handleLogout(c echo.Context) error {
	s.sessions.Logout(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Service) handleRegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", s.data(c, s.loc.T("nav.register")))
}

func (s *Service) handleRegister(c echo.Context) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	data := s.data(c, s.loc.T("nav.register"))
	data["Username"] = username
	data["Email"] = email

	switch {
	case username == "" || email == "" || password == "" || confirm == "":
		data["Error"] = s.loc.T("validation.required")
	case password != confirm:
		data["Error"] = s.loc.T("validation.mismatch")
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			data["Error"] = s.loc.T("validation.email")
		}
	}
	if data["Error"] != nil {
		return c.Render(http.StatusOK, "register", data)
	}

	input := backend.RegisterInput{Username: username, Email: email, Password: password}
	if _, err := s.api.Register(c.Request().Context(), input); err != nil {
		data["Error"] = s.loc.RegisterError(err)
		return c.Render(http.StatusOK, "register", data)
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}
