package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/univmedia/campusnews/internal/backend"
	"github.com/univmedia/campusnews/internal/logging"
	"github.com/univmedia/campusnews/internal/reader"
	"github.com/univmedia/campusnews/internal/session"
	"github.com/univmedia/campusnews/internal/web"
	"github.com/univmedia/campusnews/service"
	"github.com/univmedia/campusnews/views"
)

func main() {
	logging.Setup()

	config, err := service.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	renderer, err := web.NewRenderer(views.FS)
	if err != nil {
		slog.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(service.RequestLogger("blognews"))
	e.Use(service.SecurityHeaders())

	api := backend.NewClient(config.API.URL, config.API.Timeout)
	sessions := session.NewManager(config.Session.Secret, config.Session.MaxAge, api)

	svc := reader.New(config, api, sessions)
	svc.RegisterRoutes(e)

	addr := fmt.Sprintf(":%s", config.BlogPort)
	slog.Info("campusnews reader starting",
		"url", fmt.Sprintf("http://localhost:%s", config.BlogPort),
		"api", config.API.URL,
		"environment", config.Environment,
	)

	if err := e.Start(addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
