package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/univmedia/campusnews/internal/devbackend"
	"github.com/univmedia/campusnews/internal/logging"
	"github.com/univmedia/campusnews/service"
)

func main() {
	logging.Setup()

	config, err := service.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := devbackend.NewStore(config.DevBackend.DBPath)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if config.DevBackend.Seed {
		if err := store.Seed(context.Background()); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(service.RequestLogger("devbackend"))

	devbackend.NewServer(store).RegisterRoutes(e)

	addr := fmt.Sprintf(":%s", config.DevAPIPort)
	slog.Info("campusnews dev API starting",
		"url", fmt.Sprintf("http://localhost:%s/api", config.DevAPIPort),
		"database", config.DevBackend.DBPath,
		"environment", config.Environment,
	)

	if err := e.Start(addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
