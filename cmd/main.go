package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mendresvon/aura-notes-frontend/internal/api"
	"github.com/mendresvon/aura-notes-frontend/internal/config"
	"github.com/mendresvon/aura-notes-frontend/internal/logger"
	"github.com/mendresvon/aura-notes-frontend/internal/notes"
	"github.com/mendresvon/aura-notes-frontend/internal/session"
	"github.com/mendresvon/aura-notes-frontend/internal/web"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)
	logger.Info("starting aura-notes client",
		"version", buildVersion,
		"date", buildDate,
		"commit", buildCommit)

	sessions, err := session.New(session.NewFileBackend(cfg.Session.TokenFile), logger)
	if err != nil {
		logger.Fatal("failed to initialize session store", "error", err)
	}

	apiClient := api.New(cfg.API.BaseURL, cfg.API.Timeout, sessions, logger)
	controller := notes.NewController(apiClient, sessions, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("failed to initialize renderer", "error", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Use(middleware.Recover())

	handler := web.NewHandler(apiClient, sessions, controller, logger)
	web.RegisterRoutes(e, handler, sessions)

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down cleanly", "error", err)
	}
}
