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

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/visitordesk/api/internal/assetstore"
	"github.com/visitordesk/api/internal/config"
	"github.com/visitordesk/api/internal/database"
	"github.com/visitordesk/api/internal/handler"
	"github.com/visitordesk/api/internal/imaging"
	"github.com/visitordesk/api/internal/mailer"
	middlewarepkg "github.com/visitordesk/api/internal/middleware"
	"github.com/visitordesk/api/internal/repository"
	"github.com/visitordesk/api/internal/router"
	"github.com/visitordesk/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	visitorsRepo := repository.NewPGXVisitorsRepository(pool)

	store := assetstore.New(&http.Client{}, cfg.AssetStore)
	optimizer := imaging.NewOptimizer(logger)
	welcomeMailer := mailer.New(cfg.Mail, logger)

	visitorsService := service.NewVisitorsService(visitorsRepo, store, optimizer, logger)
	emailService := service.NewEmailService(welcomeMailer, visitorsRepo, logger)

	handlers := router.Handlers{
		Visitors: handler.NewVisitorHandler(visitorsService),
		Auth:     handler.NewAuthHandler(cfg),
		Admin:    handler.NewAdminHandler(visitorsService),
		Email:    handler.NewEmailHandler(emailService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
