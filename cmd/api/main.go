package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/team-organiser/internal/api/http"
	"github.com/spec-kit/team-organiser/internal/api/http/handlers"
	"github.com/spec-kit/team-organiser/internal/auth"
	"github.com/spec-kit/team-organiser/internal/bootstrap"
	"github.com/spec-kit/team-organiser/internal/config"
	"github.com/spec-kit/team-organiser/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer rt.Close()

	if !rt.Auth.Enabled() {
		logger.Warn("AUTH_PASSPHRASE_HASH not set; mutating routes are unauthenticated")
	}
	authMiddleware := auth.NewAuthMiddleware(rt.Auth.TokenManager(), rt.Auth.Enabled())

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, rt.Metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, rt.Stores.Backend, rt.Stores),
		Auth:           handlers.NewAuthHandler(rt.Auth),
		Roster:         handlers.NewRosterHandler(rt.Organiser),
		Snapshot:       handlers.NewSnapshotHandler(rt.Organiser),
		Metrics:        rt.Metrics,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
