package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/userbase/internal/app"
	"github.com/noah-isme/userbase/internal/observability"
	"github.com/noah-isme/userbase/internal/seed"
	"github.com/noah-isme/userbase/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	store := users.NewStore()
	service := users.NewService(store)
	usersHandler := users.NewHandler(logger, service)
	metrics := observability.NewMetrics()

	fetcher := seed.NewFetcher(logger, seed.FetcherConfig{
		URL:         cfg.SeedURL,
		Timeout:     cfg.SeedTimeout,
		MaxAttempts: cfg.SeedMaxAttempts,
		BackoffBase: cfg.SeedBackoffBase,
	})
	orchestrator := seed.NewOrchestrator(logger, fetcher, store)

	router := app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		UsersHandler: usersHandler,
		Metrics:      metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	// Seeding runs off the request-serving path; the server may accept
	// traffic against an initially empty store while it completes.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orchestrator.Run(gctx)
		return nil
	})

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
	_ = g.Wait()
}
