package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appconfig "github.com/avila-law/intake-platform/internal/config"
	"github.com/avila-law/intake-platform/internal/leads"
	"github.com/avila-law/intake-platform/internal/observability/metrics"
	"github.com/avila-law/intake-platform/internal/scoring"
	"github.com/avila-law/intake-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting intake-platform scoring worker",
		"env", cfg.Env,
		"interval", cfg.ScoringInterval.String(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DatabaseURL == "" {
		logger.Error("scoring worker requires DATABASE_URL")
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := leads.NewPostgresRepository(pool)

	registry := prometheus.NewRegistry()
	worker := scoring.NewWorker(repo, repo, logger)
	worker.UseMetrics(metrics.NewIntakeMetrics(registry))

	// Metrics endpoint for scrapes; the worker itself serves no traffic.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	go worker.Run(ctx, cfg.ScoringInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scoring worker...")
	cancel()
	logger.Info("scoring worker stopped")
}
