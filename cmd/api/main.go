package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/avila-law/intake-platform/internal/api/router"
	"github.com/avila-law/intake-platform/internal/booking"
	"github.com/avila-law/intake-platform/internal/chat"
	appconfig "github.com/avila-law/intake-platform/internal/config"
	"github.com/avila-law/intake-platform/internal/crm"
	"github.com/avila-law/intake-platform/internal/leads"
	"github.com/avila-law/intake-platform/internal/llm"
	"github.com/avila-law/intake-platform/internal/observability/metrics"
	"github.com/avila-law/intake-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting intake-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Session + transcript storage
	redisOpts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	var sessions booking.SessionStore
	var transcript chat.TranscriptStore
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory session storage", "error", err)
		sessions = booking.NewMemoryStore()
		transcript = chat.NewMemoryTranscriptStore()
	} else {
		sessions = booking.NewRedisStore(redisClient, cfg.SessionTTL)
		transcript = chat.NewRedisTranscriptStore(redisClient, cfg.SessionTTL)
	}

	// Lead storage
	var leadsRepo leads.Repository = leads.NewInMemoryRepository()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		leadsRepo = leads.NewPostgresRepository(pool)
	}

	// CRM + slot supply
	crmClient := crm.NewClient(cfg.CRMAPIKey, cfg.CRMLocationID, cfg.CRMBaseURL, logger)
	var slots booking.SlotSource
	if cfg.CRMCalendarID != "" {
		slots = booking.NewCalendarSlotSource(crmClient, cfg.CRMCalendarID, cfg.FirmTimezone)
	} else {
		logger.Warn("no calendar configured, using mock slot source")
		slots = booking.NewMockSlotSource(nil)
	}

	engine := booking.NewEngine(crmClient, slots, booking.Config{
		FirmPhone:        cfg.FirmPhone,
		Timezone:         cfg.FirmTimezone,
		PipelineID:       cfg.CRMPipelineID,
		StageID:          cfg.CRMStageID,
		OpportunityValue: cfg.OpportunityValue,
	}, logger)

	var completions chat.CompletionClient
	if cfg.OpenAIAPIKey != "" {
		completions = llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
	} else {
		logger.Warn("no OpenAI key configured, chat falls back to canned replies")
	}

	registry := prometheus.NewRegistry()
	intakeMetrics := metrics.NewIntakeMetrics(registry)

	chatService := chat.NewService(engine, sessions, transcript, completions, chat.Config{
		DefaultLanguage: cfg.DefaultLanguage,
		FirmPhone:       cfg.FirmPhone,
	}, logger)
	chatService.UseMetrics(intakeMetrics)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chat.NewHandler(chatService, logger),
		LeadsHandler:       leads.NewHandler(leadsRepo, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: float64(cfg.RateLimitPerSecond),
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
