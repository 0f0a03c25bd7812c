// Package main is the entry point for the landingpress server.
// It loads configuration, connects to services, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"landingpress/internal/analytics"
	"landingpress/internal/cache"
	"landingpress/internal/config"
	"landingpress/internal/content"
	"landingpress/internal/database"
	"landingpress/internal/handlers"
	"landingpress/internal/metrics"
	"landingpress/internal/publish"
	"landingpress/internal/revalidate"
	"landingpress/internal/router"
	"landingpress/internal/store"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"throttle_window", cfg.ThrottleWindow.String(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Redis (content cache + publish throttle).
	redisClient, err := cache.Connect(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Initialize data stores.
	pageStore := store.NewPageStore(db)
	publishLog := store.NewPublishLogStore(db)

	// Published-content cache fronting the public read path.
	contentCache := cache.NewContentCache(redisClient, cfg.ContentCacheTTL)

	// Prometheus instrumentation.
	m := metrics.New(prometheus.DefaultRegisterer)

	// The content validation pipeline with the stock length policy.
	validator := content.NewValidator(content.DefaultLimits())

	// Per-slug publish cooldown, shared across instances via Redis.
	throttle := publish.NewSlugThrottle(redisClient, cfg.ThrottleWindow)
	defer throttle.Stop()

	// External collaborators, both best-effort.
	revalClient := revalidate.NewClient(cfg.RevalidateURL, cfg.RevalidateSecret)
	analyticsClient := analytics.NewClient(cfg.AnalyticsURL, cfg.AnalyticsKey)

	if cfg.RevalidateURL == "" {
		slog.Warn("REVALIDATE_URL not configured — external cache invalidation disabled")
	}
	if cfg.AnalyticsURL == "" {
		slog.Warn("ANALYTICS_URL not configured — analytics domain registration disabled")
	}

	publisher := publish.New(cfg, validator, pageStore, throttle,
		contentCache, revalClient, analyticsClient, publishLog, m)

	// Create handler groups with their dependencies.
	apiHandlers := handlers.NewAPI(validator, publisher)
	publicHandlers := handlers.NewPublic(pageStore, contentCache)
	revalHandlers := handlers.NewRevalidate(cfg.RevalidateSecret, contentCache)
	healthHandlers := handlers.NewHealth(db, redisClient)

	// Set up the Chi router with all middleware and routes.
	r := router.New(apiHandlers, publicHandlers, revalHandlers, healthHandlers)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
