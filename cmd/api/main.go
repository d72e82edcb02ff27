// Package main is the entry point for the Farm Manager finance API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/farm-manager/backend/config"
	"github.com/farm-manager/backend/internal/infra/cache"
	"github.com/farm-manager/backend/internal/infra/db"
	"github.com/farm-manager/backend/internal/infra/dependency"
	"github.com/farm-manager/backend/internal/infra/server/router"
	"github.com/farm-manager/backend/internal/integration/entrypoint/controller"
	"github.com/farm-manager/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Farm Manager finance API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"windowDays", cfg.Finance.WindowDays,
		"timezone", cfg.Finance.Location.String(),
	)

	// Initialize Redis when series caching is enabled
	var redisClient *redis.Client
	if cfg.Finance.CacheEnabled {
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, running without series cache", "error", err)
		} else {
			redisClient = client
			defer func() {
				if err := redisClient.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
		}
	}

	// Initialize database connection
	var r *router.Router
	var rateLimiterCleanup func()

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without finance routes",
			"error", err,
		)
		r = router.NewRouter(controller.NewHealthController(func() bool { return false }, nil), nil, nil, nil, cfg.CORS.AllowedOrigins)
	} else {
		// Run database migrations
		if err := database.AutoMigrate(model.AllModels()...); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		injector := dependency.NewInjector(cfg, database, redisClient, nil)
		r = injector.Router
		rateLimiterCleanup = injector.RateLimiter.Cleanup

		slog.Info("Finance dashboard initialized successfully",
			"cacheEnabled", redisClient != nil,
		)
	}

	engine := r.Setup(cfg.Server.Environment)

	// Periodically drop expired rate limit windows
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	if rateLimiterCleanup != nil && cfg.RateLimit.Window > 0 {
		go func() {
			ticker := time.NewTicker(cfg.RateLimit.Window)
			defer ticker.Stop()
			for {
				select {
				case <-cleanupCtx.Done():
					return
				case <-ticker.C:
					rateLimiterCleanup()
				}
			}
		}()
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
