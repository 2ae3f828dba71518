package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/SscSPs/shop_ledger/internal/adapters/database/sqlite"
	"github.com/SscSPs/shop_ledger/internal/adapters/docsync"
	"github.com/SscSPs/shop_ledger/internal/core/services"
	"github.com/SscSPs/shop_ledger/internal/handlers"
	"github.com/SscSPs/shop_ledger/internal/metrics"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/SscSPs/shop_ledger/internal/platform/config"
	"github.com/SscSPs/shop_ledger/pkg/database"
	"github.com/SscSPs/shop_ledger/pkg/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.Setup(os.Stdout, cfg.LogLevel, cfg.IsProduction)

	// Opening the store runs pending migrations; a failed migration is fatal.
	db, err := database.Open(context.Background(), cfg.DBPath, logger)
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close(db, logger)

	ledgerMetrics := metrics.New()
	syncer := docsync.New(cfg.DocSyncURL, cfg.DocSyncTimeout)
	if cfg.DocSyncURL != "" {
		logger.Info("Shop document sync enabled", slog.String("url", cfg.DocSyncURL))
	}

	repos := sqlite.NewRepositoryProvider(db)
	serviceContainer := services.NewServiceContainer(repos, syncer, ledgerMetrics)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	r.Use(middleware.RateLimit(rateLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(ledgerMetrics.Handler()))
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server exited")
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
