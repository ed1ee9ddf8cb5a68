package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventgallery/api/routes"
	"eventgallery/internal/shared/config"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/database"
	"eventgallery/internal/shared/middleware"
	"eventgallery/internal/shared/storage"
	"eventgallery/pkg/logger"
	"eventgallery/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		appLogger.Info("No .env file found, using system environment variables")
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	store, err := storage.NewDiskStore(cfg.Upload.Path, cfg.Upload.PublicURL)
	if err != nil {
		appLogger.Error("Failed to initialize upload storage", slog.Any("error", err))
		os.Exit(1)
	}

	// Rate limiting needs Redis for its sliding windows
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:        true,
			API:            ratelimit.Limit{Requests: cfg.RateLimit.APIRequests, Window: cfg.RateLimit.APIWindow},
			Auth:           ratelimit.Limit{Requests: cfg.RateLimit.AuthRequests, Window: cfg.RateLimit.AuthWindow},
			Upload:         ratelimit.Limit{Requests: cfg.RateLimit.UploadRequests, Window: cfg.RateLimit.UploadWindow},
			WhitelistedIPs: cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Int("api_requests", cfg.RateLimit.APIRequests),
			slog.Duration("api_window", cfg.RateLimit.APIWindow),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	router := setupRouter(cfg, db, store, rateLimiter, appLogger)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", Version),
			slog.String("build_time", BuildTime),
			slog.String("database", db.Driver()),
			slog.Bool("redis_cache", db.Redis != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, store *storage.DiskStore, rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.MaxMultipartMemory = constants.MultipartMemoryCap

	engine.Use(middleware.RequestLogger(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter, appLogger))
	}

	// Uploaded covers and gallery images
	engine.Static("/uploads", store.Root())

	routes.NewRouter(cfg, db, store, appLogger).SetupRoutes(engine)

	return engine
}
