// Package main is the entrypoint for the Proledger API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/proledger/proledger/internal/config"
	"github.com/proledger/proledger/internal/handler"
	"github.com/proledger/proledger/internal/metrics"
	"github.com/proledger/proledger/internal/middleware"
	"github.com/proledger/proledger/internal/repository"
	"github.com/proledger/proledger/internal/server"
	"github.com/proledger/proledger/internal/service"
)

func main() {
	ctx := context.Background()

	// Local development convenience; real deployments inject env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.MongoURL, cfg.MongoDatabase)
	if err != nil {
		logger.Error(
			"failed to connect to document store",
			slog.String("error", sanitizeError(err, cfg.MongoURL)),
			slog.String("mongodb_url", redactURL(cfg.MongoURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to document store", "database", cfg.MongoDatabase)

	// Schema validators and indexes are idempotent; ensure on every startup.
	if err := repo.EnsureCollections(ctx); err != nil {
		logger.Error("failed to ensure collections", "error", err)
		os.Exit(1)
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewCollector(registry)

	userService := service.NewUserService(repo, recorder)
	orderService := service.NewOrderService(repo, repo, recorder)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	userHandler := handler.NewUserHandler(userService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Enabled:         cfg.RateLimitEnabled,
		RPS:             cfg.RateLimitRPS,
		Burst:           cfg.RateLimitBurst,
		CleanupInterval: middleware.DefaultRateLimitConfig().CleanupInterval,
	})

	r := setupRouter(h, healthHandler, userHandler, orderHandler, rateLimiter, recorder, registry, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("document store", repo.Close)
	srv.OnShutdown("rate limiter", func(context.Context) error {
		rateLimiter.Stop()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	userHandler *handler.UserHandler,
	orderHandler *handler.OrderHandler,
	rateLimiter *middleware.RateLimiter,
	recorder metrics.Recorder,
	registry *prometheus.Registry,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.BodyLimit(cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Operational endpoints (no rate limit)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Method("GET", "/metrics", metrics.Handler(registry))

	// Root info endpoint
	r.Get("/", h.Root)

	// API endpoints
	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware())

		r.Post("/users", userHandler.Create)
		r.Get("/users", userHandler.List)
		r.Delete("/users/{id}", orderHandler.DeleteUser)

		r.Post("/order", orderHandler.Create)
		r.Get("/orders/{userID}", orderHandler.ListForUser)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
