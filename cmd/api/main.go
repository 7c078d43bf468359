// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/drycleaning-api/internal/admin"
	"github.com/carterperez-dev/drycleaning-api/internal/auth"
	"github.com/carterperez-dev/drycleaning-api/internal/config"
	"github.com/carterperez-dev/drycleaning-api/internal/core"
	"github.com/carterperez-dev/drycleaning-api/internal/health"
	"github.com/carterperez-dev/drycleaning-api/internal/ledger"
	"github.com/carterperez-dev/drycleaning-api/internal/middleware"
	"github.com/carterperez-dev/drycleaning-api/internal/server"
	"github.com/carterperez-dev/drycleaning-api/internal/user"
)

const (
	drainDelay = 5 * time.Second

	credentialRequestsPerMinute = 10
	credentialBurst             = 5
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	genKeys := flag.Bool("genkeys", false, "write a new ES256 key pair and exit")
	keyDir := flag.String("keydir", "keys", "directory for -genkeys output")
	flag.Parse()

	if *genKeys {
		if err := generateKeys(*keyDir); err != nil {
			slog.Error("key generation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func generateKeys(dir string) error {
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
		return err
	}

	fmt.Printf("wrote %s and %s\n", privatePath, publicPath)
	return nil
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if _, err := os.Stat(configPath); err != nil {
		configPath = ""
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(ctx, db.DB.DB); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.Session)
	if err != nil {
		return err
	}
	logger.Info("session issuer initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
		"ttl", jwtManager.TTL(),
	)

	metrics := middleware.NewMetrics()

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, user.NewTransactor(db.DB), logger)
	userHandler := user.NewHandler(userSvc)
	metrics.Register(userSvc.Collectors()...)

	authSvc := auth.NewService(
		userSvc,
		jwtManager,
		auth.NewRedisRevocationList(redis.Client),
		logger,
	)
	authHandler := auth.NewHandler(authSvc, auth.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
		TTL:    jwtManager.TTL(),
	}, logger)

	ledgerSvc := ledger.NewService(ledger.ServiceConfig{
		Store:       ledger.NewRedisStore(redis.Client),
		KeyPrefix:   cfg.Ledger.KeyPrefix,
		DueSoonDays: cfg.Ledger.DueSoonDays,
		Location:    cfg.Ledger.Location(),
		Logger:      logger,
	})
	ledgerHandler := ledger.NewHandler(ledgerSvc)
	metrics.Register(ledgerSvc.Collectors()...)

	healthHandler := health.NewHandler(
		cfg.App.Name,
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Ledger:     ledgerSvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Instrument)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	if cfg.Metrics.Enabled {
		router.Method("GET", cfg.Metrics.Path, metrics.Handler())
	}

	authenticator := middleware.Authenticator(authSvc, cfg.Session.CookieName)
	ownerOnly := middleware.RequireRole(userSvc, auth.RoleOwner)
	credentialLimit := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				credentialRequestsPerMinute,
				credentialBurst,
			),
			KeyFunc:  middleware.KeyByIPAndEndpoint,
			FailOpen: true,
		},
	).Handler

	router.Route(cfg.Server.APIPrefix, func(r chi.Router) {
		r.Get("/", healthHandler.Index)

		authHandler.RegisterRoutes(r, authenticator, credentialLimit)
		userHandler.RegisterRoutes(r, authenticator)
		ledgerHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, ownerOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
