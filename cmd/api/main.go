// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

// Command api is the entry point for the facility API server.
//
// # Startup Sequence
//
//  1. Structured logger.
//  2. Configuration (environment plus optional .env), validated eagerly.
//  3. Password hasher and token service.
//  4. PostgreSQL pool, then Redis when configured.
//  5. Migrations when RUN_MIGRATIONS is set.
//  6. Repositories, use cases and handlers.
//  7. HTTP server with graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/campusfm/facility/internal/api"
	"github.com/campusfm/facility/internal/platform/config"
	"github.com/campusfm/facility/internal/platform/constants"
	"github.com/campusfm/facility/internal/platform/migration"
	pgstore "github.com/campusfm/facility/internal/platform/postgres"
	redisstore "github.com/campusfm/facility/internal/platform/redis"
	"github.com/campusfm/facility/internal/platform/sec"
	"github.com/campusfm/facility/internal/users/account"
	"github.com/campusfm/facility/internal/users/auth"
)

func main() {
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("session_store", cfg.SessionStore),
		slog.String("password_hasher", cfg.PasswordHasher),
	)

	hasher, err := sec.NewHasher(cfg.PasswordHasher)
	must(log, err, "select password hasher")
	if cfg.PasswordHasher != sec.HasherBcrypt {
		log.Warn("password_hasher_unsalted", slog.String("hasher", cfg.PasswordHasher))
	}

	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.DefaultOptions(), log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("postgres_pool_closing")
		pool.Close()
	}()

	var redisClient *goredis.Client
	if cfg.UsesRedis() {
		redisClient, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("redis_client_closing")
			if closeErr := redisClient.Close(); closeErr != nil {
				log.Error("redis_close_failed", slog.Any("error", closeErr))
			}
		}()
	}

	if cfg.RunMigrations {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	healthDeps := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if redisClient != nil {
		healthDeps.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, redisClient) }
	}
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	userRepository := auth.NewUserRepository(pool)
	var sessionRepository auth.SessionRepository = auth.NewSessionRepository(pool)
	if cfg.SessionStore == config.SessionStoreRedis {
		sessionRepository = auth.NewRedisSessionRepository(redisClient)
	}

	authService := auth.NewService(userRepository, sessionRepository, hasher, tokenService)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(authService, tokenService, authService),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "facility"))
	slog.SetDefault(logger)
	return logger
}

// must logs and exits on a startup error. Only used during wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure", slog.String("step", step), slog.Any("error", err))
		os.Exit(1)
	}
}
