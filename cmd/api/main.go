// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the catalog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from the environment (and an optional .env file).
//  3. Open the entity store: PostgreSQL (with migrations) or in-memory.
//  4. Connect the optional collaborators: Redis cache, RabbitMQ events, token verifier.
//  5. Wire the rules engines and their HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/kmdb/internal/api"
	"github.com/taibuivan/kmdb/internal/core/actor"
	"github.com/taibuivan/kmdb/internal/core/genre"
	"github.com/taibuivan/kmdb/internal/core/movie"
	"github.com/taibuivan/kmdb/internal/platform/cache"
	"github.com/taibuivan/kmdb/internal/platform/config"
	"github.com/taibuivan/kmdb/internal/platform/constants"
	"github.com/taibuivan/kmdb/internal/platform/events"
	"github.com/taibuivan/kmdb/internal/platform/memstore"
	"github.com/taibuivan/kmdb/internal/platform/metrics"
	"github.com/taibuivan/kmdb/internal/platform/middleware"
	"github.com/taibuivan/kmdb/internal/platform/migration"
	pgstore "github.com/taibuivan/kmdb/internal/platform/postgres"
	redisstore "github.com/taibuivan/kmdb/internal/platform/redis"
	"github.com/taibuivan/kmdb/internal/platform/sec"
)

// repositories is the store chosen by STORE_DRIVER.
type repositories struct {
	actors actor.Repository
	genres genre.Repository
	movies movie.Repository
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store", cfg.StoreDriver),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var checks []api.Check

	// ── 3. Entity Store ───────────────────────────────────────────────────
	var repos repositories
	switch cfg.StoreDriver {
	case config.DriverMemory:
		db := memstore.New()
		repos = repositories{
			actors: actor.NewMemoryRepository(db),
			genres: genre.NewMemoryRepository(db),
			movies: movie.NewMemoryRepository(db),
		}
		log.Warn("memory_store_enabled", slog.String("detail", "catalog data is lost on restart"))

	default:
		if cfg.RunMigrations {
			must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
		}

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		repos = repositories{
			actors: actor.NewPostgresRepository(pool),
			genres: genre.NewPostgresRepository(pool),
			movies: movie.NewPostgresRepository(pool),
		}
		checks = append(checks, api.Check{Name: "postgres", Probe: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}})
	}

	// ── 4. Optional Collaborators ─────────────────────────────────────────
	options := api.Options{
		Limiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Metrics: metrics.New(),
	}

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		options.Cache = cache.New(cache.NewRedisBackend(rdb), cfg.CacheTTL, log)
		checks = append(checks, api.Check{Name: "redis", Probe: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	}

	var publisher events.Publisher = events.NewLogPublisher(log)
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.DialAMQP(cfg.AMQPURL, cfg.EventsExchange, log)
		must(log, err, "connect to rabbitmq")
		defer func() {
			if cerr := amqpPublisher.Close(); cerr != nil {
				log.Error("amqp_close_failed", slog.Any("error", cerr))
			}
		}()
		publisher = amqpPublisher
	}

	if cfg.JWTPubKeyPath != "" {
		verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
		must(log, err, "load jwt public key")
		options.Verifier = verifier
		log.Info("write_guard_enabled", slog.String("role", string(sec.RoleEditor)))
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(checks, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Actor:     actor.NewHandler(actor.NewService(repos.actors, publisher, log)),
		Genre:     genre.NewHandler(genre.NewService(repos.genres, publisher, log)),
		Movie:     movie.NewHandler(movie.NewService(repos.movies, publisher, log)),
	}

	server := api.NewServer(cfg, log, options, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go options.Limiter.Cleanup(runCtx)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-runCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		return
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
