// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the catalog
handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Optional collaborators (token verifier, response cache, metrics) are skipped when nil.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/kmdb/internal/core/actor"
	"github.com/taibuivan/kmdb/internal/core/genre"
	"github.com/taibuivan/kmdb/internal/core/movie"
	"github.com/taibuivan/kmdb/internal/platform/cache"
	"github.com/taibuivan/kmdb/internal/platform/config"
	"github.com/taibuivan/kmdb/internal/platform/constants"
	"github.com/taibuivan/kmdb/internal/platform/metrics"
	"github.com/taibuivan/kmdb/internal/platform/middleware"
	"github.com/taibuivan/kmdb/internal/platform/sec"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger
}

// # Handler Registry

// Handlers groups the HTTP handler sets mounted by the server.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; it reports 503 when a dependency is down.
	Readiness http.HandlerFunc

	Actor *actor.Handler
	Genre *genre.Handler
	Movie *movie.Handler
}

// Options carries the cross-cutting collaborators of the middleware chain.
type Options struct {
	// Limiter throttles clients by IP. Required.
	Limiter *middleware.RateLimiter

	// Metrics enables request instrumentation and GET /metrics.
	Metrics *metrics.Metrics

	// Verifier enables bearer authentication; writes then require [sec.RoleEditor].
	Verifier middleware.TokenVerifier

	// Cache serves repeated catalog reads from Redis.
	Cache *cache.ResponseCache
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, logger *slog.Logger, options Options, handlers Handlers) *Server {
	router := chi.NewRouter()

	// # Middleware Chain
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PanicRecovery)
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.CORS(cfg))
	router.Use(options.Limiter.Handler)
	if options.Metrics != nil {
		router.Use(options.Metrics.Middleware)
	}
	router.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)
	if options.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", options.Metrics.Handler())
	}

	// # Application API
	router.Route("/api/v1", func(api chi.Router) {
		if options.Verifier != nil {
			api.Use(middleware.Authenticate(options.Verifier))
			api.Use(middleware.RequireRoleForWrites(sec.RoleEditor))
		}
		if options.Cache != nil {
			api.Use(options.Cache.Middleware)
		}

		api.Route("/actors", handlers.Actor.RegisterRoutes)
		api.Route("/genres", handlers.Genre.RegisterRoutes)
		api.Route("/movies", handlers.Movie.RegisterRoutes)
	})

	return &Server{
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for in-process tests.
func (server *Server) Handler() http.Handler {
	return server.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server. It blocks until the server is closed.
func (server *Server) ListenAndServe() error {
	server.logger.Info("server_starting", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (server *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.httpServer.Shutdown(ctx)
}
