// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres provides the managed PostgreSQL connection pool and the
// transaction plumbing shared by the catalog repositories.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kmdb/internal/platform/constants"
)

const pingTimeout = 2 * time.Second

// PoolSettings sizes the pool for the catalog workload.
type PoolSettings struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration

	// StatementTimeout is applied server side to every session.
	StatementTimeout time.Duration
}

// DefaultPoolSettings suits a single API instance.
func DefaultPoolSettings() PoolSettings {
	return PoolSettings{
		MaxConns:         20,
		MinConns:         2,
		MaxConnLifetime:  time.Hour,
		MaxConnIdleTime:  10 * time.Minute,
		ConnectTimeout:   5 * time.Second,
		StatementTimeout: constants.GlobalRequestTimeout,
	}
}

// Configure parses dsn and applies settings. Session parameters travel in the
// startup message, so no extra round trip is made per connection.
func Configure(dsn string, settings PoolSettings) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	config.MaxConns = settings.MaxConns
	config.MinConns = settings.MinConns
	config.MaxConnLifetime = settings.MaxConnLifetime
	config.MaxConnIdleTime = settings.MaxConnIdleTime
	config.ConnConfig.ConnectTimeout = settings.ConnectTimeout

	params := config.ConnConfig.RuntimeParams
	params["application_name"] = constants.AppName
	params["statement_timeout"] = strconv.FormatInt(settings.StatementTimeout.Milliseconds(), 10)

	return config, nil
}

// NewPool opens the pool with [DefaultPoolSettings] and verifies it with a ping.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	settings := DefaultPoolSettings()

	config, err := Configure(dsn, settings)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, settings.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("host", config.ConnConfig.Host),
		slog.String("database", config.ConnConfig.Database),
		slog.Int("max_conns", int(config.MaxConns)),
	)
	return pool, nil
}

// Pinger is satisfied by [*pgxpool.Pool].
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping bounds a health probe by pingTimeout.
func Ping(ctx context.Context, pool Pinger) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}
