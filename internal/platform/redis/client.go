// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the client backing the catalog response cache.

Redis is optional: when REDIS_URL is empty the API serves every read from the
entity store.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// tune sizes the pool for short GET/SET traffic. Values given in the URL win.
func tune(options *redis.Options) {
	if options.PoolSize == 0 {
		options.PoolSize = 10
	}
	if options.MinIdleConns == 0 {
		options.MinIdleConns = 2
	}
	if options.DialTimeout == 0 {
		options.DialTimeout = 3 * time.Second
	}
	if options.ReadTimeout == 0 {
		options.ReadTimeout = 500 * time.Millisecond
	}
	if options.WriteTimeout == 0 {
		options.WriteTimeout = 500 * time.Millisecond
	}
}

// Options parses a redis:// or rediss:// URL into tuned client options.
func Options(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	tune(options)
	return options, nil
}

// NewClient connects and pings. The client is closed again when the ping fails.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := Options(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected", slog.String("addr", options.Addr), slog.Int("db", options.DB))
	return client, nil
}

// Ping bounds a health probe by pingTimeout.
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
