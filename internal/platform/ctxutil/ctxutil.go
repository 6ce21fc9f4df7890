// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the request-scoped values set by the
// middleware chain.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/kmdb/internal/platform/ctxkey"
	"github.com/taibuivan/kmdb/internal/platform/sec"
)

// lookup returns the value stored under key when it has type T.
func lookup[T any](ctx context.Context, key *ctxkey.Key) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.RequestID, id)
}

// GetRequestID returns "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, ctxkey.RequestID)
	return id
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.Logger, logger)
}

// GetLogger falls back to [slog.Default] so callers never receive nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, ctxkey.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

func WithClaims(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.Claims, claims)
}

// GetClaims returns nil for anonymous requests.
func GetClaims(ctx context.Context) *sec.AuthClaims {
	claims, _ := lookup[*sec.AuthClaims](ctx, ctxkey.Claims)
	return claims
}
