// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kmdb/internal/platform/ctxkey"
	"github.com/taibuivan/kmdb/internal/platform/ctxutil"
	"github.com/taibuivan/kmdb/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
}

/*
TestLogger checks the default fallback, including a stored nil logger.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctxutil.WithLogger(ctx, nil)))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	assert.Equal(t, logger, ctxutil.GetLogger(ctxutil.WithLogger(ctx, logger)))
}

func TestClaims(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetClaims(ctx))

	ctx = ctxutil.WithClaims(ctx, &sec.AuthClaims{UserID: "curator-1", Role: string(sec.RoleEditor)})

	claims := ctxutil.GetClaims(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "curator-1", claims.UserID)
	assert.Equal(t, "editor", claims.Role)
}

func TestKeysAreDistinct(t *testing.T) {
	ctx := context.WithValue(context.Background(), "request_id", "spoofed")
	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Equal(t, "kmdb.request_id", ctxkey.RequestID.String())
}
