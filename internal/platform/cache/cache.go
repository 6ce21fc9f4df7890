// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache provides the Redis-backed response cache for catalog reads.

Successful GET responses are stored with their status, headers and body under
a key derived from the request path and query. Every key also embeds a
generation number; a successful write bumps the generation, which retires all
cached reads at once without scanning keys.
*/
package cache

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/kmdb/internal/platform/constants"
	"github.com/taibuivan/kmdb/internal/platform/ctxutil"
)

// ErrMiss is returned by a [Backend] when the key is absent.
var ErrMiss = errors.New("cache: miss")

// maxBodyBytes caps the size of a cached response body.
const maxBodyBytes = 1 << 20

// Backend is the key-value store behind the cache.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) error
}

// # Redis Backend

// RedisBackend adapts a go-redis client to [Backend].
type RedisBackend struct {
	client redis.UniversalClient
}

func NewRedisBackend(client redis.UniversalClient) *RedisBackend {
	return &RedisBackend{client: client}
}

func (backend *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := backend.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return value, err
}

func (backend *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return backend.client.SetEx(ctx, key, value, ttl).Err()
}

func (backend *RedisBackend) Incr(ctx context.Context, key string) error {
	return backend.client.Incr(ctx, key).Err()
}

// # Response Cache

// ResponseCache caches GET responses and invalidates them on writes.
type ResponseCache struct {
	backend Backend
	ttl     time.Duration
	logger  *slog.Logger
}

// New creates a response cache. A non-positive ttl falls back to 30 seconds.
func New(backend Backend, ttl time.Duration, logger *slog.Logger) *ResponseCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ResponseCache{backend: backend, ttl: ttl, logger: logger}
}

// Middleware serves cached GET responses and bumps the generation after
// every successful write.
func (cache *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method {
		case http.MethodGet:
			cache.serveRead(next, writer, request)
		case http.MethodHead, http.MethodOptions:
			next.ServeHTTP(writer, request)
		default:
			cache.serveWrite(next, writer, request)
		}
	})
}

func (cache *ResponseCache) serveRead(next http.Handler, writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	key := cache.key(ctx, request)

	if payload, err := cache.backend.Get(ctx, key); err == nil {
		if status, header, body, ok := decodePayload(payload); ok {
			for name, values := range header {
				if strings.EqualFold(name, "Content-Length") {
					continue
				}
				for _, value := range values {
					writer.Header().Add(name, value)
				}
			}
			writer.Header().Set(constants.HeaderXCache, "HIT")
			writer.WriteHeader(status)
			_, _ = writer.Write(body)
			return
		}
	} else if !errors.Is(err, ErrMiss) {
		cache.warn(ctx, "cache_read_failed", err)
	}

	capture := &captureWriter{ResponseWriter: writer, status: http.StatusOK}
	writer.Header().Set(constants.HeaderXCache, "MISS")

	next.ServeHTTP(capture, request)

	if capture.status != http.StatusOK || capture.truncated {
		return
	}

	header := writer.Header().Clone()
	header.Del(constants.HeaderXCache)
	header.Del(constants.HeaderXRequestID)

	payload, err := encodePayload(capture.status, header, capture.body.Bytes())
	if err != nil {
		cache.warn(ctx, "cache_encode_failed", err)
		return
	}
	if err := cache.backend.Set(ctx, key, payload, cache.ttl); err != nil {
		cache.warn(ctx, "cache_write_failed", err)
	}
}

func (cache *ResponseCache) serveWrite(next http.Handler, writer http.ResponseWriter, request *http.Request) {
	capture := &captureWriter{ResponseWriter: writer, status: http.StatusOK, passthrough: true}
	next.ServeHTTP(capture, request)

	if capture.status >= http.StatusBadRequest {
		return
	}
	if err := cache.backend.Incr(request.Context(), constants.RedisKeyGeneration); err != nil {
		cache.warn(request.Context(), "cache_invalidate_failed", err)
	}
}

// key derives the cache key from the current generation, path and query.
func (cache *ResponseCache) key(ctx context.Context, request *http.Request) string {
	generation := "0"
	if value, err := cache.backend.Get(ctx, constants.RedisKeyGeneration); err == nil {
		generation = string(value)
	}
	return Key(generation, request.URL.Path, request.URL.RawQuery)
}

func (cache *ResponseCache) warn(ctx context.Context, event string, err error) {
	cache.logger.WarnContext(ctx, event,
		slog.String("request_id", ctxutil.GetRequestID(ctx)),
		slog.String("error", err.Error()),
	)
}

// Key builds a stable cache key for a path and raw query within a generation.
func Key(generation, path, rawQuery string) string {
	sum := sha1.Sum([]byte(path + "?" + rawQuery))
	return fmt.Sprintf("%s%s:%x", constants.RedisPrefixResponse, generation, sum[:])
}

// # Payload Encoding

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 8+len(headerJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(headerJSON)))
	copy(out[8:], headerJSON)
	copy(out[8+len(headerJSON):], body)
	return out, nil
}

func decodePayload(payload []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(payload) < 8 {
		return 0, nil, nil, false
	}

	status = int(binary.BigEndian.Uint32(payload[0:4]))
	headerLength := int(binary.BigEndian.Uint32(payload[4:8]))
	if headerLength < 0 || 8+headerLength > len(payload) {
		return 0, nil, nil, false
	}

	header = make(http.Header)
	if headerLength > 0 {
		if err := json.Unmarshal(payload[8:8+headerLength], &header); err != nil {
			return 0, nil, nil, false
		}
	}

	return status, header, payload[8+headerLength:], true
}

// captureWriter records the status and, for reads, a copy of the body while
// forwarding everything to the client.
type captureWriter struct {
	http.ResponseWriter
	status      int
	body        bytes.Buffer
	truncated   bool
	passthrough bool
}

func (writer *captureWriter) WriteHeader(code int) {
	writer.status = code
	writer.ResponseWriter.WriteHeader(code)
}

func (writer *captureWriter) Write(chunk []byte) (int, error) {
	if !writer.passthrough && !writer.truncated {
		if writer.body.Len()+len(chunk) > maxBodyBytes {
			writer.truncated = true
			writer.body.Reset()
		} else {
			writer.body.Write(chunk)
		}
	}
	return writer.ResponseWriter.Write(chunk)
}
