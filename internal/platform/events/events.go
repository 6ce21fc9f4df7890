// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package events publishes catalog mutations after they have been committed.

Publishing is best-effort: a failure is logged and never fails the operation
that produced the event.
*/
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/kmdb/internal/platform/ctxutil"
)

// Catalog event types, also used as AMQP routing keys.
const (
	ActorCreated = "actor.created"
	ActorUpdated = "actor.updated"
	ActorDeleted = "actor.deleted"

	GenreCreated = "genre.created"
	GenreDeleted = "genre.deleted"

	MovieCreated = "movie.created"
	MovieUpdated = "movie.updated"
	MovieRated   = "movie.rated"
	MovieDeleted = "movie.deleted"
)

// Event is the envelope sent for every committed mutation.
type Event struct {
	Type       string    `json:"type"`
	EntityID   int       `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	RequestID  string    `json:"request_id,omitempty"`
	Payload    any       `json:"payload,omitempty"`
}

// New builds an event stamped with the current time and the request id in ctx.
func New(ctx context.Context, eventType string, entityID int, payload any) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		RequestID:  ctxutil.GetRequestID(ctx),
		Payload:    payload,
	}
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Emit publishes event and logs, rather than returns, any failure.
func Emit(ctx context.Context, publisher Publisher, event Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "event_publish_failed",
			slog.String("type", event.Type),
			slog.Int("entity_id", event.EntityID),
			slog.String("error", err.Error()),
		)
	}
}

// # Fallback Publishers

// LogPublisher writes events to the structured log. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (publisher *LogPublisher) Publish(ctx context.Context, event Event) error {
	publisher.logger.DebugContext(ctx, "catalog_event",
		slog.String("type", event.Type),
		slog.Int("entity_id", event.EntityID),
		slog.String("request_id", event.RequestID),
	)
	return nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (recorder *Recorder) Publish(ctx context.Context, event Event) error {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	recorder.events = append(recorder.events, event)
	return nil
}

// Types returns the recorded event types in publish order.
func (recorder *Recorder) Types() []string {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	types := make([]string, len(recorder.events))
	for i, event := range recorder.events {
		types[i] = event.Type
	}
	return types
}

// Events returns a copy of the recorded events.
func (recorder *Recorder) Events() []Event {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	return append([]Event(nil), recorder.events...)
}
