// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/taibuivan/kmdb/internal/platform/constants"
)

// AMQPPublisher sends events to a durable topic exchange, routed by event type.
type AMQPPublisher struct {
	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	logger     *slog.Logger
}

// DialAMQP connects to the broker and declares the exchange.
func DialAMQP(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	connection, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: dial failed: %w", err)
	}

	publisher := &AMQPPublisher{connection: connection, exchange: exchange, logger: logger}
	if err := publisher.openChannel(); err != nil {
		_ = connection.Close()
		return nil, err
	}

	logger.Info("amqp_publisher_connected", slog.String("exchange", exchange))
	return publisher, nil
}

// openChannel must be called with mu held (or before the publisher is shared).
func (publisher *AMQPPublisher) openChannel() error {
	channel, err := publisher.connection.Channel()
	if err != nil {
		return fmt.Errorf("events: channel open failed: %w", err)
	}

	if err := channel.ExchangeDeclare(
		publisher.exchange, // name
		amqp.ExchangeTopic, // kind
		true,               // durable
		false,              // autoDelete
		false,              // internal
		false,              // noWait
		nil,                // args
	); err != nil {
		_ = channel.Close()
		return fmt.Errorf("events: exchange declare failed: %w", err)
	}

	publisher.channel = channel
	return nil
}

// Publish sends one persistent JSON message.
func (publisher *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal failed: %w", err)
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	if publisher.channel == nil || publisher.channel.IsClosed() {
		if publisher.connection.IsClosed() {
			return fmt.Errorf("events: connection closed")
		}
		if err := publisher.openChannel(); err != nil {
			return err
		}
	}

	message := amqp.Publishing{
		ContentType:   constants.ContentTypeJSON,
		DeliveryMode:  amqp.Persistent,
		MessageId:     uuid.NewString(),
		CorrelationId: event.RequestID,
		Timestamp:     event.OccurredAt,
		Type:          event.Type,
		Body:          body,
	}

	if err := publisher.channel.PublishWithContext(ctx, publisher.exchange, event.Type, false, false, message); err != nil {
		return fmt.Errorf("events: publish failed: %w", err)
	}
	return nil
}

// Close shuts down the channel and the connection.
func (publisher *AMQPPublisher) Close() error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	if publisher.channel != nil {
		_ = publisher.channel.Close()
	}
	return publisher.connection.Close()
}
