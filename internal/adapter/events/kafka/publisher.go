// Package kafka publishes committed order changes to a Kafka topic for
// downstream consumers such as notification dispatch.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"laundry-hub/internal/core/domain"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

// messageWriter is the part of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher. Messages are keyed by order id
// so every event of one order lands on the same partition in order.
type Publisher struct {
	writer messageWriter
	log    zerolog.Logger
}

// NewWriter builds the topic writer.
func NewWriter(brokers []string, topic string, log zerolog.Logger) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: writeTimeout,
		Logger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			log.Debug().Msgf(msg, args...)
		}),
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf(msg, args...)
		}),
	}
}

// NewPublisher wraps a writer.
func NewPublisher(w messageWriter, log zerolog.Logger) *Publisher {
	return &Publisher{writer: w, log: log}
}

// Publish encodes ev as JSON and writes it with the event type as a header.
func (p *Publisher) Publish(ctx context.Context, ev domain.OrderEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Key:     []byte(ev.OrderID),
		Value:   value,
		Time:    ev.OccurredAt,
		Headers: []kafkago.Header{{Key: "event_type", Value: []byte(ev.Type)}},
	})
	if err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
