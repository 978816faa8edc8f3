// Package events holds ports.EventPublisher implementations.
package events

import (
	"context"

	"laundry-hub/internal/core/domain"

	"github.com/rs/zerolog"
)

// LogPublisher writes order events to the log. It is used when no broker is
// configured.
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish implements ports.EventPublisher.
func (p *LogPublisher) Publish(_ context.Context, ev domain.OrderEvent) error {
	p.log.Debug().
		Str("type", ev.Type).
		Str("order_id", ev.OrderID).
		Str("status", string(ev.Status)).
		Str("payment_status", string(ev.PaymentStatus)).
		Msg("order event")
	return nil
}
