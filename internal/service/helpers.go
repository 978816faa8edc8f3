package service

import (
	"context"
	"errors"
	"fmt"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"

	"github.com/rs/zerolog"
)

// asAppError passes typed errors through and surfaces anything else as a
// retryable internal failure.
func asAppError(err error, op string) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}

// publish emits an order event after commit. Delivery is best-effort.
func publish(ctx context.Context, pub ports.EventPublisher, log zerolog.Logger, event domain.OrderEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("order_id", event.OrderID).
			Str("type", event.Type).
			Msg("failed to publish order event")
	}
}
