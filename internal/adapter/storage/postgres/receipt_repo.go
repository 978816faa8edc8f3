package postgres

import (
	"context"
	"fmt"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// ReceiptRepo implements ports.WebhookReceiptRepository. The unique key on
// event_id is the durable fence against double application.
type ReceiptRepo struct {
	pool Pool
}

// NewReceiptRepo creates a new ReceiptRepo.
func NewReceiptRepo(pool Pool) *ReceiptRepo {
	return &ReceiptRepo{pool: pool}
}

// Create records a receipt inside the transaction that applies the event.
// It reports ports.ErrDuplicateReceipt when the event id is already fenced.
func (r *ReceiptRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.WebhookReceipt) error {
	query := `INSERT INTO webhook_receipts
		(id, event_id, charge_id, reference_id, kind, order_id, participant_id, amount, outcome, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (event_id) DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		rec.ID, rec.EventID, rec.ChargeID, rec.ReferenceID, rec.Kind, rec.OrderID,
		rec.ParticipantID, rec.Amount, rec.Outcome, rec.CreatedAt, rec.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrDuplicateReceipt
	}
	return nil
}

// Exists reports whether an event id was already fenced.
func (r *ReceiptRepo) Exists(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM webhook_receipts WHERE event_id = $1)`, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check webhook receipt: %w", err)
	}
	return exists, nil
}

// MarkProcessed stamps when post-commit bookkeeping finished for a receipt.
func (r *ReceiptRepo) MarkProcessed(ctx context.Context, eventID string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE webhook_receipts SET processed_at = $1 WHERE event_id = $2`, at, eventID,
	)
	if err != nil {
		return fmt.Errorf("mark webhook receipt processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("webhook receipt not found: %s", eventID)
	}
	return nil
}
