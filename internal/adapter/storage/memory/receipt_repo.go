package memory

import (
	"context"
	"fmt"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// ReceiptRepo implements ports.WebhookReceiptRepository.
type ReceiptRepo struct {
	s *Store
}

// NewReceiptRepo creates a new ReceiptRepo over s.
func NewReceiptRepo(s *Store) *ReceiptRepo {
	return &ReceiptRepo{s: s}
}

func (r *ReceiptRepo) Create(ctx context.Context, _ pgx.Tx, receipt *domain.WebhookReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.receipts[receipt.EventID]; ok {
		return ports.ErrDuplicateReceipt
	}
	r.s.receipts[receipt.EventID] = cloneReceipt(receipt)
	return nil
}

func (r *ReceiptRepo) Exists(ctx context.Context, eventID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.receipts[eventID]
	return ok, nil
}

func (r *ReceiptRepo) MarkProcessed(ctx context.Context, eventID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.receipts[eventID]
	if !ok {
		return fmt.Errorf("receipt %s not found", eventID)
	}
	rec.ProcessedAt = &at
	return nil
}
