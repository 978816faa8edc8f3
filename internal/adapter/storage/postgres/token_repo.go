package postgres

import (
	"context"
	"errors"
	"fmt"

	"laundry-hub/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const tokenSelect = `SELECT id, order_id, checkpoint, payload, qr_code, created_at, used_at, used_by, superseded_at
	FROM verification_tokens`

// TokenRepo implements ports.TokenRepository. Superseded tokens stay in the
// table as history; a partial unique index keeps one active row per
// (order, checkpoint).
type TokenRepo struct {
	pool Pool
}

// NewTokenRepo creates a new TokenRepo.
func NewTokenRepo(pool Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

// Create inserts a token.
func (r *TokenRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.VerificationToken) error {
	query := `INSERT INTO verification_tokens
		(id, order_id, checkpoint, payload, qr_code, created_at, used_at, used_by, superseded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.OrderID, t.Checkpoint, t.Payload, t.QRCode,
		t.CreatedAt, t.UsedAt, t.UsedBy, t.SupersededAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification token: %w", err)
	}
	return nil
}

// GetActive fetches the live token of a checkpoint without locking.
func (r *TokenRepo) GetActive(ctx context.Context, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error) {
	query := tokenSelect + ` WHERE order_id = $1 AND checkpoint = $2 AND superseded_at IS NULL`

	t, err := scanToken(r.pool.QueryRow(ctx, query, orderID, checkpoint))
	if err != nil {
		return nil, fmt.Errorf("get active token: %w", err)
	}
	return t, nil
}

// GetActiveForUpdate fetches the live token of a checkpoint with a row lock.
// This MUST be called within a transaction.
func (r *TokenRepo) GetActiveForUpdate(ctx context.Context, tx pgx.Tx, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error) {
	query := tokenSelect + ` WHERE order_id = $1 AND checkpoint = $2 AND superseded_at IS NULL FOR UPDATE`

	t, err := scanToken(tx.QueryRow(ctx, query, orderID, checkpoint))
	if err != nil {
		return nil, fmt.Errorf("get active token for update: %w", err)
	}
	return t, nil
}

// Update rewrites payload, image and usage fields of a token.
func (r *TokenRepo) Update(ctx context.Context, tx pgx.Tx, t *domain.VerificationToken) error {
	query := `UPDATE verification_tokens
		SET payload = $1, qr_code = $2, created_at = $3, used_at = $4, used_by = $5, superseded_at = $6
		WHERE id = $7`

	tag, err := tx.Exec(ctx, query,
		t.Payload, t.QRCode, t.CreatedAt, t.UsedAt, t.UsedBy, t.SupersededAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update verification token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("verification token not found: %s", t.ID)
	}
	return nil
}

func scanToken(row pgx.Row) (*domain.VerificationToken, error) {
	t := &domain.VerificationToken{}
	err := row.Scan(
		&t.ID, &t.OrderID, &t.Checkpoint, &t.Payload, &t.QRCode,
		&t.CreatedAt, &t.UsedAt, &t.UsedBy, &t.SupersededAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}
