package memory

import (
	"context"
	"fmt"

	"laundry-hub/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TokenRepo implements ports.TokenRepository. Superseded records are kept
// as history behind the active one.
type TokenRepo struct {
	s *Store
}

// NewTokenRepo creates a new TokenRepo over s.
func NewTokenRepo(s *Store) *TokenRepo {
	return &TokenRepo{s: s}
}

func (r *TokenRepo) Create(ctx context.Context, _ pgx.Tx, token *domain.VerificationToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := tokenKey{orderID: token.OrderID, checkpoint: token.Checkpoint}
	for _, t := range r.s.tokens[key] {
		if t.SupersededAt == nil {
			return fmt.Errorf("active %s token already exists for order %s", token.Checkpoint, token.OrderID)
		}
	}
	r.s.tokens[key] = append(r.s.tokens[key], cloneToken(token))
	return nil
}

func (r *TokenRepo) GetActive(ctx context.Context, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tokens[tokenKey{orderID: orderID, checkpoint: checkpoint}] {
		if t.SupersededAt == nil {
			return cloneToken(t), nil
		}
	}
	return nil, nil
}

func (r *TokenRepo) GetActiveForUpdate(ctx context.Context, _ pgx.Tx, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error) {
	return r.GetActive(ctx, orderID, checkpoint)
}

func (r *TokenRepo) Update(ctx context.Context, _ pgx.Tx, token *domain.VerificationToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.s.tokens[tokenKey{orderID: token.OrderID, checkpoint: token.Checkpoint}]
	for i, t := range list {
		if t.ID == token.ID {
			list[i] = cloneToken(token)
			return nil
		}
	}
	return fmt.Errorf("token %s not found", token.ID)
}
