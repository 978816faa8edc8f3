package memory

import (
	"context"
	"fmt"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	s *Store
}

// NewWalletRepo creates a new WalletRepo over s.
func NewWalletRepo(s *Store) *WalletRepo {
	return &WalletRepo{s: s}
}

func (r *WalletRepo) Create(ctx context.Context, _ pgx.Tx, account *domain.WalletAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.wallets[account.ParticipantID]; ok {
		return ports.ErrWalletExists
	}
	for _, w := range r.s.wallets {
		if w.AccountNumber == account.AccountNumber {
			return fmt.Errorf("account number %s already assigned", account.AccountNumber)
		}
	}
	r.s.wallets[account.ParticipantID] = cloneWallet(account)
	return nil
}

func (r *WalletRepo) GetByParticipant(ctx context.Context, participantID string) (*domain.WalletAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.wallets[participantID]
	if !ok {
		return nil, nil
	}
	return cloneWallet(w), nil
}

func (r *WalletRepo) GetByParticipantForUpdate(ctx context.Context, _ pgx.Tx, participantID string) (*domain.WalletAccount, error) {
	return r.GetByParticipant(ctx, participantID)
}

func (r *WalletRepo) AccountNumberExists(ctx context.Context, _ pgx.Tx, accountNumber string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, w := range r.s.wallets {
		if w.AccountNumber == accountNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *WalletRepo) Update(ctx context.Context, _ pgx.Tx, account *domain.WalletAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.wallets[account.ParticipantID]; !ok {
		return fmt.Errorf("wallet %s not found", account.ParticipantID)
	}
	r.s.wallets[account.ParticipantID] = cloneWallet(account)
	return nil
}
