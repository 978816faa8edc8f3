// Package memory is a process-local storage backend. Transactions are
// serialized and a failed transaction restores the state it started from,
// which gives the services the same all-or-nothing behaviour as PostgreSQL.
package memory

import (
	"context"
	"sync"

	"laundry-hub/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

type tokenKey struct {
	orderID    string
	checkpoint domain.Checkpoint
}

// Store holds every table of the memory backend.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	wallets  map[string]*domain.WalletAccount
	orders   map[string]*domain.Order
	tokens   map[tokenKey][]*domain.VerificationToken
	receipts map[string]*domain.WebhookReceipt
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		wallets:  make(map[string]*domain.WalletAccount),
		orders:   make(map[string]*domain.Order),
		tokens:   make(map[tokenKey][]*domain.VerificationToken),
		receipts: make(map[string]*domain.WebhookReceipt),
	}
}

// tx satisfies pgx.Tx for repositories that ignore it. Only Commit and
// Rollback may be called.
type tx struct {
	pgx.Tx
}

func (tx) Commit(context.Context) error   { return nil }
func (tx) Rollback(context.Context) error { return nil }

// WithinTx implements ports.DBTransactor.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	if err := fn(ctx, tx{}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Ping implements ports.HealthChecker.
func (s *Store) Ping(context.Context) error { return nil }

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "memory" }

type snapshot struct {
	wallets  map[string]*domain.WalletAccount
	orders   map[string]*domain.Order
	tokens   map[tokenKey][]*domain.VerificationToken
	receipts map[string]*domain.WebhookReceipt
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		wallets:  make(map[string]*domain.WalletAccount, len(s.wallets)),
		orders:   make(map[string]*domain.Order, len(s.orders)),
		tokens:   make(map[tokenKey][]*domain.VerificationToken, len(s.tokens)),
		receipts: make(map[string]*domain.WebhookReceipt, len(s.receipts)),
	}
	for k, v := range s.wallets {
		snap.wallets[k] = cloneWallet(v)
	}
	for k, v := range s.orders {
		snap.orders[k] = v.Clone()
	}
	for k, list := range s.tokens {
		cp := make([]*domain.VerificationToken, len(list))
		for i, t := range list {
			cp[i] = cloneToken(t)
		}
		snap.tokens[k] = cp
	}
	for k, v := range s.receipts {
		snap.receipts[k] = cloneReceipt(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = snap.wallets
	s.orders = snap.orders
	s.tokens = snap.tokens
	s.receipts = snap.receipts
}

func cloneWallet(a *domain.WalletAccount) *domain.WalletAccount {
	c := *a
	if a.HoldExpiresAt != nil {
		t := *a.HoldExpiresAt
		c.HoldExpiresAt = &t
	}
	return &c
}

func cloneToken(t *domain.VerificationToken) *domain.VerificationToken {
	c := *t
	if t.QRCode != nil {
		c.QRCode = append([]byte(nil), t.QRCode...)
	}
	if t.UsedAt != nil {
		u := *t.UsedAt
		c.UsedAt = &u
	}
	if t.SupersededAt != nil {
		u := *t.SupersededAt
		c.SupersededAt = &u
	}
	return &c
}

func cloneReceipt(r *domain.WebhookReceipt) *domain.WebhookReceipt {
	c := *r
	if r.ProcessedAt != nil {
		t := *r.ProcessedAt
		c.ProcessedAt = &t
	}
	return &c
}
