package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"laundry-hub/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ErrDuplicateReceipt is returned by WebhookReceiptRepository.Create when the
// event id was already fenced.
var ErrDuplicateReceipt = errors.New("webhook receipt already exists")

// ErrWalletExists is returned by WalletRepository.Create when the participant
// already owns an account.
var ErrWalletExists = errors.New("wallet account already exists")

// ErrStaleOrder is returned by OrderRepository.Update when the stored
// version no longer matches.
var ErrStaleOrder = errors.New("order was modified concurrently")

// WalletRepository defines persistence operations for wallet accounts.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, account *domain.WalletAccount) error
	GetByParticipant(ctx context.Context, participantID string) (*domain.WalletAccount, error)
	GetByParticipantForUpdate(ctx context.Context, tx pgx.Tx, participantID string) (*domain.WalletAccount, error)
	AccountNumberExists(ctx context.Context, tx pgx.Tx, accountNumber string) (bool, error)
	Update(ctx context.Context, tx pgx.Tx, account *domain.WalletAccount) error
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, tx pgx.Tx, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Order, error)
	// Update writes all mutable fields and bumps the version. It fails with
	// ErrStaleOrder if order.Version does not match the stored row.
	Update(ctx context.Context, tx pgx.Tx, order *domain.Order) error
}

// TokenRepository defines persistence for verification tokens. Only the
// active (non-superseded) token per (order, checkpoint) is addressable.
type TokenRepository interface {
	Create(ctx context.Context, tx pgx.Tx, token *domain.VerificationToken) error
	GetActive(ctx context.Context, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error)
	GetActiveForUpdate(ctx context.Context, tx pgx.Tx, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error)
	Update(ctx context.Context, tx pgx.Tx, token *domain.VerificationToken) error
}

// WebhookReceiptRepository is the durable idempotency fence for gateway events.
type WebhookReceiptRepository interface {
	Create(ctx context.Context, tx pgx.Tx, receipt *domain.WebhookReceipt) error
	Exists(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string, at time.Time) error
}

// DBTransactor runs fn inside one database transaction, committing when fn
// returns nil and rolling back otherwise. Serialization conflicts are
// retried by re-running fn.
type DBTransactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
