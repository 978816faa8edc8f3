package postgres

import (
	"context"
	"errors"
	"fmt"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

const walletColumns = `id, participant_id, role, account_number, encrypted_balance, encrypted_held,
	hold_expires_at, lock_until, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a wallet account. A participant owns at most one account;
// a second insert reports ports.ErrWalletExists.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.WalletAccount) error {
	query := `INSERT INTO wallet_accounts (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (participant_id) DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		a.ID, a.ParticipantID, a.Role, a.AccountNumber, a.EncryptedBalance, a.EncryptedHeld,
		a.HoldExpiresAt, a.LockUntil, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrWalletExists
	}
	return nil
}

// GetByParticipant fetches an account without locking.
func (r *WalletRepo) GetByParticipant(ctx context.Context, participantID string) (*domain.WalletAccount, error) {
	query := `SELECT ` + walletColumns + ` FROM wallet_accounts WHERE participant_id = $1`

	a, err := scanWallet(r.pool.QueryRow(ctx, query, participantID))
	if err != nil {
		return nil, fmt.Errorf("get wallet by participant: %w", err)
	}
	return a, nil
}

// GetByParticipantForUpdate fetches an account with a row lock.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByParticipantForUpdate(ctx context.Context, tx pgx.Tx, participantID string) (*domain.WalletAccount, error) {
	query := `SELECT ` + walletColumns + ` FROM wallet_accounts WHERE participant_id = $1 FOR UPDATE`

	a, err := scanWallet(tx.QueryRow(ctx, query, participantID))
	if err != nil {
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return a, nil
}

// AccountNumberExists reports whether an account number is taken.
func (r *WalletRepo) AccountNumberExists(ctx context.Context, tx pgx.Tx, accountNumber string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wallet_accounts WHERE account_number = $1)`, accountNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account number: %w", err)
	}
	return exists, nil
}

// Update writes the encrypted amounts, hold expiry and lock of an account.
func (r *WalletRepo) Update(ctx context.Context, tx pgx.Tx, a *domain.WalletAccount) error {
	query := `UPDATE wallet_accounts
		SET encrypted_balance = $1, encrypted_held = $2, hold_expires_at = $3, lock_until = $4, updated_at = $5
		WHERE id = $6`

	tag, err := tx.Exec(ctx, query,
		a.EncryptedBalance, a.EncryptedHeld, a.HoldExpiresAt, a.LockUntil, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update wallet account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet account not found: %s", a.ID)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.WalletAccount, error) {
	a := &domain.WalletAccount{}
	err := row.Scan(
		&a.ID, &a.ParticipantID, &a.Role, &a.AccountNumber, &a.EncryptedBalance, &a.EncryptedHeld,
		&a.HoldExpiresAt, &a.LockUntil, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}
