package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(participantID string) *domain.WalletAccount {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.WalletAccount{
		ID:               uuid.New(),
		ParticipantID:    participantID,
		Role:             domain.RoleCourier,
		AccountNumber:    "482019375561",
		EncryptedBalance: "aes_encrypted_balance",
		EncryptedHeld:    "aes_encrypted_held",
		LockUntil:        now.Add(360 * time.Hour),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func walletTestColumns() []string {
	return []string{"id", "participant_id", "role", "account_number", "encrypted_balance", "encrypted_held",
		"hold_expires_at", "lock_until", "created_at", "updated_at"}
}

func walletRow(a *domain.WalletAccount) *pgxmock.Rows {
	return pgxmock.NewRows(walletTestColumns()).AddRow(
		a.ID, a.ParticipantID, a.Role, a.AccountNumber, a.EncryptedBalance, a.EncryptedHeld,
		a.HoldExpiresAt, a.LockUntil, a.CreatedAt, a.UpdatedAt,
	)
}

// beginTx opens a mocked transaction for repository methods that take one.
func beginTx(t *testing.T, mock pgxmock.PgxPoolIface) pgx.Tx {
	t.Helper()
	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	a := newTestAccount("rider-1")
	tx := beginTx(t, mock)

	mock.ExpectExec("INSERT INTO wallet_accounts").
		WithArgs(a.ID, a.ParticipantID, a.Role, a.AccountNumber, a.EncryptedBalance, a.EncryptedHeld,
			a.HoldExpiresAt, a.LockUntil, a.CreatedAt, a.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), tx, a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_Conflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	tx := beginTx(t, mock)

	mock.ExpectExec("INSERT INTO wallet_accounts .+ ON CONFLICT \\(participant_id\\) DO NOTHING").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err = repo.Create(context.Background(), tx, newTestAccount("rider-1"))
	assert.ErrorIs(t, err, ports.ErrWalletExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByParticipant(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	a := newTestAccount("merch-1")

	mock.ExpectQuery("SELECT .+ FROM wallet_accounts WHERE participant_id").
		WithArgs("merch-1").
		WillReturnRows(walletRow(a))

	got, err := repo.GetByParticipant(context.Background(), "merch-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.EncryptedBalance, got.EncryptedBalance)
	assert.Nil(t, got.HoldExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByParticipant_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	mock.ExpectQuery("SELECT .+ FROM wallet_accounts").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByParticipant(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestWalletRepo_GetByParticipantForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	a := newTestAccount("rider-1")
	tx := beginTx(t, mock)

	mock.ExpectQuery("SELECT .+ FROM wallet_accounts WHERE participant_id = \\$1 FOR UPDATE").
		WithArgs("rider-1").
		WillReturnRows(walletRow(a))

	got, err := repo.GetByParticipantForUpdate(context.Background(), tx, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, a.AccountNumber, got.AccountNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_AccountNumberExists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	tx := beginTx(t, mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("482019375561").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.AccountNumberExists(context.Background(), tx, "482019375561")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWalletRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	a := newTestAccount("rider-1")
	expires := a.UpdatedAt.Add(30 * time.Minute)
	a.HoldExpiresAt = &expires
	tx := beginTx(t, mock)

	mock.ExpectExec("UPDATE wallet_accounts").
		WithArgs(a.EncryptedBalance, a.EncryptedHeld, a.HoldExpiresAt, a.LockUntil, a.UpdatedAt, a.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Update(context.Background(), tx, a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	tx := beginTx(t, mock)

	mock.ExpectExec("UPDATE wallet_accounts").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), tx, newTestAccount("rider-1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWalletRepo_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	mock.ExpectQuery("SELECT .+ FROM wallet_accounts").
		WillReturnError(errors.New("connection refused"))

	_, err = repo.GetByParticipant(context.Background(), "rider-1")
	assert.ErrorContains(t, err, "connection refused")
}
