package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletAccount is the custodial ledger record of a merchant or courier.
// Balance and held amount only ever exist encrypted at rest.
type WalletAccount struct {
	ID               uuid.UUID  `json:"id"`
	ParticipantID    string     `json:"participant_id"`
	Role             Role       `json:"role"`
	AccountNumber    string     `json:"account_number"`
	EncryptedBalance string     `json:"-"` // AES-256 encrypted, never expose raw
	EncryptedHeld    string     `json:"-"`
	HoldExpiresAt    *time.Time `json:"hold_expires_at,omitempty"`
	LockUntil        time.Time  `json:"lock_until"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// WalletBalance is the decrypted view of an account returned to its owner.
type WalletBalance struct {
	ParticipantID string     `json:"participant_id"`
	AccountNumber string     `json:"account_number"`
	Balance       int64      `json:"balance"`
	Held          int64      `json:"held"`
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`
	LockUntil     time.Time  `json:"lock_until"`
}

// Withdrawable reports whether the lock has elapsed at t.
func (w *WalletBalance) Withdrawable(t time.Time) bool {
	return !t.Before(w.LockUntil)
}
