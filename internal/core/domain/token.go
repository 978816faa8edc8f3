package domain

import (
	"time"

	"github.com/google/uuid"
)

// Checkpoint is a physical handoff gated by a verification token.
type Checkpoint string

const (
	CheckpointDelivery Checkpoint = "delivery"
	CheckpointReturn   Checkpoint = "return"
)

// Valid reports whether c is a known checkpoint.
func (c Checkpoint) Valid() bool {
	return c == CheckpointDelivery || c == CheckpointReturn
}

// VerificationToken is a single-use proof of a physical handoff. Once UsedAt
// is set it is never cleared; a re-issue after use supersedes the record.
type VerificationToken struct {
	ID           uuid.UUID  `json:"id"`
	OrderID      string     `json:"order_id"`
	Checkpoint   Checkpoint `json:"checkpoint"`
	Payload      string     `json:"-"`
	QRCode       []byte     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
	UsedBy       string     `json:"used_by,omitempty"`
	SupersededAt *time.Time `json:"superseded_at,omitempty"`
}

// IsUsed reports whether the token was consumed.
func (t *VerificationToken) IsUsed() bool {
	return t.UsedAt != nil
}

// FreshAt reports whether consumption happened within window of at.
func (t *VerificationToken) FreshAt(at time.Time, window time.Duration) bool {
	return t.UsedAt != nil && at.Sub(*t.UsedAt) <= window
}

// TokenClaims is the signed content of a token payload.
type TokenClaims struct {
	OrderID    string     `json:"order_id"`
	Checkpoint Checkpoint `json:"checkpoint"`
	Nonce      string     `json:"nonce"`
}
