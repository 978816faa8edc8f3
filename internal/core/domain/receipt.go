package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChargeSucceeded is the only gateway status that carries a financial effect.
const ChargeSucceeded = "succeeded"

// GatewayEvent is an inbound payment callback after boundary validation.
type GatewayEvent struct {
	EventID     string
	ChargeID    string
	Status      string
	ReferenceID string
	Amount      int64
	Currency    string
}

// ReconcileOutcome classifies what a webhook did.
type ReconcileOutcome string

const (
	OutcomeApplied   ReconcileOutcome = "applied"
	OutcomeDuplicate ReconcileOutcome = "duplicate"
	OutcomeIgnored   ReconcileOutcome = "ignored"
	OutcomeRefunded  ReconcileOutcome = "refunded" // payment landed on a closed order
)

// WebhookReceipt fences one gateway event id to exactly one application.
type WebhookReceipt struct {
	ID            uuid.UUID        `json:"id"`
	EventID       string           `json:"event_id"`
	ChargeID      string           `json:"charge_id"`
	ReferenceID   string           `json:"reference_id"`
	Kind          ReferenceKind    `json:"kind"`
	OrderID       string           `json:"order_id,omitempty"`
	ParticipantID string           `json:"participant_id,omitempty"`
	Amount        int64            `json:"amount"`
	Outcome       ReconcileOutcome `json:"outcome"`
	CreatedAt     time.Time        `json:"created_at"`
	ProcessedAt   *time.Time       `json:"processed_at,omitempty"`
}

// ReceiptCacheKey is the redis fast-path key for an event id.
func ReceiptCacheKey(eventID string) string {
	return "webhook:receipt:" + eventID
}
