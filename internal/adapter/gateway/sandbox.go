package gateway

import (
	"context"
	"sync"

	"laundry-hub/internal/core/ports"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Sandbox is an offline ports.PaymentGateway for local runs on the memory
// backend. Checkouts point at baseURL and refunds always succeed; repeated
// refund keys return the first refund.
type Sandbox struct {
	baseURL string
	log     zerolog.Logger

	mu      sync.Mutex
	refunds map[string]*ports.Refund
}

// NewSandbox creates a Sandbox gateway.
func NewSandbox(baseURL string, log zerolog.Logger) *Sandbox {
	return &Sandbox{baseURL: baseURL, log: log, refunds: make(map[string]*ports.Refund)}
}

// CreateCheckout returns a fake hosted page for the reference.
func (s *Sandbox) CreateCheckout(_ context.Context, req ports.CheckoutRequest) (*ports.CheckoutSession, error) {
	id := "cs_" + ulid.Make().String()
	s.log.Info().Str("checkout_id", id).Str("reference_id", req.ReferenceID).Int64("amount", req.Amount).Msg("sandbox checkout")
	return &ports.CheckoutSession{ID: id, CheckoutURL: s.baseURL + "/checkout/" + id}, nil
}

// IssueRefund records a refund once per idempotency key.
func (s *Sandbox) IssueRefund(_ context.Context, req ports.RefundRequest) (*ports.Refund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.IdempotencyKey != "" {
		if r, ok := s.refunds[req.IdempotencyKey]; ok {
			return r, nil
		}
	}
	r := &ports.Refund{ID: "rf_" + ulid.Make().String(), Status: "succeeded"}
	if req.IdempotencyKey != "" {
		s.refunds[req.IdempotencyKey] = r
	}
	s.log.Info().Str("refund_id", r.ID).Str("charge_id", req.ChargeID).Int64("amount", req.Amount).Msg("sandbox refund")
	return r, nil
}
