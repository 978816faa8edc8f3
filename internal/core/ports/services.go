package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"laundry-hub/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	Seal(secretKey string, body []byte) string
	Open(secretKey string, sealed string) ([]byte, error)
}

// IdentityService verifies bearer tokens issued by the identity provider.
type IdentityService interface {
	Generate(actor domain.Actor) (string, time.Time, error)
	Validate(tokenString string) (*domain.Actor, error)
}

// QRRenderer renders a payload as a scannable PNG.
type QRRenderer interface {
	RenderPNG(content string) ([]byte, error)
}

// ReceiptCache is the Redis-layer webhook fence (fast path). The database
// receipt remains authoritative.
type ReceiptCache interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Remember(ctx context.Context, eventID string, ttl time.Duration) error
}

// RateLimiter counts requests in a fixed window.
type RateLimiter interface {
	// Allow returns whether the request is allowed, remaining count, and any error.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
}

// EventPublisher emits committed order changes for downstream consumers
// such as notification dispatch.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// --- Payment gateway collaborator ---

// CheckoutRequest opens a hosted checkout session.
type CheckoutRequest struct {
	Amount      int64
	Currency    string
	ReferenceID string
	Description string
	Method      domain.PaymentMethod
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the gateway's answer to CheckoutRequest.
type CheckoutSession struct {
	ID          string
	CheckoutURL string
}

// RefundRequest returns money against a captured charge.
// IdempotencyKey makes retries of the same refund safe.
type RefundRequest struct {
	ChargeID       string
	Amount         int64
	Reason         string
	IdempotencyKey string
}

// Refund is the gateway's answer to RefundRequest.
type Refund struct {
	ID     string
	Status string
}

// PaymentGateway creates checkouts and issues refunds. Calls are bounded
// by the client timeout; a timeout is an unknown outcome.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	IssueRefund(ctx context.Context, req RefundRequest) (*Refund, error)
}

// --- Service Ports (Business Logic) ---

// WalletService is the only component that sees plaintext balances.
// Tx variants join a caller's transaction; the others run their own.
type WalletService interface {
	CreateAccount(ctx context.Context, participantID string, role domain.Role) (*domain.WalletBalance, error)
	GetBalance(ctx context.Context, participantID string) (*domain.WalletBalance, error)
	Hold(ctx context.Context, participantID string, amount int64) error
	Release(ctx context.Context, participantID string) (int64, error)
	Collect(ctx context.Context, participantID string) (int64, error)
	TopUp(ctx context.Context, participantID string, amount int64) error
	CreditNet(ctx context.Context, participantID string, gross int64, feeRate decimal.Decimal) (int64, error)
	Withdraw(ctx context.Context, participantID string, amount int64) (*domain.WalletBalance, error)
	Clawback(ctx context.Context, participantID string, amount int64) (int64, error)
	TopUpCheckout(ctx context.Context, actor domain.Actor, amount int64) (*CheckoutSession, error)

	EnsureAccountTx(ctx context.Context, tx pgx.Tx, participantID string, role domain.Role) error
	HoldTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) error
	ReleaseTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) (int64, error)
	CollectTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) (int64, error)
	TopUpTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) error
	CreditNetTx(ctx context.Context, tx pgx.Tx, participantID string, gross int64, feeRate decimal.Decimal) (int64, error)
	ClawbackTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) (int64, error)
}

// TokenGate mints and consumes verification tokens.
type TokenGate interface {
	MintTx(ctx context.Context, tx pgx.Tx, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error)
	Consume(ctx context.Context, actor domain.Actor, orderID string, checkpoint domain.Checkpoint, payload string) (*domain.VerificationToken, error)
	CheckFreshnessTx(ctx context.Context, tx pgx.Tx, orderID string, checkpoint domain.Checkpoint, actorID string, window time.Duration) error
	Reissue(ctx context.Context, actor domain.Actor, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error)
	QRCode(ctx context.Context, actor domain.Actor, orderID string, checkpoint domain.Checkpoint) ([]byte, error)
}

// PlaceOrderParams is the validated input of PlaceOrder.
type PlaceOrderParams struct {
	MerchantID    string
	Fulfillment   domain.Fulfillment
	PaymentMethod domain.PaymentMethod
	EstimatedKilo decimal.Decimal
	PricePerKilo  int64
	Extras        int64
	PickupLat     float64
	PickupLng     float64
	MerchantLat   float64
	MerchantLng   float64
}

// OrderService is the order state machine.
type OrderService interface {
	PlaceOrder(ctx context.Context, actor domain.Actor, params PlaceOrderParams) (*domain.Order, error)
	Get(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	Accept(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	Claim(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	Pickup(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	Deliver(ctx context.Context, actor domain.Actor, orderID string, actualKilo decimal.Decimal) (*domain.Order, error)
	ReadyForReturn(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	ReturnPickup(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	Complete(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	Cancel(ctx context.Context, actor domain.Actor, orderID string, reason string) (*domain.Order, error)
	Refund(ctx context.Context, actor domain.Actor, orderID string, reason string) (*domain.Order, error)
	SettleShortfall(ctx context.Context, actor domain.Actor, orderID string) (*CheckoutSession, error)
}

// Settlement is a prepared weight or payment correction. Its gateway refunds
// (if any) have already been issued when it is handed to ApplyTx.
type Settlement struct {
	Plan    domain.SettlementPlan
	Refunds []domain.ChargeRefund
}

// SettlementService reconciles retained money against an order's true price
// and keeps the merchant's net credit in step with it.
type SettlementService interface {
	Prepare(ctx context.Context, order *domain.Order, idempotencyKey string) (*Settlement, error)
	ApplyTx(ctx context.Context, tx pgx.Tx, order *domain.Order, s *Settlement) error
	RefundAll(ctx context.Context, order *domain.Order, reason string, idempotencyKey string) ([]domain.ChargeRefund, error)
	SyncMerchantCreditTx(ctx context.Context, tx pgx.Tx, order *domain.Order) error
}

// ReconciliationService applies payment webhooks exactly once.
type ReconciliationService interface {
	HandleEvent(ctx context.Context, event domain.GatewayEvent) (domain.ReconcileOutcome, error)
}
