package dto

import (
	"time"

	"laundry-hub/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

// PlaceOrderRequest is the request body for POST /api/v1/orders.
type PlaceOrderRequest struct {
	MerchantID       string          `json:"merchant_id" binding:"required,max=128,safe_id"`
	Fulfillment      string          `json:"fulfillment" binding:"required,oneof=delivery pickup"`
	PaymentMethod    string          `json:"payment_method" binding:"required,oneof=cash gcash card"`
	EstimatedKilo    decimal.Decimal `json:"estimated_kilo"`
	PricePerKilo     int64           `json:"price_per_kilo" binding:"required,gt=0"`
	Extras           int64           `json:"extras" binding:"gte=0"`
	PickupLocation   Location        `json:"pickup_location"`
	MerchantLocation Location        `json:"merchant_location"`
}

// DeliverRequest carries the weight measured at the shop.
type DeliverRequest struct {
	ActualKilo decimal.Decimal `json:"actual_kilo"`
}

// ReasonRequest is the body of cancel and refund calls.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ScanRequest carries the payload read from a QR code.
type ScanRequest struct {
	Payload string `json:"payload" binding:"required,max=2048"`
}

// AmountRequest is the body of withdraw and top-up calls. Amounts are minor units.
type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID                  string               `json:"id"`
	CustomerID          string               `json:"customer_id"`
	MerchantID          string               `json:"merchant_id"`
	CourierID           string               `json:"courier_id,omitempty"`
	Status              string               `json:"status"`
	Fulfillment         string               `json:"fulfillment"`
	PaymentMethod       string               `json:"payment_method"`
	PaymentStatus       string               `json:"payment_status"`
	EstimatedKilo       string               `json:"estimated_kilo"`
	ActualKilo          *string              `json:"actual_kilo,omitempty"`
	PricePerKilo        int64                `json:"price_per_kilo"`
	Extras              int64                `json:"extras"`
	DistanceKm          float64              `json:"distance_km"`
	CourierFee          int64                `json:"courier_fee"`
	TotalPrice          int64                `json:"total_price"`
	TruePrice           int64                `json:"true_price"`
	ChargedAmount       int64                `json:"charged_amount"`
	RefundedAmount      int64                `json:"refunded_amount"`
	AdditionalAmountDue int64                `json:"additional_amount_due"`
	CheckoutURL         string               `json:"checkout_url,omitempty"`
	ExpiresAt           *time.Time           `json:"expires_at,omitempty"`
	CancelReason        string               `json:"cancel_reason,omitempty"`
	Timeline            map[string]time.Time `json:"timeline"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// NewOrderResponse maps a domain order to its public view.
func NewOrderResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		MerchantID:          o.MerchantID,
		CourierID:           o.CourierID,
		Status:              string(o.Status),
		Fulfillment:         string(o.Fulfillment),
		PaymentMethod:       string(o.PaymentMethod),
		PaymentStatus:       string(o.PaymentStatus),
		EstimatedKilo:       o.EstimatedKilo.String(),
		PricePerKilo:        o.PricePerKilo,
		Extras:              o.Extras,
		DistanceKm:          o.DistanceKm,
		CourierFee:          o.CourierFee,
		TotalPrice:          o.TotalPrice,
		TruePrice:           o.TruePrice(),
		ChargedAmount:       o.ChargedAmount,
		RefundedAmount:      o.RefundedAmount,
		AdditionalAmountDue: o.AdditionalAmountDue,
		CheckoutURL:         o.CheckoutURL,
		ExpiresAt:           o.ExpiresAt,
		CancelReason:        o.CancelReason,
		Timeline:            make(map[string]time.Time, len(o.Timeline)),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
	if o.ActualKilo.Valid {
		s := o.ActualKilo.Decimal.String()
		resp.ActualKilo = &s
	}
	for status, at := range o.Timeline {
		resp.Timeline[string(status)] = at
	}
	return resp
}

// CheckoutResponse points the payer at a hosted checkout page.
type CheckoutResponse struct {
	CheckoutID  string `json:"checkout_id"`
	CheckoutURL string `json:"checkout_url"`
}

// TokenResponse is the public view of a verification token. The payload is
// only returned to the merchant who prints or shows it.
type TokenResponse struct {
	ID         string     `json:"id"`
	OrderID    string     `json:"order_id"`
	Checkpoint string     `json:"checkpoint"`
	Payload    string     `json:"payload,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	UsedBy     string     `json:"used_by,omitempty"`
}

// NewTokenResponse maps a token; withPayload controls payload disclosure.
func NewTokenResponse(t *domain.VerificationToken, withPayload bool) TokenResponse {
	resp := TokenResponse{
		ID:         t.ID.String(),
		OrderID:    t.OrderID,
		Checkpoint: string(t.Checkpoint),
		CreatedAt:  t.CreatedAt,
		UsedAt:     t.UsedAt,
		UsedBy:     t.UsedBy,
	}
	if withPayload {
		resp.Payload = t.Payload
	}
	return resp
}

// WalletResponse is the owner's view of a wallet.
type WalletResponse struct {
	AccountNumber string     `json:"account_number"`
	Balance       int64      `json:"balance"`
	Held          int64      `json:"held"`
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`
	LockUntil     time.Time  `json:"lock_until"`
	Withdrawable  bool       `json:"withdrawable"`
}

// NewWalletResponse maps a decrypted balance view at time now.
func NewWalletResponse(b *domain.WalletBalance, now time.Time) WalletResponse {
	return WalletResponse{
		AccountNumber: b.AccountNumber,
		Balance:       b.Balance,
		Held:          b.Held,
		HoldExpiresAt: b.HoldExpiresAt,
		LockUntil:     b.LockUntil,
		Withdrawable:  b.Withdrawable(now),
	}
}

// WebhookCharge is the charge object inside a gateway callback.
type WebhookCharge struct {
	ChargeID    string `json:"charge_id" binding:"max=128"`
	Status      string `json:"status" binding:"required,max=32"`
	ReferenceID string `json:"reference_id" binding:"required,max=256"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}

// WebhookEvent is the body of POST /webhooks/payments.
type WebhookEvent struct {
	ID   string        `json:"id" binding:"required,max=128"`
	Type string        `json:"type" binding:"max=64"`
	Data WebhookCharge `json:"data"`
}

// ToDomain converts the callback to the reconciliation input.
func (e WebhookEvent) ToDomain() domain.GatewayEvent {
	return domain.GatewayEvent{
		EventID:     e.ID,
		ChargeID:    e.Data.ChargeID,
		Status:      e.Data.Status,
		ReferenceID: e.Data.ReferenceID,
		Amount:      e.Data.Amount,
		Currency:    e.Data.Currency,
	}
}
