package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusAwaitingPayment     OrderStatus = "awaiting_payment"
	OrderStatusPending             OrderStatus = "pending"
	OrderStatusAcceptedByMerchant  OrderStatus = "accepted_by_merchant"
	OrderStatusAcceptedByRider     OrderStatus = "accepted_by_rider"
	OrderStatusPickedUp            OrderStatus = "picked_up"
	OrderStatusDeliveredByRider    OrderStatus = "delivered_by_rider"
	OrderStatusAwaitingRiderReturn OrderStatus = "awaiting_rider_return"
	OrderStatusReturnPickedUp      OrderStatus = "return_picked_up"
	OrderStatusCompleted           OrderStatus = "completed"
	OrderStatusCancelled           OrderStatus = "cancelled"
	OrderStatusRefunded            OrderStatus = "refunded"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodGCash PaymentMethod = "gcash"
	PaymentMethodCard  PaymentMethod = "card"
)

// Valid reports whether m is a supported method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodGCash || m == PaymentMethodCard
}

// PaymentStatus moves independently of OrderStatus and is only written by
// the reconciliation path (and by completion of cash orders).
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusUnderpaid PaymentStatus = "underpaid"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusUnpaid    PaymentStatus = "unpaid"
)

// Fulfillment says whether the courier also returns the cleaned laundry.
type Fulfillment string

const (
	FulfillmentDelivery Fulfillment = "delivery"
	FulfillmentPickup   Fulfillment = "pickup"
)

// Valid reports whether f is a supported fulfillment type.
func (f Fulfillment) Valid() bool {
	return f == FulfillmentDelivery || f == FulfillmentPickup
}

// forward lists the non-exit transitions. Cancellation and refund are side
// exits checked separately.
var forward = map[OrderStatus]OrderStatus{
	OrderStatusAwaitingPayment:     OrderStatusPending,
	OrderStatusPending:             OrderStatusAcceptedByMerchant,
	OrderStatusAcceptedByMerchant:  OrderStatusAcceptedByRider,
	OrderStatusAcceptedByRider:     OrderStatusPickedUp,
	OrderStatusPickedUp:            OrderStatusDeliveredByRider,
	OrderStatusAwaitingRiderReturn: OrderStatusReturnPickedUp,
	OrderStatusReturnPickedUp:      OrderStatusCompleted,
}

// Order is one laundry job. Amounts are minor units; weights are kilograms.
type Order struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customer_id"`
	MerchantID    string        `json:"merchant_id"`
	CourierID     string        `json:"courier_id,omitempty"`
	Status        OrderStatus   `json:"status"`
	Fulfillment   Fulfillment   `json:"fulfillment"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	EstimatedKilo decimal.Decimal     `json:"estimated_kilo"`
	ActualKilo    decimal.NullDecimal `json:"actual_kilo"`
	PricePerKilo  int64               `json:"price_per_kilo"`
	Extras        int64               `json:"extras"`
	DistanceKm    float64             `json:"distance_km"`

	CourierFee          int64 `json:"courier_fee"`
	CourierPlatformFee  int64 `json:"courier_platform_fee"`
	MerchantFeeEstimate int64 `json:"merchant_fee_estimate"`
	TotalPrice          int64 `json:"total_price"`

	PaymentReference    string     `json:"payment_reference,omitempty"`
	CheckoutURL         string     `json:"checkout_url,omitempty"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	Charges             []Charge   `json:"-"`
	ChargedAmount       int64      `json:"charged_amount"`
	RefundedAmount      int64      `json:"refunded_amount"`
	AdditionalAmountDue int64      `json:"additional_amount_due"`

	MerchantGrossCredited int64 `json:"-"`
	MerchantNetCredited   int64 `json:"-"`
	MerchantHeld          int64 `json:"-"`
	CourierHeld           int64 `json:"-"`

	CancelReason string                    `json:"cancel_reason,omitempty"`
	Timeline     map[OrderStatus]time.Time `json:"timeline"`
	Version      int64                     `json:"-"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// IsTerminal returns true once the order can no longer change state.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted ||
		o.Status == OrderStatusCancelled ||
		o.Status == OrderStatusRefunded
}

// IsCash reports whether payment is collected outside the gateway.
func (o *Order) IsCash() bool {
	return o.PaymentMethod == PaymentMethodCash
}

// Expired reports whether an unpaid checkout session has lapsed at t.
func (o *Order) Expired(t time.Time) bool {
	return o.Status == OrderStatusAwaitingPayment && o.ExpiresAt != nil && t.After(*o.ExpiresAt)
}

// Next returns the forward successor of the current status. Delivered
// orders fork on fulfillment type.
func (o *Order) Next() (OrderStatus, bool) {
	if o.Status == OrderStatusDeliveredByRider {
		if o.Fulfillment == FulfillmentDelivery {
			return OrderStatusAwaitingRiderReturn, true
		}
		return OrderStatusCompleted, true
	}
	next, ok := forward[o.Status]
	return next, ok
}

// CanTransition reports whether to is a legal successor of the current status.
func (o *Order) CanTransition(to OrderStatus) bool {
	if o.IsTerminal() {
		return false
	}
	switch to {
	case OrderStatusCancelled:
		return o.Status == OrderStatusAwaitingPayment || o.Status == OrderStatusPending
	case OrderStatusRefunded:
		return true
	}
	next, ok := o.Next()
	return ok && next == to
}

// Advance moves the order to status to and stamps the timeline.
// Callers check CanTransition first.
func (o *Order) Advance(to OrderStatus, at time.Time) {
	o.Status = to
	if o.Timeline == nil {
		o.Timeline = make(map[OrderStatus]time.Time)
	}
	o.Timeline[to] = at
	o.UpdatedAt = at
}

// BillableKilo is the actual weight once recorded, else the estimate.
func (o *Order) BillableKilo() decimal.Decimal {
	if o.ActualKilo.Valid {
		return o.ActualKilo.Decimal
	}
	return o.EstimatedKilo
}

// LaundryPrice is the weight-based part of the price plus extras.
func (o *Order) LaundryPrice() int64 {
	return KiloPrice(o.BillableKilo(), o.PricePerKilo) + o.Extras
}

// TruePrice is what the customer owes for the order as currently weighed.
func (o *Order) TruePrice() int64 {
	return o.LaundryPrice() + o.CourierFee
}

// Retained is what the platform still holds from the customer.
func (o *Order) Retained() int64 {
	return o.ChargedAmount - o.RefundedAmount
}

// Charge is one captured gateway payment on an order.
type Charge struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Refunded int64  `json:"refunded"`
}

// Refundable is what can still be sent back against the charge.
func (c Charge) Refundable() int64 {
	return c.Amount - c.Refunded
}

// ChargeRefund is the part of a refund taken from one charge.
type ChargeRefund struct {
	ChargeID string
	Amount   int64
	RefundID string
}

// RefundTotal sums the amounts of parts.
func RefundTotal(parts []ChargeRefund) int64 {
	var total int64
	for _, p := range parts {
		total += p.Amount
	}
	return total
}

// RecordCharge adds a captured payment to the order.
func (o *Order) RecordCharge(chargeID string, amount int64) {
	o.Charges = append(o.Charges, Charge{ID: chargeID, Amount: amount})
	o.ChargedAmount += amount
}

// AllocateRefund splits amount across the order's charges, newest first,
// never taking more from a charge than it still has unrefunded.
func (o *Order) AllocateRefund(amount int64) ([]ChargeRefund, error) {
	var parts []ChargeRefund
	remaining := amount
	for i := len(o.Charges) - 1; i >= 0 && remaining > 0; i-- {
		c := o.Charges[i]
		take := min(remaining, c.Refundable())
		if take <= 0 {
			continue
		}
		parts = append(parts, ChargeRefund{ChargeID: c.ID, Amount: take})
		remaining -= take
	}
	if remaining > 0 {
		return nil, fmt.Errorf("refund of %d exceeds refundable charges by %d", amount, remaining)
	}
	return parts, nil
}

// ApplyRefunds books issued refund parts against their charges and the
// order's refunded total.
func (o *Order) ApplyRefunds(parts []ChargeRefund) {
	for _, p := range parts {
		for i := range o.Charges {
			if o.Charges[i].ID == p.ChargeID {
				o.Charges[i].Refunded += p.Amount
				break
			}
		}
		o.RefundedAmount += p.Amount
	}
}

// Clone returns a deep copy safe to mutate.
func (o *Order) Clone() *Order {
	c := *o
	if o.ExpiresAt != nil {
		t := *o.ExpiresAt
		c.ExpiresAt = &t
	}
	c.Charges = append([]Charge(nil), o.Charges...)
	c.Timeline = make(map[OrderStatus]time.Time, len(o.Timeline))
	for k, v := range o.Timeline {
		c.Timeline[k] = v
	}
	return &c
}

// OrderEvent is published after a committed order change.
type OrderEvent struct {
	Type          string        `json:"type"`
	OrderID       string        `json:"order_id"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CustomerID    string        `json:"customer_id"`
	MerchantID    string        `json:"merchant_id"`
	CourierID     string        `json:"courier_id,omitempty"`
	ActorID       string        `json:"actor_id,omitempty"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

// NewOrderEvent snapshots o for publishing.
func NewOrderEvent(eventType string, o *Order, actorID string, at time.Time) OrderEvent {
	return OrderEvent{
		Type:          eventType,
		OrderID:       o.ID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		CustomerID:    o.CustomerID,
		MerchantID:    o.MerchantID,
		CourierID:     o.CourierID,
		ActorID:       actorID,
		OccurredAt:    at,
	}
}
