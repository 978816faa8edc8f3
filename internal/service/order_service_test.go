package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_PlaceOrder_Pricing(t *testing.T) {
	e := newEngine(t)

	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentDelivery)
	assert.Equal(t, int64(4900), o.CourierFee)
	assert.Equal(t, int64(980), o.CourierPlatformFee)
	assert.Equal(t, int64(34900), o.TotalPrice)
	assert.Equal(t, domain.OrderStatusAwaitingPayment, o.Status)
	assert.Equal(t, domain.PaymentStatusPending, o.PaymentStatus)
	assert.True(t, strings.HasPrefix(o.PaymentReference, "order-"+o.ID+"-cust-"+customer.ID+"-"))
	require.NotNil(t, o.ExpiresAt)
	assert.Equal(t, e.clock.Now().Add(30*time.Minute), *o.ExpiresAt)
	assert.NotEmpty(t, o.CheckoutURL)

	require.Len(t, e.checkouts, 1)
	assert.Equal(t, int64(34900), e.checkouts[0].Amount)
	assert.Equal(t, o.PaymentReference, e.checkouts[0].ReferenceID)
}

func TestOrderService_PlaceOrder_CardUsesPreorderReference(t *testing.T) {
	e := newEngine(t)
	o := e.place(t, domain.PaymentMethodCard, domain.FulfillmentPickup)
	assert.Equal(t, domain.PreorderReference(o.ID, customer.ID), o.PaymentReference)

	ref, ok := domain.ParseReference(o.PaymentReference)
	require.True(t, ok)
	assert.Equal(t, o.ID, ref.OrderID)
}

func TestOrderService_PlaceOrder_CashSkipsGateway(t *testing.T) {
	e := newEngine(t)
	o := e.place(t, domain.PaymentMethodCash, domain.FulfillmentDelivery)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.Equal(t, domain.PaymentStatusUnpaid, o.PaymentStatus)
	assert.Empty(t, o.PaymentReference)
	assert.Empty(t, e.checkouts)
}

func TestOrderService_PlaceOrder_DistanceFare(t *testing.T) {
	e := newEngine(t)
	o, err := e.orderSvc.PlaceOrder(context.Background(), customer, ports.PlaceOrderParams{
		MerchantID:    merchant.ID,
		Fulfillment:   domain.FulfillmentDelivery,
		PaymentMethod: domain.PaymentMethodCash,
		EstimatedKilo: decimal.NewFromInt(1),
		PricePerKilo:  5000,
		PickupLat:     14.5547, PickupLng: 121.0244,
		MerchantLat: 14.6091, MerchantLng: 121.0223,
	})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, o.DistanceKm, 1.5)
	assert.Equal(t, int64(4900+3000), o.CourierFee)
}

func TestOrderService_PlaceOrder_Validation(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	valid := ports.PlaceOrderParams{
		MerchantID:    merchant.ID,
		Fulfillment:   domain.FulfillmentDelivery,
		PaymentMethod: domain.PaymentMethodCash,
		EstimatedKilo: decimal.NewFromInt(3),
		PricePerKilo:  5000,
	}

	_, err := e.orderSvc.PlaceOrder(ctx, merchant, valid)
	assertCode(t, err, apperror.CodeForbidden)

	tests := []struct {
		name   string
		mutate func(p *ports.PlaceOrderParams)
	}{
		{"no merchant", func(p *ports.PlaceOrderParams) { p.MerchantID = "" }},
		{"bad fulfillment", func(p *ports.PlaceOrderParams) { p.Fulfillment = "drone" }},
		{"bad method", func(p *ports.PlaceOrderParams) { p.PaymentMethod = "crypto" }},
		{"zero kilo", func(p *ports.PlaceOrderParams) { p.EstimatedKilo = decimal.Zero }},
		{"zero price", func(p *ports.PlaceOrderParams) { p.PricePerKilo = 0 }},
		{"negative extras", func(p *ports.PlaceOrderParams) { p.Extras = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			_, err := e.orderSvc.PlaceOrder(ctx, customer, p)
			assertCode(t, err, apperror.CodeValidation)
		})
	}
}

func TestOrderService_PlaceOrder_GatewayFailurePersistsNothing(t *testing.T) {
	e := newEngine(t)
	e.orderSvc.gateway = failingGateway{}
	_, err := e.orderSvc.PlaceOrder(context.Background(), customer, ports.PlaceOrderParams{
		MerchantID:    merchant.ID,
		Fulfillment:   domain.FulfillmentDelivery,
		PaymentMethod: domain.PaymentMethodGCash,
		EstimatedKilo: decimal.NewFromInt(3),
		PricePerKilo:  5000,
	})
	assertCode(t, err, apperror.CodeGatewayFailure)
}

type failingGateway struct{}

func (failingGateway) CreateCheckout(context.Context, ports.CheckoutRequest) (*ports.CheckoutSession, error) {
	return nil, errors.New("503 from gateway")
}

func (failingGateway) IssueRefund(context.Context, ports.RefundRequest) (*ports.Refund, error) {
	return nil, errors.New("503 from gateway")
}

func TestOrderService_DeliveryLifecycle_Overweight(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)

	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentDelivery)
	assert.Equal(t, domain.OutcomeApplied, e.pay(t, o.PaymentReference, "evt_1", 34900))

	paid := e.order(t, o.ID)
	assert.Equal(t, domain.OrderStatusPending, paid.Status)
	assert.Equal(t, domain.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, int64(24000), e.balance(t, merchant.ID).Balance, "net of 300.00 laundry at 20%")

	e.toPickedUp(t, o.ID)
	b := e.balance(t, courier.ID)
	assert.Equal(t, int64(9020), b.Balance)
	assert.Equal(t, int64(980), b.Held)

	// 4 kg instead of 5: 60.00 comes back to the customer.
	delivered, err := e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDeliveredByRider, delivered.Status)
	assert.Equal(t, domain.PaymentStatusRefunded, delivered.PaymentStatus)
	assert.Equal(t, int64(6000), delivered.RefundedAmount)
	assert.Equal(t, int64(28900), delivered.Retained())
	assert.Equal(t, int64(6000), e.refundTotal())
	assert.Equal(t, "ch_evt_1", e.refunds[0].ChargeID)
	assert.Equal(t, int64(19200), e.balance(t, merchant.ID).Balance)

	_, err = e.orderSvc.ReadyForReturn(ctx, merchant, o.ID)
	require.NoError(t, err)
	e.scan(t, o.ID, domain.CheckpointReturn)
	_, err = e.orderSvc.ReturnPickup(ctx, courier, o.ID)
	require.NoError(t, err)

	done, err := e.orderSvc.Complete(ctx, courier, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, done.Status)

	b = e.balance(t, courier.ID)
	assert.Equal(t, int64(9020+4900), b.Balance)
	assert.Zero(t, b.Held)

	// Everything retained is accounted for: merchant net, courier fare,
	// platform commission on the laundry.
	merchantNet := e.balance(t, merchant.ID).Balance
	assert.Equal(t, done.Retained(), merchantNet+done.CourierFee+testFees().PlatformFee(done.LaundryPrice()))

	for _, st := range []domain.OrderStatus{
		domain.OrderStatusPending, domain.OrderStatusAcceptedByMerchant, domain.OrderStatusAcceptedByRider,
		domain.OrderStatusPickedUp, domain.OrderStatusDeliveredByRider, domain.OrderStatusAwaitingRiderReturn,
		domain.OrderStatusReturnPickedUp, domain.OrderStatusCompleted,
	} {
		assert.Contains(t, done.Timeline, st)
	}
}

func TestOrderService_Underweight_ShortfallSettledByWebhook(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)

	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentPickup)
	e.pay(t, o.PaymentReference, "evt_1", 34900)
	e.toPickedUp(t, o.ID)

	delivered, err := e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(6))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusUnderpaid, delivered.PaymentStatus)
	assert.Equal(t, int64(6000), delivered.AdditionalAmountDue)
	assert.Zero(t, e.refundTotal())

	_, err = e.orderSvc.SettleShortfall(ctx, merchant, o.ID)
	assertCode(t, err, apperror.CodeForbidden)

	session, err := e.orderSvc.SettleShortfall(ctx, customer, o.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	last := e.checkouts[len(e.checkouts)-1]
	assert.Equal(t, int64(6000), last.Amount)

	e.clock.Advance(time.Minute)
	assert.Equal(t, domain.OutcomeApplied, e.pay(t, last.ReferenceID, "evt_2", 6000))

	settled := e.order(t, o.ID)
	assert.Equal(t, domain.PaymentStatusPaid, settled.PaymentStatus)
	assert.Zero(t, settled.AdditionalAmountDue)
	assert.Equal(t, int64(28800), e.balance(t, merchant.ID).Balance, "net of 360.00 laundry")

	// Pickup orders are closed by the merchant when the customer collects.
	_, err = e.orderSvc.Complete(ctx, courier, o.ID)
	assertCode(t, err, apperror.CodeForbidden)
	done, err := e.orderSvc.Complete(ctx, merchant, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, done.Status)
}

func TestOrderService_CompleteAllowsUnderpaid(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)

	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentPickup)
	e.pay(t, o.PaymentReference, "evt_1", 34900)
	e.toPickedUp(t, o.ID)
	_, err := e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(6))
	require.NoError(t, err)

	done, err := e.orderSvc.Complete(ctx, merchant, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusUnderpaid, done.PaymentStatus)
}

func TestOrderService_CashLifecycle(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)
	e.fundedWallet(t, merchant, 10000)

	o := e.place(t, domain.PaymentMethodCash, domain.FulfillmentPickup)
	e.toPickedUp(t, o.ID)

	delivered, err := e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.Equal(t, int64(4800), delivered.MerchantHeld)
	b := e.balance(t, merchant.ID)
	assert.Equal(t, int64(5200), b.Balance)
	assert.Equal(t, int64(4800), b.Held)
	assert.Empty(t, e.refunds, "cash orders never touch the gateway")

	done, err := e.orderSvc.Complete(ctx, merchant, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, done.PaymentStatus)

	b = e.balance(t, merchant.ID)
	assert.Equal(t, int64(5200), b.Balance)
	assert.Zero(t, b.Held)

	cb := e.balance(t, courier.ID)
	assert.Equal(t, int64(9020), cb.Balance, "cash couriers collect their fare in person")
	assert.Zero(t, cb.Held)
}

func TestOrderService_CashDeliverNeedsMerchantFunds(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)

	o := e.place(t, domain.PaymentMethodCash, domain.FulfillmentPickup)
	e.toPickedUp(t, o.ID)

	_, err := e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(4))
	assertCode(t, err, apperror.CodeInsufficientFunds)

	after := e.order(t, o.ID)
	assert.Equal(t, domain.OrderStatusPickedUp, after.Status)
	assert.False(t, after.ActualKilo.Valid)
}

func TestOrderService_FailedTransitionsLeaveOrderUntouched(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	o := e.place(t, domain.PaymentMethodCash, domain.FulfillmentDelivery)
	before := e.order(t, o.ID)

	other := domain.Actor{ID: "merch-2", Role: domain.RoleMerchant}
	_, err := e.orderSvc.Accept(ctx, other, o.ID)
	assertCode(t, err, apperror.CodeForbidden)

	_, err = e.orderSvc.Claim(ctx, courier, o.ID)
	assertCode(t, err, apperror.CodeInvalidState)

	_, err = e.orderSvc.Pickup(ctx, courier, o.ID)
	assertCode(t, err, apperror.CodeForbidden)

	_, err = e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(1))
	assertCode(t, err, apperror.CodeForbidden)

	_, err = e.orderSvc.Refund(ctx, customer, o.ID, "changed my mind")
	assertCode(t, err, apperror.CodeForbidden)

	_, err = e.orderSvc.Accept(ctx, merchant, "missing")
	assertCode(t, err, apperror.CodeNotFound)

	assert.Equal(t, before, e.order(t, o.ID))

	_, err = e.orderSvc.Accept(ctx, merchant, o.ID)
	require.NoError(t, err)

	// No courier wallet: the hold fails and the claim is rolled back.
	_, err = e.orderSvc.Claim(ctx, courier, o.ID)
	assertCode(t, err, apperror.CodeNotFound)
	after := e.order(t, o.ID)
	assert.Equal(t, domain.OrderStatusAcceptedByMerchant, after.Status)
	assert.Empty(t, after.CourierID)

	e.fundedWallet(t, courier, 10000)
	_, err = e.orderSvc.Claim(ctx, courier, o.ID)
	require.NoError(t, err)

	second := domain.Actor{ID: "rider-2", Role: domain.RoleCourier}
	e.fundedWallet(t, second, 10000)
	_, err = e.orderSvc.Claim(ctx, second, o.ID)
	assertCode(t, err, apperror.CodeInvalidState)
	assert.Equal(t, int64(10000), e.balance(t, second.ID).Balance)
}

func TestOrderService_PickupRequiresFreshScan(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)
	o := e.place(t, domain.PaymentMethodCash, domain.FulfillmentDelivery)

	_, err := e.orderSvc.Accept(ctx, merchant, o.ID)
	require.NoError(t, err)
	_, err = e.orderSvc.Claim(ctx, courier, o.ID)
	require.NoError(t, err)

	_, err = e.orderSvc.Pickup(ctx, courier, o.ID)
	assertCode(t, err, apperror.CodeInvalidState)

	e.scan(t, o.ID, domain.CheckpointDelivery)
	e.clock.Advance(11 * time.Minute)
	_, err = e.orderSvc.Pickup(ctx, courier, o.ID)
	assertCode(t, err, apperror.CodeTokenExpired)
	assert.Equal(t, domain.OrderStatusAcceptedByRider, e.order(t, o.ID).Status)

	// The merchant re-issues, the courier scans again and may proceed.
	_, err = e.gate.Reissue(ctx, merchant, o.ID, domain.CheckpointDelivery)
	require.NoError(t, err)
	e.scan(t, o.ID, domain.CheckpointDelivery)
	_, err = e.orderSvc.Pickup(ctx, courier, o.ID)
	require.NoError(t, err)
}

func TestOrderService_CompleteRejectsPendingPayment(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentPickup)

	_, err := e.orderSvc.Complete(ctx, merchant, o.ID)
	assertCode(t, err, apperror.CodeInvalidState)
}

func TestOrderService_ReadyForReturnOnlyForDelivery(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)
	e.fundedWallet(t, merchant, 10000)
	o := e.place(t, domain.PaymentMethodCash, domain.FulfillmentPickup)
	e.toPickedUp(t, o.ID)
	_, err := e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(5))
	require.NoError(t, err)

	_, err = e.orderSvc.ReadyForReturn(ctx, merchant, o.ID)
	assertCode(t, err, apperror.CodeInvalidState)
}

func TestOrderService_AcceptExpiredCheckout(t *testing.T) {
	e := newEngine(t)
	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentDelivery)

	_, err := e.orderSvc.Accept(context.Background(), merchant, o.ID)
	assertCode(t, err, apperror.CodeInvalidState)

	e.clock.Advance(31 * time.Minute)
	_, err = e.orderSvc.Accept(context.Background(), merchant, o.ID)
	assertCode(t, err, apperror.CodeOrderExpired)

	cancelled, err := e.orderSvc.Cancel(context.Background(), customer, o.ID, "checkout expired")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.Empty(t, e.refunds)
}

func TestOrderService_CancelPaidOrderRefundsAndClawsBack(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentDelivery)
	e.pay(t, o.PaymentReference, "evt_1", 34900)
	require.Equal(t, int64(24000), e.balance(t, merchant.ID).Balance)

	_, err := e.orderSvc.Cancel(ctx, courier, o.ID, "nope")
	assertCode(t, err, apperror.CodeForbidden)

	cancelled, err := e.orderSvc.Cancel(ctx, customer, o.ID, "found another shop")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, domain.PaymentStatusRefunded, cancelled.PaymentStatus)
	assert.Equal(t, "found another shop", cancelled.CancelReason)
	assert.Zero(t, cancelled.Retained())
	assert.Equal(t, int64(34900), e.refundTotal())
	assert.Zero(t, e.balance(t, merchant.ID).Balance)

	_, err = e.orderSvc.Cancel(ctx, customer, o.ID, "again")
	assertCode(t, err, apperror.CodeInvalidState)
	assert.Equal(t, int64(34900), e.refundTotal())
}

func TestOrderService_CancelAfterAcceptIsRejected(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	o := e.place(t, domain.PaymentMethodCash, domain.FulfillmentDelivery)
	_, err := e.orderSvc.Accept(ctx, merchant, o.ID)
	require.NoError(t, err)

	_, err = e.orderSvc.Cancel(ctx, customer, o.ID, "too slow")
	assertCode(t, err, apperror.CodeInvalidState)
}

func TestOrderService_CancelGatewayFailureKeepsOrder(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentDelivery)
	e.pay(t, o.PaymentReference, "evt_1", 34900)

	e.refundErr = errors.New("gateway timeout")
	_, err := e.orderSvc.Cancel(ctx, customer, o.ID, "changed plans")
	assertCode(t, err, apperror.CodeGatewayFailure)

	after := e.order(t, o.ID)
	assert.Equal(t, domain.OrderStatusPending, after.Status)
	assert.Equal(t, int64(24000), e.balance(t, merchant.ID).Balance)
}

func TestOrderService_DeliverGatewayFailureKeepsOrder(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)
	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentDelivery)
	e.pay(t, o.PaymentReference, "evt_1", 34900)
	e.toPickedUp(t, o.ID)

	e.refundErr = errors.New("gateway timeout")
	_, err := e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(4))
	assertCode(t, err, apperror.CodeGatewayFailure)
	assert.Equal(t, domain.OrderStatusPickedUp, e.order(t, o.ID).Status)

	e.refundErr = nil
	_, err = e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.Equal(t, int64(6000), e.refundTotal())
}

func TestOrderService_AdminRefundReleasesEscrow(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)
	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentDelivery)
	e.pay(t, o.PaymentReference, "evt_1", 34900)
	e.toPickedUp(t, o.ID)

	refunded, err := e.orderSvc.Refund(ctx, admin, o.ID, "damaged items")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusRefunded, refunded.Status)
	assert.Equal(t, domain.PaymentStatusRefunded, refunded.PaymentStatus)
	assert.Zero(t, refunded.Retained())
	assert.Zero(t, refunded.CourierHeld)
	assert.Equal(t, int64(34900), e.refundTotal())

	cb := e.balance(t, courier.ID)
	assert.Equal(t, int64(10000), cb.Balance)
	assert.Zero(t, cb.Held)
	assert.Zero(t, e.balance(t, merchant.ID).Balance)

	_, err = e.orderSvc.Refund(ctx, admin, o.ID, "twice")
	assertCode(t, err, apperror.CodeInvalidState)
}

func TestOrderService_AdminRefundSplitsAcrossShortfallCharge(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)
	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentDelivery)
	e.pay(t, o.PaymentReference, "evt_1", 34900)
	e.toPickedUp(t, o.ID)

	_, err := e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(6))
	require.NoError(t, err)
	_, err = e.orderSvc.SettleShortfall(ctx, customer, o.ID)
	require.NoError(t, err)
	e.clock.Advance(time.Minute)
	shortfallRef := e.checkouts[len(e.checkouts)-1].ReferenceID
	assert.Equal(t, domain.OutcomeApplied, e.pay(t, shortfallRef, "evt_2", 6000))
	require.Equal(t, int64(40900), e.order(t, o.ID).Retained())

	refunded, err := e.orderSvc.Refund(ctx, admin, o.ID, "lost items")
	require.NoError(t, err)

	require.Len(t, e.refunds, 2)
	assert.Equal(t, "ch_evt_2", e.refunds[0].ChargeID)
	assert.Equal(t, int64(6000), e.refunds[0].Amount)
	assert.Equal(t, "ch_evt_1", e.refunds[1].ChargeID)
	assert.Equal(t, int64(34900), e.refunds[1].Amount)
	assert.NotEqual(t, e.refunds[0].IdempotencyKey, e.refunds[1].IdempotencyKey)

	assert.Zero(t, refunded.Retained())
	for _, c := range refunded.Charges {
		assert.Zero(t, c.Refundable(), c.ID)
	}
	assert.Zero(t, e.balance(t, merchant.ID).Balance)
	assert.Equal(t, int64(10000), e.balance(t, courier.ID).Balance)
}

func TestOrderService_OverweightRefundDrawsFromNewestCharge(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.fundedWallet(t, courier, 10000)
	o := e.place(t, domain.PaymentMethodGCash, domain.FulfillmentDelivery)
	e.pay(t, o.PaymentReference, "evt_1", 20000)
	e.pay(t, o.PaymentReference, "evt_2", 14900)
	e.toPickedUp(t, o.ID)

	// 2 kg instead of 5: 180.00 comes back, more than the second charge holds.
	delivered, err := e.orderSvc.Deliver(ctx, courier, o.ID, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, int64(18000), delivered.RefundedAmount)

	require.Len(t, e.refunds, 2)
	assert.Equal(t, ports.RefundRequest{
		ChargeID: "ch_evt_2", Amount: 14900, Reason: "weight_correction", IdempotencyKey: e.refunds[0].IdempotencyKey,
	}, e.refunds[0])
	assert.Equal(t, "ch_evt_1", e.refunds[1].ChargeID)
	assert.Equal(t, int64(3100), e.refunds[1].Amount)
	assert.Equal(t, []domain.Charge{
		{ID: "ch_evt_1", Amount: 20000, Refunded: 3100},
		{ID: "ch_evt_2", Amount: 14900, Refunded: 14900},
	}, delivered.Charges)
}

func TestOrderService_Get_Visibility(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	o := e.place(t, domain.PaymentMethodCash, domain.FulfillmentDelivery)

	for _, a := range []domain.Actor{customer, merchant, admin} {
		_, err := e.orderSvc.Get(ctx, a, o.ID)
		assert.NoError(t, err, a.ID)
	}
	_, err := e.orderSvc.Get(ctx, courier, o.ID)
	assertCode(t, err, apperror.CodeForbidden)

	_, err = e.orderSvc.Accept(ctx, merchant, o.ID)
	require.NoError(t, err)
	_, err = e.orderSvc.Get(ctx, courier, o.ID)
	assert.NoError(t, err, "open orders are visible to couriers")
}

func TestOrderService_PublishesAfterCommit(t *testing.T) {
	e := newEngine(t)
	e.place(t, domain.PaymentMethodCash, domain.FulfillmentDelivery)
	assert.Equal(t, 1, e.eventCount)
}
