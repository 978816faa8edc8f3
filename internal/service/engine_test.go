package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"laundry-hub/internal/adapter/storage/memory"
	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/internal/core/ports/mocks"
	"laundry-hub/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// testClock is a settable clock shared by every service of an engine.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var (
	customer = domain.Actor{ID: "cust-1", Role: domain.RoleCustomer}
	merchant = domain.Actor{ID: "merch-1", Role: domain.RoleMerchant}
	courier  = domain.Actor{ID: "rider-1", Role: domain.RoleCourier}
	admin    = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
)

func testFees() domain.FeeSchedule {
	return domain.FeeSchedule{
		PlatformRate: decimal.RequireFromString("0.20"),
		BaseFare:     4900,
		PerBlockFare: 3000,
		BlockKm:      5,
		IncludedKm:   5,
	}
}

// engine wires the real services over the memory store. Only the payment
// gateway and the event publisher are mocked.
type engine struct {
	store    *memory.Store
	orders   *memory.OrderRepo
	wallets  *memory.WalletRepo
	tokens   *memory.TokenRepo
	receipts *memory.ReceiptRepo

	wallet     *WalletServiceImpl
	gate       *TokenGateServiceImpl
	settlement *SettlementServiceImpl
	orderSvc   *OrderServiceImpl
	recon      *ReconciliationServiceImpl

	gateway   *mocks.MockPaymentGateway
	publisher *mocks.MockEventPublisher
	clock     *testClock

	mu         sync.Mutex
	refunds    []ports.RefundRequest
	refundErr  error
	checkouts  []ports.CheckoutRequest
	eventCount int
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := memory.NewStore()
	e := &engine{
		store:     store,
		orders:    memory.NewOrderRepo(store),
		wallets:   memory.NewWalletRepo(store),
		tokens:    memory.NewTokenRepo(store),
		receipts:  memory.NewReceiptRepo(store),
		gateway:   mocks.NewMockPaymentGateway(ctrl),
		publisher: mocks.NewMockEventPublisher(ctrl),
		clock:     &testClock{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	e.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.CheckoutRequest) (*ports.CheckoutSession, error) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.checkouts = append(e.checkouts, req)
			id := fmt.Sprintf("cs_%d", len(e.checkouts))
			return &ports.CheckoutSession{ID: id, CheckoutURL: "https://pay.test/" + id}, nil
		}).AnyTimes()
	e.gateway.EXPECT().IssueRefund(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.RefundRequest) (*ports.Refund, error) {
			e.mu.Lock()
			defer e.mu.Unlock()
			if e.refundErr != nil {
				return nil, e.refundErr
			}
			e.refunds = append(e.refunds, req)
			return &ports.Refund{ID: fmt.Sprintf("rf_%d", len(e.refunds)), Status: "pending"}, nil
		}).AnyTimes()
	e.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.OrderEvent) error {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.eventCount++
			return nil
		}).AnyTimes()

	keys, err := DeriveKeyRing(testAESKey)
	require.NoError(t, err)
	enc, err := NewAESEncryptionService(keys.BalanceKey())
	require.NoError(t, err)

	log := zerolog.Nop()
	fees := testFees()

	e.wallet = NewWalletService(e.wallets, enc, store, e.gateway, WalletPolicy{
		MinWithdrawal:  500,
		WithdrawalLock: 360 * time.Hour,
		HoldTTL:        30 * time.Minute,
		Currency:       "PHP",
	}, nil, log)
	e.wallet.now = e.clock.Now

	e.gate = NewTokenGateService(e.tokens, e.orders, store, NewHMACSignatureService(), NewQRCodeRenderer(128),
		keys.TokenSigningKey(), 10*time.Minute, log)
	e.gate.now = e.clock.Now

	e.settlement = NewSettlementService(e.wallet, e.gateway, fees, nil, log)

	e.orderSvc = NewOrderService(e.orders, store, e.wallet, e.gate, e.settlement, e.gateway, e.publisher, fees, OrderPolicy{
		CheckoutTTL:    30 * time.Minute,
		TokenFreshness: 10 * time.Minute,
		Currency:       "PHP",
	}, nil, log)
	e.orderSvc.now = e.clock.Now

	e.recon = NewReconciliationService(e.orders, e.receipts, store, e.wallet, e.settlement, e.gateway, nil, e.publisher, time.Hour, nil, log)
	e.recon.now = e.clock.Now
	return e
}

// fundedWallet opens a wallet for actor and tops it up.
func (e *engine) fundedWallet(t *testing.T, actor domain.Actor, amount int64) {
	t.Helper()
	_, err := e.wallet.CreateAccount(context.Background(), actor.ID, actor.Role)
	require.NoError(t, err)
	if amount > 0 {
		require.NoError(t, e.wallet.TopUp(context.Background(), actor.ID, amount))
	}
}

func (e *engine) balance(t *testing.T, participantID string) *domain.WalletBalance {
	t.Helper()
	b, err := e.wallet.GetBalance(context.Background(), participantID)
	require.NoError(t, err)
	return b
}

func (e *engine) order(t *testing.T, id string) *domain.Order {
	t.Helper()
	o, err := e.orders.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func (e *engine) refundTotal() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var total int64
	for _, r := range e.refunds {
		total += r.Amount
	}
	return total
}

// place creates a 5 kg order at 60.00/kg with the merchant next door, so
// the courier fee is the base fare and the total is 349.00.
func (e *engine) place(t *testing.T, method domain.PaymentMethod, fulfillment domain.Fulfillment) *domain.Order {
	t.Helper()
	o, err := e.orderSvc.PlaceOrder(context.Background(), customer, ports.PlaceOrderParams{
		MerchantID:    merchant.ID,
		Fulfillment:   fulfillment,
		PaymentMethod: method,
		EstimatedKilo: decimal.NewFromInt(5),
		PricePerKilo:  6000,
		PickupLat:     14.5547,
		PickupLng:     121.0244,
		MerchantLat:   14.5547,
		MerchantLng:   121.0244,
	})
	require.NoError(t, err)
	return o
}

func (e *engine) pay(t *testing.T, reference, eventID string, amount int64) domain.ReconcileOutcome {
	t.Helper()
	outcome, err := e.recon.HandleEvent(context.Background(), domain.GatewayEvent{
		EventID:     eventID,
		ChargeID:    "ch_" + eventID,
		Status:      domain.ChargeSucceeded,
		ReferenceID: reference,
		Amount:      amount,
		Currency:    "PHP",
	})
	require.NoError(t, err)
	return outcome
}

func (e *engine) scan(t *testing.T, orderID string, cp domain.Checkpoint) {
	t.Helper()
	tok, err := e.tokens.GetActive(context.Background(), orderID, cp)
	require.NoError(t, err)
	require.NotNil(t, tok)
	_, err = e.gate.Consume(context.Background(), courier, orderID, cp, tok.Payload)
	require.NoError(t, err)
}

// toPickedUp drives a paid order through acceptance, claim and pickup.
func (e *engine) toPickedUp(t *testing.T, orderID string) {
	t.Helper()
	ctx := context.Background()
	_, err := e.orderSvc.Accept(ctx, merchant, orderID)
	require.NoError(t, err)
	_, err = e.orderSvc.Claim(ctx, courier, orderID)
	require.NoError(t, err)
	e.scan(t, orderID, domain.CheckpointDelivery)
	_, err = e.orderSvc.Pickup(ctx, courier, orderID)
	require.NoError(t, err)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code, appErr.Error())
}
