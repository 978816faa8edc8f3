package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"laundry-hub/internal/adapter/http/middleware"
	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/internal/core/ports/mocks"
	"laundry-hub/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testWebhookSecret = "whsec_test"

var (
	customer = domain.Actor{ID: "cust-1", Role: domain.RoleCustomer}
	merchant = domain.Actor{ID: "merch-1", Role: domain.RoleMerchant}
	courier  = domain.Actor{ID: "rider-1", Role: domain.RoleCourier}
	admin    = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
)

type testRouter struct {
	orders  *mocks.MockOrderService
	gate    *mocks.MockTokenGate
	wallets *mocks.MockWalletService
	recon   *mocks.MockReconciliationService
	health  *mocks.MockHealthChecker
	engine  *gin.Engine
}

// bearer encodes an actor as a test token understood by the fake identity
// service.
func bearer(a domain.Actor) string {
	return a.ID + "|" + string(a.Role)
}

func setupRouter(t *testing.T) *testRouter {
	t.Helper()
	ctrl := gomock.NewController(t)
	tr := &testRouter{
		orders:  mocks.NewMockOrderService(ctrl),
		gate:    mocks.NewMockTokenGate(ctrl),
		wallets: mocks.NewMockWalletService(ctrl),
		recon:   mocks.NewMockReconciliationService(ctrl),
		health:  mocks.NewMockHealthChecker(ctrl),
	}

	identity := mocks.NewMockIdentityService(ctrl)
	identity.EXPECT().Validate(gomock.Any()).DoAndReturn(func(token string) (*domain.Actor, error) {
		id, role, ok := strings.Cut(token, "|")
		if !ok {
			return nil, errors.New("malformed token")
		}
		return &domain.Actor{ID: id, Role: domain.Role(role)}, nil
	}).AnyTimes()

	tr.engine = SetupRouter(RouterDeps{
		OrderSvc:       tr.orders,
		TokenGate:      tr.gate,
		WalletSvc:      tr.wallets,
		ReconSvc:       tr.recon,
		Identity:       identity,
		WebhookSecret:  testWebhookSecret,
		HealthCheckers: []ports.HealthChecker{tr.health},
		MetricsHandler: promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
		Mode:           gin.TestMode,
		Logger:         zerolog.Nop(),
	})
	return tr
}

func (tr *testRouter) do(method, path string, actor *domain.Actor, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+bearer(*actor))
	}
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	return w
}

func (tr *testRouter) webhook(secret string, body interface{}) *httptest.ResponseRecorder {
	raw, ok := body.(string)
	if !ok {
		b, _ := json.Marshal(body)
		raw = string(b)
	}
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(middleware.HeaderWebhookSecret, secret)
	}
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data envelope: %s", w.Body.String())
	return data
}

func errorCodeOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

func sampleOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            "01HXORDER",
		CustomerID:    customer.ID,
		MerchantID:    merchant.ID,
		Status:        status,
		Fulfillment:   domain.FulfillmentDelivery,
		PaymentMethod: domain.PaymentMethodGCash,
		PaymentStatus: domain.PaymentStatusUnpaid,
		EstimatedKilo: decimal.NewFromInt(5),
		PricePerKilo:  6000,
		CourierFee:    4900,
		TotalPrice:    34900,
		CheckoutURL:   "https://pay.test/cs_1",
	}
}

// --- Orders ---

func TestPlaceOrder_Success(t *testing.T) {
	tr := setupRouter(t)
	tr.orders.EXPECT().PlaceOrder(gomock.Any(), customer, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Actor, p ports.PlaceOrderParams) (*domain.Order, error) {
			assert.Equal(t, merchant.ID, p.MerchantID)
			assert.Equal(t, domain.FulfillmentDelivery, p.Fulfillment)
			assert.Equal(t, domain.PaymentMethodGCash, p.PaymentMethod)
			assert.True(t, p.EstimatedKilo.Equal(decimal.RequireFromString("5.5")))
			assert.Equal(t, int64(6000), p.PricePerKilo)
			assert.Equal(t, 14.6, p.PickupLat)
			assert.Equal(t, 121.0, p.MerchantLng)
			return sampleOrder(domain.OrderStatusAwaitingPayment), nil
		})

	w := tr.do(http.MethodPost, "/api/v1/orders", &customer, `{
		"merchant_id": "merch-1",
		"fulfillment": "delivery",
		"payment_method": "gcash",
		"estimated_kilo": "5.5",
		"price_per_kilo": 6000,
		"pickup_location": {"lat": 14.6, "lng": 120.98},
		"merchant_location": {"lat": 14.61, "lng": 121.0}
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "01HXORDER", data["id"])
	assert.Equal(t, "awaiting_payment", data["status"])
	assert.Equal(t, "https://pay.test/cs_1", data["checkout_url"])
	assert.EqualValues(t, 34900, data["true_price"])
}

func TestPlaceOrder_ValidationError(t *testing.T) {
	tr := setupRouter(t)

	w := tr.do(http.MethodPost, "/api/v1/orders", &customer, map[string]interface{}{
		"merchant_id":    "merch-1",
		"fulfillment":    "teleport",
		"payment_method": "cash",
		"price_per_kilo": 6000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, errorCodeOf(t, w))
}

func TestPlaceOrder_Unauthenticated(t *testing.T) {
	tr := setupRouter(t)
	w := tr.do(http.MethodPost, "/api/v1/orders", nil, "{}")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetOrder(t *testing.T) {
	tr := setupRouter(t)
	tr.orders.EXPECT().Get(gomock.Any(), merchant, "01HXORDER").Return(sampleOrder(domain.OrderStatusPending), nil)

	w := tr.do(http.MethodGet, "/api/v1/orders/01HXORDER", &merchant, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", decodeData(t, w)["status"])
}

func TestTransitions_RouteToService(t *testing.T) {
	tr := setupRouter(t)
	gomock.InOrder(
		tr.orders.EXPECT().Accept(gomock.Any(), merchant, "o1").Return(sampleOrder(domain.OrderStatusAcceptedByMerchant), nil),
		tr.orders.EXPECT().Claim(gomock.Any(), courier, "o1").Return(sampleOrder(domain.OrderStatusAcceptedByRider), nil),
		tr.orders.EXPECT().Pickup(gomock.Any(), courier, "o1").Return(sampleOrder(domain.OrderStatusPickedUp), nil),
		tr.orders.EXPECT().ReadyForReturn(gomock.Any(), merchant, "o1").Return(sampleOrder(domain.OrderStatusAwaitingRiderReturn), nil),
		tr.orders.EXPECT().ReturnPickup(gomock.Any(), courier, "o1").Return(sampleOrder(domain.OrderStatusReturnPickedUp), nil),
		tr.orders.EXPECT().Complete(gomock.Any(), courier, "o1").Return(sampleOrder(domain.OrderStatusCompleted), nil),
	)

	steps := []struct {
		path  string
		actor domain.Actor
	}{
		{"accept", merchant},
		{"claim", courier},
		{"pickup", courier},
		{"ready-for-return", merchant},
		{"return-pickup", courier},
		{"complete", courier},
	}
	for _, s := range steps {
		w := tr.do(http.MethodPost, "/api/v1/orders/o1/"+s.path, &s.actor, nil)
		assert.Equal(t, http.StatusOK, w.Code, s.path)
	}
}

func TestTransition_InvalidState(t *testing.T) {
	tr := setupRouter(t)
	tr.orders.EXPECT().Accept(gomock.Any(), merchant, "o1").Return(nil, apperror.ErrInvalidState("order is not pending"))

	w := tr.do(http.MethodPost, "/api/v1/orders/o1/accept", &merchant, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeInvalidState, errorCodeOf(t, w))
}

func TestDeliver_PassesMeasuredWeight(t *testing.T) {
	tr := setupRouter(t)
	tr.orders.EXPECT().Deliver(gomock.Any(), courier, "o1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Actor, _ string, kilo decimal.Decimal) (*domain.Order, error) {
			assert.True(t, kilo.Equal(decimal.RequireFromString("4.5")))
			o := sampleOrder(domain.OrderStatusDeliveredByRider)
			o.ActualKilo = decimal.NewNullDecimal(kilo)
			return o, nil
		})

	w := tr.do(http.MethodPost, "/api/v1/orders/o1/deliver", &courier, `{"actual_kilo": 4.5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "4.5", decodeData(t, w)["actual_kilo"])
}

func TestCancel_BodyIsOptional(t *testing.T) {
	tr := setupRouter(t)
	gomock.InOrder(
		tr.orders.EXPECT().Cancel(gomock.Any(), customer, "o1", "").Return(sampleOrder(domain.OrderStatusCancelled), nil),
		tr.orders.EXPECT().Cancel(gomock.Any(), customer, "o2", "wrong address").Return(sampleOrder(domain.OrderStatusCancelled), nil),
	)

	assert.Equal(t, http.StatusOK, tr.do(http.MethodPost, "/api/v1/orders/o1/cancel", &customer, nil).Code)
	assert.Equal(t, http.StatusOK, tr.do(http.MethodPost, "/api/v1/orders/o2/cancel", &customer, `{"reason":"wrong address"}`).Code)
}

func TestRefund_AdminOnly(t *testing.T) {
	tr := setupRouter(t)

	w := tr.do(http.MethodPost, "/api/v1/orders/o1/refund", &customer, `{"reason":"please"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	tr.orders.EXPECT().Refund(gomock.Any(), admin, "o1", "damaged items").Return(sampleOrder(domain.OrderStatusRefunded), nil)
	w = tr.do(http.MethodPost, "/api/v1/orders/o1/refund", &admin, `{"reason":"damaged items"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "refunded", decodeData(t, w)["status"])
}

func TestSettle_ReturnsCheckout(t *testing.T) {
	tr := setupRouter(t)
	tr.orders.EXPECT().SettleShortfall(gomock.Any(), customer, "o1").
		Return(&ports.CheckoutSession{ID: "cs_9", CheckoutURL: "https://pay.test/cs_9"}, nil)

	w := tr.do(http.MethodPost, "/api/v1/orders/o1/settle", &customer, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "cs_9", data["checkout_id"])
	assert.Equal(t, "https://pay.test/cs_9", data["checkout_url"])
}

func TestSettle_GatewayFailure(t *testing.T) {
	tr := setupRouter(t)
	tr.orders.EXPECT().SettleShortfall(gomock.Any(), customer, "o1").
		Return(nil, apperror.ErrExternalGateway(errors.New("timeout")))

	w := tr.do(http.MethodPost, "/api/v1/orders/o1/settle", &customer, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

// --- Tokens ---

func sampleToken() *domain.VerificationToken {
	return &domain.VerificationToken{
		ID:         uuid.New(),
		OrderID:    "o1",
		Checkpoint: domain.CheckpointDelivery,
		Payload:    "eyJvIjoibzEifQ.sig",
		CreatedAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestScan_ConsumesWithoutEchoingPayload(t *testing.T) {
	tr := setupRouter(t)
	tok := sampleToken()
	now := tok.CreatedAt.Add(time.Hour)
	tok.UsedAt, tok.UsedBy = &now, courier.ID
	tr.gate.EXPECT().Consume(gomock.Any(), courier, "o1", domain.CheckpointDelivery, "eyJvIjoibzEifQ.sig").Return(tok, nil)

	w := tr.do(http.MethodPost, "/api/v1/orders/o1/tokens/delivery/scan", &courier, jsonBody(t, "payload", tok.Payload))
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, courier.ID, data["used_by"])
	assert.NotContains(t, data, "payload")
}

func TestScan_CouriersOnly(t *testing.T) {
	tr := setupRouter(t)
	w := tr.do(http.MethodPost, "/api/v1/orders/o1/tokens/delivery/scan", &merchant, jsonBody(t, "payload", "x"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestScan_AlreadyUsed(t *testing.T) {
	tr := setupRouter(t)
	tr.gate.EXPECT().Consume(gomock.Any(), courier, "o1", domain.CheckpointReturn, "p").Return(nil, apperror.ErrAlreadyUsed())

	w := tr.do(http.MethodPost, "/api/v1/orders/o1/tokens/return/scan", &courier, jsonBody(t, "payload", "p"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeAlreadyUsed, errorCodeOf(t, w))
}

func TestReissue_ReturnsPayloadToMerchant(t *testing.T) {
	tr := setupRouter(t)
	tok := sampleToken()
	tr.gate.EXPECT().Reissue(gomock.Any(), merchant, "o1", domain.CheckpointDelivery).Return(tok, nil)

	w := tr.do(http.MethodPost, "/api/v1/orders/o1/tokens/delivery/reissue", &merchant, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tok.Payload, decodeData(t, w)["payload"])
}

func TestQRCode_ServesPNG(t *testing.T) {
	tr := setupRouter(t)
	png := []byte{0x89, 'P', 'N', 'G'}
	tr.gate.EXPECT().QRCode(gomock.Any(), merchant, "o1", domain.CheckpointDelivery).Return(png, nil)

	w := tr.do(http.MethodGet, "/api/v1/orders/o1/tokens/delivery/qr", &merchant, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, png, w.Body.Bytes())
}

// --- Wallets ---

func sampleBalance() *domain.WalletBalance {
	return &domain.WalletBalance{
		ParticipantID: courier.ID,
		AccountNumber: "100000000042",
		Balance:       150000,
		LockUntil:     time.Now().Add(-time.Hour),
	}
}

func TestWallet_CreateUsesCallerRole(t *testing.T) {
	tr := setupRouter(t)
	tr.wallets.EXPECT().CreateAccount(gomock.Any(), courier.ID, domain.RoleCourier).Return(sampleBalance(), nil)

	w := tr.do(http.MethodPost, "/api/v1/wallets", &courier, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "100000000042", data["account_number"])
	assert.Equal(t, true, data["withdrawable"])
}

func TestWallet_CustomersHaveNoWallet(t *testing.T) {
	tr := setupRouter(t)
	w := tr.do(http.MethodGet, "/api/v1/wallets/me", &customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWallet_Me(t *testing.T) {
	tr := setupRouter(t)
	tr.wallets.EXPECT().GetBalance(gomock.Any(), courier.ID).Return(sampleBalance(), nil)

	w := tr.do(http.MethodGet, "/api/v1/wallets/me", &courier, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 150000, decodeData(t, w)["balance"])
}

func TestWallet_WithdrawLocked(t *testing.T) {
	tr := setupRouter(t)
	tr.wallets.EXPECT().Withdraw(gomock.Any(), merchant.ID, int64(60000)).Return(nil, apperror.ErrWithdrawalLocked())

	w := tr.do(http.MethodPost, "/api/v1/wallets/me/withdraw", &merchant, `{"amount": 60000}`)
	assert.Equal(t, http.StatusLocked, w.Code)
	assert.Equal(t, apperror.CodeWithdrawalLocked, errorCodeOf(t, w))
}

func TestWallet_WithdrawRejectsNonPositive(t *testing.T) {
	tr := setupRouter(t)
	w := tr.do(http.MethodPost, "/api/v1/wallets/me/withdraw", &merchant, `{"amount": -5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWallet_TopUp(t *testing.T) {
	tr := setupRouter(t)
	tr.wallets.EXPECT().TopUpCheckout(gomock.Any(), courier, int64(20000)).
		Return(&ports.CheckoutSession{ID: "cs_top", CheckoutURL: "https://pay.test/cs_top"}, nil)

	w := tr.do(http.MethodPost, "/api/v1/wallets/me/topup", &courier, `{"amount": 20000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cs_top", decodeData(t, w)["checkout_id"])
}

// --- Webhooks ---

func chargeEvent(id string) map[string]interface{} {
	return map[string]interface{}{
		"id":   id,
		"type": "charge.succeeded",
		"data": map[string]interface{}{
			"charge_id":    "ch_1",
			"status":       domain.ChargeSucceeded,
			"reference_id": "preorder-01HXORDER-cust-1",
			"amount":       34900,
			"currency":     "PHP",
		},
	}
}

func TestWebhook_RejectsBadSecretBeforeParsing(t *testing.T) {
	tr := setupRouter(t)

	assert.Equal(t, http.StatusUnauthorized, tr.webhook("", chargeEvent("evt_1")).Code)
	assert.Equal(t, http.StatusUnauthorized, tr.webhook("whsec_wrong", "not json").Code)
}

func TestWebhook_AcknowledgesOutcomes(t *testing.T) {
	tests := []struct {
		outcome domain.ReconcileOutcome
	}{
		{domain.OutcomeApplied},
		{domain.OutcomeDuplicate},
		{domain.OutcomeIgnored},
		{domain.OutcomeRefunded},
	}
	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			tr := setupRouter(t)
			tr.recon.EXPECT().HandleEvent(gomock.Any(), domain.GatewayEvent{
				EventID:     "evt_1",
				ChargeID:    "ch_1",
				Status:      domain.ChargeSucceeded,
				ReferenceID: "preorder-01HXORDER-cust-1",
				Amount:      34900,
				Currency:    "PHP",
			}).Return(tt.outcome, nil)

			w := tr.webhook(testWebhookSecret, chargeEvent("evt_1"))
			require.Equal(t, http.StatusOK, w.Code)
			var ack map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
			assert.Equal(t, true, ack["received"])
			assert.Equal(t, string(tt.outcome), ack["outcome"])
			assert.NotEmpty(t, ack["message"])
		})
	}
}

func TestWebhook_MalformedBodyIsAcknowledged(t *testing.T) {
	tr := setupRouter(t)
	w := tr.webhook(testWebhookSecret, `{"id": 12`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"ignored"`)
}

func TestWebhook_MissingOrderIs404(t *testing.T) {
	tr := setupRouter(t)
	tr.recon.EXPECT().HandleEvent(gomock.Any(), gomock.Any()).Return(domain.ReconcileOutcome(""), apperror.ErrNotFound("order"))

	w := tr.webhook(testWebhookSecret, chargeEvent("evt_404"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhook_TransientFailureAsksForRedelivery(t *testing.T) {
	tr := setupRouter(t)
	tr.recon.EXPECT().HandleEvent(gomock.Any(), gomock.Any()).
		Return(domain.ReconcileOutcome(""), apperror.ErrExternalGateway(errors.New("refund timeout")))

	w := tr.webhook(testWebhookSecret, chargeEvent("evt_retry"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeGatewayFailure, errorCodeOf(t, w))
}

// --- Health & metrics ---

func TestHealthCheck(t *testing.T) {
	tr := setupRouter(t)
	tr.health.EXPECT().Name().Return("postgresql").AnyTimes()
	gomock.InOrder(
		tr.health.EXPECT().Ping(gomock.Any()).Return(nil),
		tr.health.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")),
	)

	w := tr.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)

	w = tr.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	tr := setupRouter(t)
	w := tr.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	tr := setupRouter(t)
	tr.orders.EXPECT().Get(gomock.Any(), customer, "o1").Return(nil, apperror.ErrNotFound("order"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/o1", nil)
	req.Header.Set("Authorization", "Bearer "+bearer(customer))
	req.Header.Set(middleware.HeaderRequestID, "trace-7")
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"request_id":"trace-7"`)
}

func jsonBody(t *testing.T, key, value string) string {
	t.Helper()
	raw, err := json.Marshal(map[string]string{key: value})
	require.NoError(t, err)
	return string(raw)
}
