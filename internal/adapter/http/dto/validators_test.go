package dto

import (
	"testing"
	"time"

	"laundry-hub/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStruct_TrimsAndEscapes(t *testing.T) {
	req := ReasonRequest{Reason: "  customer <script>alert('x')</script> request "}
	SanitizeStruct(&req)

	assert.Contains(t, req.Reason, "&lt;script&gt;")
	assert.NotContains(t, req.Reason, "<script>")
	assert.False(t, req.Reason[0] == ' ')
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	type withPtr struct {
		Note *string
		Nil  *string
	}
	note := "  hello  "
	v := withPtr{Note: &note}
	SanitizeStruct(&v)

	assert.Equal(t, "hello", *v.Note)
	assert.Nil(t, v.Nil)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s)
}

func TestSafeID(t *testing.T) {
	for _, tc := range []string{"merch-1", "MERCH_2", "a.b.c", "01HX3K8V5ZB2M6N7Q9R0S1T2U3"} {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
	for _, tc := range []string{"merch 1", "m<1>", "m;DROP", "", "a\nb"} {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %q", tc)
	}
}

func TestPlaceOrderRequest_Binding(t *testing.T) {
	valid := PlaceOrderRequest{
		MerchantID:       "merch-1",
		Fulfillment:      "delivery",
		PaymentMethod:    "gcash",
		EstimatedKilo:    decimal.NewFromInt(5),
		PricePerKilo:     6000,
		PickupLocation:   Location{Lat: 14.55, Lng: 121.02},
		MerchantLocation: Location{Lat: 14.56, Lng: 121.03},
	}
	require.NoError(t, binding.Validator.ValidateStruct(&valid))

	bad := valid
	bad.PaymentMethod = "bitcoin"
	assert.Error(t, binding.Validator.ValidateStruct(&bad))

	bad = valid
	bad.MerchantID = "merch 1"
	assert.Error(t, binding.Validator.ValidateStruct(&bad))

	bad = valid
	bad.PickupLocation.Lat = 91
	assert.Error(t, binding.Validator.ValidateStruct(&bad))
}

func TestWebhookEvent_ToDomain(t *testing.T) {
	ev := WebhookEvent{
		ID:   "evt_1",
		Type: "payment.paid",
		Data: WebhookCharge{ChargeID: "ch_1", Status: "succeeded", ReferenceID: "topup-rider-1-1", Amount: 500, Currency: "PHP"},
	}
	require.NoError(t, binding.Validator.ValidateStruct(&ev))

	got := ev.ToDomain()
	assert.Equal(t, domain.GatewayEvent{
		EventID: "evt_1", ChargeID: "ch_1", Status: "succeeded",
		ReferenceID: "topup-rider-1-1", Amount: 500, Currency: "PHP",
	}, got)

	ev.Data.ReferenceID = ""
	assert.Error(t, binding.Validator.ValidateStruct(&ev))
}

func TestNewOrderResponse(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	o := &domain.Order{
		ID:            "01HX",
		Status:        domain.OrderStatusPickedUp,
		EstimatedKilo: decimal.NewFromInt(5),
		ActualKilo:    decimal.NewNullDecimal(decimal.RequireFromString("4.5")),
		PricePerKilo:  6000,
		CourierFee:    4900,
		Timeline:      map[domain.OrderStatus]time.Time{domain.OrderStatusPickedUp: now},
	}
	resp := NewOrderResponse(o)

	assert.Equal(t, "picked_up", resp.Status)
	require.NotNil(t, resp.ActualKilo)
	assert.Equal(t, "4.5", *resp.ActualKilo)
	assert.Equal(t, int64(27000+4900), resp.TruePrice)
	assert.Equal(t, now, resp.Timeline["picked_up"])
}

func TestNewTokenResponse_PayloadDisclosure(t *testing.T) {
	tok := &domain.VerificationToken{ID: uuid.New(), OrderID: "01HX", Checkpoint: domain.CheckpointReturn, Payload: "secret"}
	assert.Empty(t, NewTokenResponse(tok, false).Payload)
	assert.Equal(t, "secret", NewTokenResponse(tok, true).Payload)
}
