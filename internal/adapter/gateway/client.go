// Package gateway talks to the hosted-checkout payment provider.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"laundry-hub/internal/core/ports"

	"github.com/rs/zerolog"
)

const (
	defaultTimeout       = 10 * time.Second
	headerIdempotencyKey = "Idempotency-Key"
)

const errorBodyReadLimit int64 = 1024

var errSecretKeyRequired = errors.New("gateway secret key is required")

// Client implements ports.PaymentGateway over the provider's REST API.
// Requests authenticate with the secret key as the basic-auth username.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	log        zerolog.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient builds a gateway client. timeout bounds every call; a call that
// times out has an unknown outcome and is reported as an error.
func NewClient(baseURL, secretKey string, timeout time.Duration, log zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errSecretKeyRequired
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		log:        log,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type checkoutBody struct {
	Amount             int64    `json:"amount"`
	Currency           string   `json:"currency"`
	ReferenceNumber    string   `json:"reference_number"`
	Description        string   `json:"description,omitempty"`
	PaymentMethodTypes []string `json:"payment_method_types"`
	SuccessURL         string   `json:"success_url,omitempty"`
	CancelURL          string   `json:"cancel_url,omitempty"`
}

type checkoutResponse struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckout opens a hosted checkout session.
func (c *Client) CreateCheckout(ctx context.Context, req ports.CheckoutRequest) (*ports.CheckoutSession, error) {
	body := checkoutBody{
		Amount:             req.Amount,
		Currency:           req.Currency,
		ReferenceNumber:    req.ReferenceID,
		Description:        req.Description,
		PaymentMethodTypes: []string{string(req.Method)},
		SuccessURL:         req.SuccessURL,
		CancelURL:          req.CancelURL,
	}
	var out checkoutResponse
	if err := c.post(ctx, "/v1/checkout_sessions", "", body, &out); err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}
	if out.CheckoutURL == "" {
		return nil, fmt.Errorf("create checkout: response has no checkout_url")
	}

	c.log.Info().
		Str("checkout_id", out.ID).
		Str("reference_id", req.ReferenceID).
		Int64("amount", req.Amount).
		Msg("checkout session created")
	return &ports.CheckoutSession{ID: out.ID, CheckoutURL: out.CheckoutURL}, nil
}

type refundBody struct {
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// IssueRefund returns money against a captured charge. The idempotency key
// is forwarded so a retried refund is not paid out twice.
func (c *Client) IssueRefund(ctx context.Context, req ports.RefundRequest) (*ports.Refund, error) {
	if req.ChargeID == "" {
		return nil, fmt.Errorf("issue refund: charge id is required")
	}
	body := refundBody{PaymentID: req.ChargeID, Amount: req.Amount, Reason: req.Reason}

	var out refundResponse
	if err := c.post(ctx, "/v1/refunds", req.IdempotencyKey, body, &out); err != nil {
		return nil, fmt.Errorf("issue refund: %w", err)
	}

	c.log.Info().
		Str("refund_id", out.ID).
		Str("charge_id", req.ChargeID).
		Int64("amount", req.Amount).
		Str("reason", req.Reason).
		Msg("refund issued")
	return &ports.Refund{ID: out.ID, Status: out.Status}, nil
}

func (c *Client) post(ctx context.Context, path, idempotencyKey string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(c.secretKey, "")
	if idempotencyKey != "" {
		httpReq.Header.Set(headerIdempotencyKey, idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
