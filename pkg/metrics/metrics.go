package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records fulfillment and reconciliation activity.
// A nil *EngineMetrics (or one built with a nil registerer) is a no-op.
type EngineMetrics struct {
	webhooks      *prometheus.CounterVec
	reconcileTime prometheus.Histogram
	refunds       *prometheus.CounterVec
	refundAmount  prometheus.Counter
	transitions   *prometheus.CounterVec
	walletOps     *prometheus.CounterVec
	txRetries     prometheus.Counter
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	m := &EngineMetrics{
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_webhooks_total",
			Help: "Payment webhooks by outcome (applied, duplicate, ignored, rejected, failed).",
		}, []string{"outcome"}),
		reconcileTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "laundry_reconcile_duration_seconds",
			Help:    "Time spent applying a payment webhook.",
			Buckets: prometheus.DefBuckets,
		}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_refunds_total",
			Help: "Gateway refunds by reason and result.",
		}, []string{"reason", "result"}),
		refundAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "laundry_refunded_minor_units_total",
			Help: "Sum of successfully refunded amounts in minor units.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_order_transitions_total",
			Help: "Committed order status transitions.",
		}, []string{"to"}),
		walletOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_wallet_operations_total",
			Help: "Wallet ledger operations by kind and result.",
		}, []string{"op", "result"}),
		txRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "laundry_tx_retries_total",
			Help: "Transactions retried after a serialization conflict.",
		}),
	}
	reg.MustRegister(m.webhooks, m.reconcileTime, m.refunds, m.refundAmount, m.transitions, m.walletOps, m.txRetries)
	return m
}

// ObserveWebhook counts a webhook outcome and its processing time.
func (m *EngineMetrics) ObserveWebhook(outcome string, took time.Duration) {
	if m == nil || m.webhooks == nil {
		return
	}
	m.webhooks.WithLabelValues(normalizeLabel(outcome)).Inc()
	m.reconcileTime.Observe(took.Seconds())
}

// IncRefund counts a refund attempt; amount is only added on success.
func (m *EngineMetrics) IncRefund(reason string, amount int64, err error) {
	if m == nil || m.refunds == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.refunds.WithLabelValues(normalizeLabel(reason), result).Inc()
	if err == nil && amount > 0 {
		m.refundAmount.Add(float64(amount))
	}
}

// IncTransition counts a committed transition into status to.
func (m *EngineMetrics) IncTransition(to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(to)).Inc()
}

// IncWalletOp counts a wallet ledger operation.
func (m *EngineMetrics) IncWalletOp(op string, err error) {
	if m == nil || m.walletOps == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.walletOps.WithLabelValues(normalizeLabel(op), result).Inc()
}

// IncTxRetry counts one retried transaction attempt.
func (m *EngineMetrics) IncTxRetry() {
	if m == nil || m.txRetries == nil {
		return
	}
	m.txRetries.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
