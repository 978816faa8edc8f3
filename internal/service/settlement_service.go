package service

import (
	"context"
	"fmt"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// SettlementServiceImpl implements ports.SettlementService.
type SettlementServiceImpl struct {
	walletSvc ports.WalletService
	gateway   ports.PaymentGateway
	fees      domain.FeeSchedule
	metrics   *metrics.EngineMetrics
	log       zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	walletSvc ports.WalletService,
	gateway ports.PaymentGateway,
	fees domain.FeeSchedule,
	m *metrics.EngineMetrics,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		walletSvc: walletSvc,
		gateway:   gateway,
		fees:      fees,
		metrics:   m,
		log:       log,
	}
}

// Prepare plans the correction for order as it currently stands and issues
// any refund up front. Nothing is persisted; a failed refund aborts here.
func (s *SettlementServiceImpl) Prepare(ctx context.Context, order *domain.Order, idempotencyKey string) (*ports.Settlement, error) {
	plan := domain.PlanSettlement(order.TruePrice(), order.Retained())
	st := &ports.Settlement{Plan: plan}
	if plan.Refund == 0 {
		return st, nil
	}

	refunds, err := s.refund(ctx, order, plan.Refund, "weight_correction", idempotencyKey)
	if err != nil {
		return nil, err
	}
	st.Refunds = refunds

	s.log.Info().
		Str("order_id", order.ID).
		Int("charges", len(refunds)).
		Int64("true_price", plan.TruePrice).
		Int64("retained", plan.Retained).
		Int64("amount", plan.Refund).
		Msg("weight correction refunded")
	return st, nil
}

// ApplyTx records a prepared settlement on order and syncs the merchant's
// credit. The caller persists order.
func (s *SettlementServiceImpl) ApplyTx(ctx context.Context, tx pgx.Tx, order *domain.Order, st *ports.Settlement) error {
	order.ApplyRefunds(st.Refunds)
	order.PaymentStatus = st.Plan.PaymentStatus
	order.AdditionalAmountDue = st.Plan.AdditionalDue
	return s.SyncMerchantCreditTx(ctx, tx, order)
}

// RefundAll returns everything still retained for order through the gateway
// and reports the refund issued against each charge.
func (s *SettlementServiceImpl) RefundAll(ctx context.Context, order *domain.Order, reason string, idempotencyKey string) ([]domain.ChargeRefund, error) {
	amount := order.Retained()
	if amount <= 0 || order.IsCash() {
		return nil, nil
	}
	refunds, err := s.refund(ctx, order, amount, reason, idempotencyKey)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", order.ID).Int("charges", len(refunds)).Int64("amount", amount).Str("reason", reason).Msg("order refunded")
	return refunds, nil
}

// refund sends amount back across the order's charges, newest first. Each
// charge gets its own idempotency key, so a retry after a partial failure
// replays the parts that already went through.
func (s *SettlementServiceImpl) refund(ctx context.Context, order *domain.Order, amount int64, reason, idempotencyKey string) ([]domain.ChargeRefund, error) {
	parts, err := order.AllocateRefund(amount)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("allocate refund for order %s: %w", order.ID, err))
	}
	for i := range parts {
		refund, err := s.gateway.IssueRefund(ctx, ports.RefundRequest{
			ChargeID:       parts[i].ChargeID,
			Amount:         parts[i].Amount,
			Reason:         reason,
			IdempotencyKey: idempotencyKey + ":" + parts[i].ChargeID,
		})
		s.metrics.IncRefund(reason, parts[i].Amount, err)
		if err != nil {
			s.log.Error().Err(err).
				Str("order_id", order.ID).
				Str("charge_id", parts[i].ChargeID).
				Int64("amount", parts[i].Amount).
				Str("reason", reason).
				Msg("gateway refund failed")
			return nil, apperror.ErrExternalGateway(err)
		}
		parts[i].RefundID = refund.ID
	}
	return parts, nil
}

// SyncMerchantCreditTx moves the merchant's wallet to the net of what the
// order currently entitles them to: retained money less the courier fee,
// or nothing once the order is cancelled or refunded.
func (s *SettlementServiceImpl) SyncMerchantCreditTx(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	if order.IsCash() {
		return nil
	}

	var target int64
	if order.Status != domain.OrderStatusCancelled && order.Status != domain.OrderStatusRefunded {
		target = max(0, order.Retained()-order.CourierFee)
	}

	switch {
	case target > order.MerchantGrossCredited:
		if err := s.walletSvc.EnsureAccountTx(ctx, tx, order.MerchantID, domain.RoleMerchant); err != nil {
			return err
		}
		net, err := s.walletSvc.CreditNetTx(ctx, tx, order.MerchantID, target-order.MerchantGrossCredited, s.fees.PlatformRate)
		if err != nil {
			return err
		}
		order.MerchantNetCredited += net
		order.MerchantGrossCredited = target
		s.log.Info().Str("order_id", order.ID).Str("merchant_id", order.MerchantID).Int64("net", net).Msg("merchant credited")

	case target < order.MerchantGrossCredited:
		owed := order.MerchantNetCredited - s.fees.NetOf(target)
		if owed <= 0 {
			order.MerchantGrossCredited = target
			return nil
		}
		recovered, err := s.walletSvc.ClawbackTx(ctx, tx, order.MerchantID, owed)
		if err != nil {
			return fmt.Errorf("clawback merchant credit: %w", err)
		}
		order.MerchantNetCredited -= recovered
		if recovered == owed {
			order.MerchantGrossCredited = target
		}
		s.log.Info().Str("order_id", order.ID).Str("merchant_id", order.MerchantID).Int64("recovered", recovered).Int64("owed", owed).Msg("merchant credit clawed back")
	}
	return nil
}
