package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var errAlreadyApplied = errors.New("gateway event already applied")

// ReconciliationServiceImpl implements ports.ReconciliationService.
//
// An event is applied at most once: the receipt row is written in the same
// transaction as its financial effects, so a replay either sees the receipt
// or collides with it on insert. The Redis cache only short-circuits the
// common replay before any work is done.
type ReconciliationServiceImpl struct {
	orderRepo   ports.OrderRepository
	receiptRepo ports.WebhookReceiptRepository
	transactor  ports.DBTransactor
	walletSvc   ports.WalletService
	settlement  ports.SettlementService
	gateway     ports.PaymentGateway
	cache       ports.ReceiptCache
	publisher   ports.EventPublisher
	cacheTTL    time.Duration
	metrics     *metrics.EngineMetrics
	log         zerolog.Logger
	now         func() time.Time
}

// NewReconciliationService creates a new ReconciliationServiceImpl. cache
// and publisher may be nil.
func NewReconciliationService(
	orderRepo ports.OrderRepository,
	receiptRepo ports.WebhookReceiptRepository,
	transactor ports.DBTransactor,
	walletSvc ports.WalletService,
	settlement ports.SettlementService,
	gateway ports.PaymentGateway,
	cache ports.ReceiptCache,
	publisher ports.EventPublisher,
	cacheTTL time.Duration,
	m *metrics.EngineMetrics,
	log zerolog.Logger,
) *ReconciliationServiceImpl {
	return &ReconciliationServiceImpl{
		orderRepo:   orderRepo,
		receiptRepo: receiptRepo,
		transactor:  transactor,
		walletSvc:   walletSvc,
		settlement:  settlement,
		gateway:     gateway,
		cache:       cache,
		publisher:   publisher,
		cacheTTL:    cacheTTL,
		metrics:     m,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// HandleEvent applies one gateway callback. A returned error means the
// gateway should redeliver; every other outcome is final.
func (s *ReconciliationServiceImpl) HandleEvent(ctx context.Context, ev domain.GatewayEvent) (outcome domain.ReconcileOutcome, err error) {
	start := time.Now()
	defer func() {
		label := string(outcome)
		if err != nil {
			label = "error"
		}
		s.metrics.ObserveWebhook(label, time.Since(start))
	}()

	log := s.log.With().
		Str("event_id", ev.EventID).
		Str("reference_id", ev.ReferenceID).
		Str("status", ev.Status).
		Logger()

	if ev.Status != domain.ChargeSucceeded || ev.Amount <= 0 {
		log.Info().Msg("gateway event ignored")
		return domain.OutcomeIgnored, nil
	}
	ref, ok := domain.ParseReference(ev.ReferenceID)
	if !ok {
		log.Warn().Msg("unrecognized payment reference")
		return domain.OutcomeIgnored, nil
	}

	if s.cache != nil {
		seen, err := s.cache.Seen(ctx, ev.EventID)
		if err != nil {
			log.Warn().Err(err).Msg("receipt cache unavailable")
		} else if seen {
			return domain.OutcomeDuplicate, nil
		}
	}
	exists, err := s.receiptRepo.Exists(ctx, ev.EventID)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("check receipt: %w", err))
	}
	if exists {
		s.remember(ctx, ev.EventID, log)
		return domain.OutcomeDuplicate, nil
	}

	var order *domain.Order
	if ref.IsOrder() {
		order, outcome, err = s.applyOrderPayment(ctx, ev, ref, log)
	} else {
		outcome, err = s.applyTopUp(ctx, ev, ref, log)
	}
	if errors.Is(err, errAlreadyApplied) {
		s.remember(ctx, ev.EventID, log)
		return domain.OutcomeDuplicate, nil
	}
	if err != nil {
		return "", err
	}

	s.remember(ctx, ev.EventID, log)
	if err := s.receiptRepo.MarkProcessed(ctx, ev.EventID, s.now()); err != nil {
		log.Warn().Err(err).Msg("failed to mark receipt processed")
	}
	if order != nil {
		s.metrics.IncTransition(string(order.Status))
		publish(ctx, s.publisher, s.log, domain.NewOrderEvent("order.payment_"+string(outcome), order, "", s.now()))
	}
	log.Info().Str("outcome", string(outcome)).Int64("amount", ev.Amount).Msg("gateway event reconciled")
	return outcome, nil
}

func (s *ReconciliationServiceImpl) applyOrderPayment(
	ctx context.Context,
	ev domain.GatewayEvent,
	ref domain.PaymentReference,
	log zerolog.Logger,
) (*domain.Order, domain.ReconcileOutcome, error) {
	pre, err := s.orderRepo.GetByID(ctx, ref.OrderID)
	if err != nil {
		return nil, "", apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if pre == nil {
		log.Error().Str("order_id", ref.OrderID).Msg("payment for unknown order")
		return nil, "", apperror.ErrNotFound("Order")
	}
	if ref.CustomerID != pre.CustomerID {
		log.Warn().Str("order_id", pre.ID).Str("reference_customer", ref.CustomerID).Msg("payment reference names a different customer")
	}

	draft := pre.Clone()
	draft.RecordCharge(ev.ChargeID, ev.Amount)

	outcome := domain.OutcomeApplied
	var st *ports.Settlement
	expired := pre.Expired(s.now())
	if expired || draft.Status == domain.OrderStatusCancelled || draft.Status == domain.OrderStatusRefunded {
		// Money arrived for an order that is closed or whose checkout
		// lapsed; send all of it back.
		reason := "order_closed"
		if expired {
			reason = "checkout_expired"
		}
		_, err := s.gateway.IssueRefund(ctx, ports.RefundRequest{
			ChargeID:       ev.ChargeID,
			Amount:         ev.Amount,
			Reason:         reason,
			IdempotencyKey: ev.EventID,
		})
		s.metrics.IncRefund(reason, ev.Amount, err)
		if err != nil {
			log.Error().Err(err).Str("order_id", pre.ID).Str("reason", reason).Msg("refund for unpayable order failed")
			return nil, "", apperror.ErrExternalGateway(err)
		}
		outcome = domain.OutcomeRefunded
	} else {
		if st, err = s.settlement.Prepare(ctx, draft, ev.EventID); err != nil {
			return nil, "", err
		}
	}

	var updated *domain.Order
	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.createReceipt(ctx, tx, ev, ref, pre.ID, outcome); err != nil {
			return err
		}
		o, err := s.orderRepo.GetByIDForUpdate(ctx, tx, pre.ID)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock order: %w", err))
		}
		if o == nil {
			return apperror.ErrNotFound("Order")
		}
		if o.Version != pre.Version {
			return apperror.InternalError(ports.ErrStaleOrder)
		}

		o.RecordCharge(ev.ChargeID, ev.Amount)
		if outcome == domain.OutcomeRefunded {
			o.ApplyRefunds([]domain.ChargeRefund{{ChargeID: ev.ChargeID, Amount: ev.Amount}})
			if expired {
				o.PaymentStatus = domain.PaymentStatusRefunded
				o.CancelReason = "checkout_expired"
				o.Advance(domain.OrderStatusCancelled, s.now())
			}
		} else {
			if o.Status == domain.OrderStatusAwaitingPayment {
				o.Advance(domain.OrderStatusPending, s.now())
			}
			if err := s.settlement.ApplyTx(ctx, tx, o, st); err != nil {
				return err
			}
		}
		o.UpdatedAt = s.now()
		if err := s.orderRepo.Update(ctx, tx, o); err != nil {
			return apperror.InternalError(fmt.Errorf("update order: %w", err))
		}
		updated = o
		return nil
	})
	if err != nil {
		if errors.Is(err, errAlreadyApplied) {
			return nil, "", err
		}
		return nil, "", asAppError(err, "apply order payment")
	}
	return updated, outcome, nil
}

func (s *ReconciliationServiceImpl) applyTopUp(
	ctx context.Context,
	ev domain.GatewayEvent,
	ref domain.PaymentReference,
	log zerolog.Logger,
) (domain.ReconcileOutcome, error) {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.createReceipt(ctx, tx, ev, ref, "", domain.OutcomeApplied); err != nil {
			return err
		}
		return s.walletSvc.TopUpTx(ctx, tx, ref.ParticipantID, ev.Amount)
	})
	if err != nil {
		if errors.Is(err, errAlreadyApplied) {
			return "", err
		}
		if apperror.HasCode(err, apperror.CodeNotFound) {
			log.Error().Str("participant_id", ref.ParticipantID).Msg("top-up for unknown wallet")
		}
		return "", asAppError(err, "apply top-up")
	}
	return domain.OutcomeApplied, nil
}

func (s *ReconciliationServiceImpl) createReceipt(
	ctx context.Context,
	tx pgx.Tx,
	ev domain.GatewayEvent,
	ref domain.PaymentReference,
	orderID string,
	outcome domain.ReconcileOutcome,
) error {
	receipt := &domain.WebhookReceipt{
		ID:            uuid.New(),
		EventID:       ev.EventID,
		ChargeID:      ev.ChargeID,
		ReferenceID:   ev.ReferenceID,
		Kind:          ref.Kind,
		OrderID:       orderID,
		ParticipantID: ref.ParticipantID,
		Amount:        ev.Amount,
		Outcome:       outcome,
		CreatedAt:     s.now(),
	}
	if err := s.receiptRepo.Create(ctx, tx, receipt); err != nil {
		if errors.Is(err, ports.ErrDuplicateReceipt) {
			return errAlreadyApplied
		}
		return apperror.InternalError(fmt.Errorf("create receipt: %w", err))
	}
	return nil
}

func (s *ReconciliationServiceImpl) remember(ctx context.Context, eventID string, log zerolog.Logger) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Remember(ctx, eventID, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache receipt")
	}
}
