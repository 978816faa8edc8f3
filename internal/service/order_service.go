package service

import (
	"context"
	"fmt"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OrderPolicy carries the order lifecycle settings.
type OrderPolicy struct {
	CheckoutTTL    time.Duration
	TokenFreshness time.Duration
	Currency       string
	SuccessURL     string
	CancelURL      string
}

// OrderServiceImpl implements ports.OrderService. Every transition locks
// the order row, validates actor and state, applies its money movements
// and writes the order in one transaction.
type OrderServiceImpl struct {
	orderRepo  ports.OrderRepository
	transactor ports.DBTransactor
	walletSvc  ports.WalletService
	tokenGate  ports.TokenGate
	settlement ports.SettlementService
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
	fees       domain.FeeSchedule
	policy     OrderPolicy
	metrics    *metrics.EngineMetrics
	log        zerolog.Logger
	now        func() time.Time
	newID      func() string
}

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(
	orderRepo ports.OrderRepository,
	transactor ports.DBTransactor,
	walletSvc ports.WalletService,
	tokenGate ports.TokenGate,
	settlement ports.SettlementService,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
	fees domain.FeeSchedule,
	policy OrderPolicy,
	m *metrics.EngineMetrics,
	log zerolog.Logger,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		orderRepo:  orderRepo,
		transactor: transactor,
		walletSvc:  walletSvc,
		tokenGate:  tokenGate,
		settlement: settlement,
		gateway:    gateway,
		publisher:  publisher,
		fees:       fees,
		policy:     policy,
		metrics:    m,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return ulid.Make().String() },
	}
}

// PlaceOrder prices and persists a new order. Gateway-paid orders get a
// checkout session before anything is written.
func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, actor domain.Actor, params ports.PlaceOrderParams) (*domain.Order, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, apperror.ErrForbidden("only customers can place orders")
	}
	if err := validatePlaceOrder(params); err != nil {
		return nil, err
	}

	now := s.now()
	distance := domain.HaversineKm(params.PickupLat, params.PickupLng, params.MerchantLat, params.MerchantLng)
	courierFee := s.fees.CourierFee(distance)

	order := &domain.Order{
		ID:                 s.newID(),
		CustomerID:         actor.ID,
		MerchantID:         params.MerchantID,
		Fulfillment:        params.Fulfillment,
		PaymentMethod:      params.PaymentMethod,
		EstimatedKilo:      params.EstimatedKilo,
		PricePerKilo:       params.PricePerKilo,
		Extras:             params.Extras,
		DistanceKm:         distance,
		CourierFee:         courierFee,
		CourierPlatformFee: s.fees.PlatformFee(courierFee),
		Timeline:           make(map[domain.OrderStatus]time.Time),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	order.TotalPrice = order.TruePrice()

	if order.IsCash() {
		order.PaymentStatus = domain.PaymentStatusUnpaid
		order.Advance(domain.OrderStatusPending, now)
	} else {
		if params.PaymentMethod == domain.PaymentMethodGCash {
			order.PaymentReference = domain.OrderReference(order.ID, actor.ID, now.UnixMilli())
		} else {
			order.PaymentReference = domain.PreorderReference(order.ID, actor.ID)
		}
		session, err := s.gateway.CreateCheckout(ctx, ports.CheckoutRequest{
			Amount:      order.TotalPrice,
			Currency:    s.policy.Currency,
			ReferenceID: order.PaymentReference,
			Description: "Laundry order " + order.ID,
			Method:      order.PaymentMethod,
			SuccessURL:  s.policy.SuccessURL,
			CancelURL:   s.policy.CancelURL,
		})
		if err != nil {
			s.log.Error().Err(err).Str("order_id", order.ID).Msg("checkout creation failed")
			return nil, apperror.ErrExternalGateway(err)
		}
		expires := now.Add(s.policy.CheckoutTTL)
		order.CheckoutURL = session.CheckoutURL
		order.ExpiresAt = &expires
		order.PaymentStatus = domain.PaymentStatusPending
		order.Advance(domain.OrderStatusAwaitingPayment, now)
	}

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.orderRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, asAppError(err, "create order")
	}

	s.committed(ctx, "order.placed", order, actor)
	return order, nil
}

func validatePlaceOrder(p ports.PlaceOrderParams) error {
	switch {
	case p.MerchantID == "":
		return apperror.Validation("merchant id is required")
	case !p.Fulfillment.Valid():
		return apperror.Validation("fulfillment must be delivery or pickup")
	case !p.PaymentMethod.Valid():
		return apperror.Validation("payment method must be cash, gcash or card")
	case !p.EstimatedKilo.IsPositive():
		return apperror.Validation("estimated kilo must be positive")
	case p.PricePerKilo <= 0:
		return apperror.Validation("price per kilo must be positive")
	case p.Extras < 0:
		return apperror.Validation("extras cannot be negative")
	}
	return nil
}

// Get returns an order visible to actor. Couriers see orders they hold and
// orders open for claiming.
func (s *OrderServiceImpl) Get(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.Role == domain.RoleAdmin,
		actor.Role == domain.RoleCustomer && order.CustomerID == actor.ID,
		actor.Role == domain.RoleMerchant && order.MerchantID == actor.ID,
		actor.Role == domain.RoleCourier && order.CourierID == actor.ID,
		actor.Role == domain.RoleCourier && order.CourierID == "" && order.Status == domain.OrderStatusAcceptedByMerchant:
		return order, nil
	}
	return nil, apperror.ErrForbidden("order belongs to someone else")
}

// Accept is the merchant taking the job. It mints the delivery token.
func (s *OrderServiceImpl) Accept(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order.accepted", func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if err := requireMerchant(actor, o); err != nil {
			return err
		}
		if o.Expired(s.now()) {
			return apperror.ErrOrderExpired()
		}
		if err := s.require(o, domain.OrderStatusPending, domain.OrderStatusAcceptedByMerchant); err != nil {
			return err
		}
		o.MerchantFeeEstimate = s.fees.PlatformFee(o.LaundryPrice())
		if _, err := s.tokenGate.MintTx(ctx, tx, o.ID, domain.CheckpointDelivery); err != nil {
			return err
		}
		o.Advance(domain.OrderStatusAcceptedByMerchant, s.now())
		return nil
	})
}

// Claim assigns the calling courier and escrows the courier's platform fee.
func (s *OrderServiceImpl) Claim(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order.claimed", func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if actor.Role != domain.RoleCourier {
			return apperror.ErrForbidden("only couriers can claim orders")
		}
		if err := s.require(o, domain.OrderStatusAcceptedByMerchant, domain.OrderStatusAcceptedByRider); err != nil {
			return err
		}
		if o.CourierID != "" {
			return apperror.ErrInvalidState("order already has a courier")
		}
		if o.CourierPlatformFee > 0 {
			if err := s.walletSvc.HoldTx(ctx, tx, actor.ID, o.CourierPlatformFee); err != nil {
				return err
			}
			o.CourierHeld += o.CourierPlatformFee
		}
		o.CourierID = actor.ID
		o.Advance(domain.OrderStatusAcceptedByRider, s.now())
		return nil
	})
}

// Pickup requires a fresh delivery scan by the assigned courier.
func (s *OrderServiceImpl) Pickup(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order.picked_up", func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if err := requireCourier(actor, o); err != nil {
			return err
		}
		if err := s.require(o, domain.OrderStatusAcceptedByRider, domain.OrderStatusPickedUp); err != nil {
			return err
		}
		if err := s.tokenGate.CheckFreshnessTx(ctx, tx, o.ID, domain.CheckpointDelivery, actor.ID, s.policy.TokenFreshness); err != nil {
			return err
		}
		o.Advance(domain.OrderStatusPickedUp, s.now())
		return nil
	})
}

// Deliver records the weighed load at the merchant and settles the price
// difference. Gateway refunds are issued before the transaction under a
// key derived from the amounts, so a retry reuses the same refund.
func (s *OrderServiceImpl) Deliver(ctx context.Context, actor domain.Actor, orderID string, actualKilo decimal.Decimal) (*domain.Order, error) {
	if !actualKilo.IsPositive() {
		return nil, apperror.Validation("actual kilo must be positive")
	}
	pre, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	check := func(o *domain.Order) error {
		if err := requireCourier(actor, o); err != nil {
			return err
		}
		return s.require(o, domain.OrderStatusPickedUp, domain.OrderStatusDeliveredByRider)
	}
	if err := check(pre); err != nil {
		return nil, err
	}

	var st *ports.Settlement
	if !pre.IsCash() {
		draft := pre.Clone()
		draft.ActualKilo = decimal.NewNullDecimal(actualKilo)
		key := fmt.Sprintf("weight:%s:%d:%d", pre.ID, draft.Retained(), draft.TruePrice())
		if st, err = s.settlement.Prepare(ctx, draft, key); err != nil {
			return nil, err
		}
	}

	return s.transition(ctx, actor, orderID, "order.delivered", func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if o.Version != pre.Version {
			return apperror.InternalError(ports.ErrStaleOrder)
		}
		if err := check(o); err != nil {
			return err
		}
		o.ActualKilo = decimal.NewNullDecimal(actualKilo)
		if o.IsCash() {
			fee := s.fees.PlatformFee(o.LaundryPrice())
			if fee > 0 {
				if err := s.walletSvc.EnsureAccountTx(ctx, tx, o.MerchantID, domain.RoleMerchant); err != nil {
					return err
				}
				if err := s.walletSvc.HoldTx(ctx, tx, o.MerchantID, fee); err != nil {
					return err
				}
				o.MerchantHeld += fee
			}
		} else if err := s.settlement.ApplyTx(ctx, tx, o, st); err != nil {
			return err
		}
		o.Advance(domain.OrderStatusDeliveredByRider, s.now())
		return nil
	})
}

// ReadyForReturn is the merchant finishing a delivery-type order. It mints
// the return token.
func (s *OrderServiceImpl) ReadyForReturn(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order.ready_for_return", func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if err := requireMerchant(actor, o); err != nil {
			return err
		}
		if o.Fulfillment != domain.FulfillmentDelivery {
			return apperror.ErrInvalidState("pickup orders are collected by the customer")
		}
		if err := s.require(o, domain.OrderStatusDeliveredByRider, domain.OrderStatusAwaitingRiderReturn); err != nil {
			return err
		}
		if _, err := s.tokenGate.MintTx(ctx, tx, o.ID, domain.CheckpointReturn); err != nil {
			return err
		}
		o.Advance(domain.OrderStatusAwaitingRiderReturn, s.now())
		return nil
	})
}

// ReturnPickup requires a fresh return scan by the assigned courier.
func (s *OrderServiceImpl) ReturnPickup(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order.return_picked_up", func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if err := requireCourier(actor, o); err != nil {
			return err
		}
		if err := s.require(o, domain.OrderStatusAwaitingRiderReturn, domain.OrderStatusReturnPickedUp); err != nil {
			return err
		}
		if err := s.tokenGate.CheckFreshnessTx(ctx, tx, o.ID, domain.CheckpointReturn, actor.ID, s.policy.TokenFreshness); err != nil {
			return err
		}
		o.Advance(domain.OrderStatusReturnPickedUp, s.now())
		return nil
	})
}

// Complete closes the order: escrowed fees are collected and the courier
// is paid for gateway orders. Delivery orders are completed by the courier
// on hand-over; pickup orders by the merchant.
func (s *OrderServiceImpl) Complete(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, "order.completed", func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if o.Fulfillment == domain.FulfillmentDelivery {
			if err := requireCourier(actor, o); err != nil {
				return err
			}
		} else if err := requireMerchant(actor, o); err != nil {
			return err
		}
		if !o.CanTransition(domain.OrderStatusCompleted) {
			return apperror.ErrInvalidState(fmt.Sprintf("cannot complete an order in status %s", o.Status))
		}
		if !o.IsCash() && o.PaymentStatus == domain.PaymentStatusPending {
			return apperror.ErrInvalidState("payment has not been received")
		}

		if _, err := s.walletSvc.CollectTx(ctx, tx, o.MerchantID, o.MerchantHeld); err != nil {
			return err
		}
		o.MerchantHeld = 0
		if o.CourierID != "" {
			if _, err := s.walletSvc.CollectTx(ctx, tx, o.CourierID, o.CourierHeld); err != nil {
				return err
			}
			o.CourierHeld = 0
		}

		if o.IsCash() {
			o.PaymentStatus = domain.PaymentStatusPaid
		} else if o.CourierID != "" && o.CourierFee > 0 {
			if err := s.walletSvc.EnsureAccountTx(ctx, tx, o.CourierID, domain.RoleCourier); err != nil {
				return err
			}
			if err := s.walletSvc.TopUpTx(ctx, tx, o.CourierID, o.CourierFee); err != nil {
				return err
			}
		}
		if err := s.settlement.SyncMerchantCreditTx(ctx, tx, o); err != nil {
			return err
		}
		o.Advance(domain.OrderStatusCompleted, s.now())
		return nil
	})
}

// Cancel withdraws an order before the merchant accepts it. Money already
// captured is refunded and the merchant's credit clawed back.
func (s *OrderServiceImpl) Cancel(ctx context.Context, actor domain.Actor, orderID string, reason string) (*domain.Order, error) {
	pre, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	check := func(o *domain.Order) error {
		owner := (actor.Role == domain.RoleCustomer && o.CustomerID == actor.ID) ||
			(actor.Role == domain.RoleMerchant && o.MerchantID == actor.ID)
		if !owner {
			return apperror.ErrForbidden("only the customer or merchant can cancel")
		}
		if !o.CanTransition(domain.OrderStatusCancelled) {
			return apperror.ErrInvalidState(fmt.Sprintf("cannot cancel an order in status %s", o.Status))
		}
		return nil
	}
	if err := check(pre); err != nil {
		return nil, err
	}

	refunds, err := s.settlement.RefundAll(ctx, pre, "order_cancelled", fmt.Sprintf("cancel:%s:%d", pre.ID, pre.Retained()))
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, actor, orderID, "order.cancelled", func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if o.Version != pre.Version {
			return apperror.InternalError(ports.ErrStaleOrder)
		}
		if err := check(o); err != nil {
			return err
		}
		if len(refunds) > 0 {
			o.ApplyRefunds(refunds)
			o.PaymentStatus = domain.PaymentStatusRefunded
		}
		o.CancelReason = reason
		o.Advance(domain.OrderStatusCancelled, s.now())
		return s.settlement.SyncMerchantCreditTx(ctx, tx, o)
	})
}

// Refund is the administrative exit: everything retained goes back to the
// customer and all escrow is released.
func (s *OrderServiceImpl) Refund(ctx context.Context, actor domain.Actor, orderID string, reason string) (*domain.Order, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperror.ErrForbidden("only administrators can refund orders")
	}
	pre, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if pre.IsTerminal() {
		return nil, apperror.ErrInvalidState(fmt.Sprintf("cannot refund an order in status %s", pre.Status))
	}

	refunds, err := s.settlement.RefundAll(ctx, pre, "admin_refund", fmt.Sprintf("refund:%s:%d", pre.ID, pre.Retained()))
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, actor, orderID, "order.refunded", func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if o.Version != pre.Version {
			return apperror.InternalError(ports.ErrStaleOrder)
		}
		if !o.CanTransition(domain.OrderStatusRefunded) {
			return apperror.ErrInvalidState(fmt.Sprintf("cannot refund an order in status %s", o.Status))
		}
		if _, err := s.walletSvc.ReleaseTx(ctx, tx, o.MerchantID, o.MerchantHeld); err != nil {
			return err
		}
		o.MerchantHeld = 0
		if o.CourierID != "" {
			if _, err := s.walletSvc.ReleaseTx(ctx, tx, o.CourierID, o.CourierHeld); err != nil {
				return err
			}
			o.CourierHeld = 0
		}
		o.ApplyRefunds(refunds)
		o.PaymentStatus = domain.PaymentStatusRefunded
		o.AdditionalAmountDue = 0
		o.CancelReason = reason
		o.Advance(domain.OrderStatusRefunded, s.now())
		return s.settlement.SyncMerchantCreditTx(ctx, tx, o)
	})
}

// SettleShortfall opens a checkout for the amount still owed on an
// underpaid order under a fresh reference.
func (s *OrderServiceImpl) SettleShortfall(ctx context.Context, actor domain.Actor, orderID string) (*ports.CheckoutSession, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleCustomer || order.CustomerID != actor.ID {
		return nil, apperror.ErrForbidden("only the customer can pay for this order")
	}
	if order.IsTerminal() && order.Status != domain.OrderStatusCompleted {
		return nil, apperror.ErrInvalidState(fmt.Sprintf("order is %s", order.Status))
	}
	if order.IsCash() || order.PaymentStatus != domain.PaymentStatusUnderpaid || order.AdditionalAmountDue <= 0 {
		return nil, apperror.ErrInvalidState("nothing is owed on this order")
	}

	ref := domain.OrderReference(order.ID, actor.ID, s.now().UnixMilli())
	session, err := s.gateway.CreateCheckout(ctx, ports.CheckoutRequest{
		Amount:      order.AdditionalAmountDue,
		Currency:    s.policy.Currency,
		ReferenceID: ref,
		Description: "Balance for laundry order " + order.ID,
		Method:      order.PaymentMethod,
		SuccessURL:  s.policy.SuccessURL,
		CancelURL:   s.policy.CancelURL,
	})
	if err != nil {
		return nil, apperror.ErrExternalGateway(err)
	}
	s.log.Info().
		Str("order_id", order.ID).
		Str("reference_id", ref).
		Int64("amount", order.AdditionalAmountDue).
		Msg("shortfall checkout created")
	return session, nil
}

// transition runs fn against the locked order and persists the result.
// Any error leaves the stored order untouched.
func (s *OrderServiceImpl) transition(
	ctx context.Context,
	actor domain.Actor,
	orderID string,
	eventType string,
	fn func(ctx context.Context, tx pgx.Tx, o *domain.Order) error,
) (*domain.Order, error) {
	var updated *domain.Order
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		o, err := s.orderRepo.GetByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock order: %w", err))
		}
		if o == nil {
			return apperror.ErrNotFound("Order")
		}
		if err := fn(ctx, tx, o); err != nil {
			return err
		}
		if err := s.orderRepo.Update(ctx, tx, o); err != nil {
			return apperror.InternalError(fmt.Errorf("update order: %w", err))
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, asAppError(err, eventType)
	}

	s.committed(ctx, eventType, updated, actor)
	return updated, nil
}

func (s *OrderServiceImpl) committed(ctx context.Context, eventType string, o *domain.Order, actor domain.Actor) {
	s.metrics.IncTransition(string(o.Status))
	s.log.Info().
		Str("order_id", o.ID).
		Str("status", string(o.Status)).
		Str("payment_status", string(o.PaymentStatus)).
		Str("actor_id", actor.ID).
		Str("event", eventType).
		Msg("order transitioned")
	publish(ctx, s.publisher, s.log, domain.NewOrderEvent(eventType, o, actor.ID, s.now()))
}

func (s *OrderServiceImpl) load(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("Order")
	}
	return order, nil
}

func (s *OrderServiceImpl) require(o *domain.Order, from, to domain.OrderStatus) error {
	if o.Status != from || !o.CanTransition(to) {
		return apperror.ErrInvalidState(fmt.Sprintf("order is %s, expected %s", o.Status, from))
	}
	return nil
}

func requireMerchant(actor domain.Actor, o *domain.Order) error {
	if actor.Role != domain.RoleMerchant || o.MerchantID != actor.ID {
		return apperror.ErrForbidden("order belongs to another merchant")
	}
	return nil
}

func requireCourier(actor domain.Actor, o *domain.Order) error {
	if actor.Role != domain.RoleCourier || o.CourierID == "" || o.CourierID != actor.ID {
		return apperror.ErrForbidden("order is not assigned to this courier")
	}
	return nil
}
