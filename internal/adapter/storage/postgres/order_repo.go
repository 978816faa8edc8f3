package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const orderSelect = `SELECT id, customer_id, merchant_id, courier_id, status, fulfillment,
	payment_method, payment_status, estimated_kilo::text, actual_kilo::text, price_per_kilo, extras,
	distance_km, courier_fee, courier_platform_fee, merchant_fee_estimate, total_price,
	payment_reference, checkout_url, expires_at, charges, charged_amount, refunded_amount,
	additional_amount_due, merchant_gross_credited, merchant_net_credited, merchant_held,
	courier_held, cancel_reason, timeline, version, created_at, updated_at
	FROM orders`

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create inserts a new order at version 1.
func (r *OrderRepo) Create(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	timeline, charges, err := encodeOrderJSON(o)
	if err != nil {
		return err
	}
	query := `INSERT INTO orders (id, customer_id, merchant_id, courier_id, status, fulfillment,
		payment_method, payment_status, estimated_kilo, actual_kilo, price_per_kilo, extras,
		distance_km, courier_fee, courier_platform_fee, merchant_fee_estimate, total_price,
		payment_reference, checkout_url, expires_at, charges, charged_amount, refunded_amount,
		additional_amount_due, merchant_gross_credited, merchant_net_credited, merchant_held,
		courier_held, cancel_reason, timeline, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, 1, $31, $32)`

	_, err = tx.Exec(ctx, query,
		o.ID, o.CustomerID, o.MerchantID, o.CourierID, o.Status, o.Fulfillment,
		o.PaymentMethod, o.PaymentStatus, o.EstimatedKilo.String(), nullKilo(o.ActualKilo), o.PricePerKilo, o.Extras,
		o.DistanceKm, o.CourierFee, o.CourierPlatformFee, o.MerchantFeeEstimate, o.TotalPrice,
		o.PaymentReference, o.CheckoutURL, o.ExpiresAt, charges, o.ChargedAmount, o.RefundedAmount,
		o.AdditionalAmountDue, o.MerchantGrossCredited, o.MerchantNetCredited, o.MerchantHeld,
		o.CourierHeld, o.CancelReason, timeline, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	o.Version = 1
	return nil
}

// GetByID fetches an order without locking.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, orderSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return o, nil
}

// GetByIDForUpdate fetches an order with a row lock.
// This MUST be called within a transaction.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Order, error) {
	o, err := scanOrder(tx.QueryRow(ctx, orderSelect+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// Update writes every mutable column guarded by the version the order was
// read at. On success o.Version is the new stored version.
func (r *OrderRepo) Update(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	timeline, charges, err := encodeOrderJSON(o)
	if err != nil {
		return err
	}
	query := `UPDATE orders SET courier_id = $1, status = $2, payment_status = $3, actual_kilo = $4,
		courier_fee = $5, courier_platform_fee = $6, merchant_fee_estimate = $7, total_price = $8,
		checkout_url = $9, expires_at = $10, charges = $11, charged_amount = $12,
		refunded_amount = $13, additional_amount_due = $14, merchant_gross_credited = $15,
		merchant_net_credited = $16, merchant_held = $17, courier_held = $18, cancel_reason = $19,
		timeline = $20, updated_at = $21, version = version + 1
		WHERE id = $22 AND version = $23`

	tag, err := tx.Exec(ctx, query,
		o.CourierID, o.Status, o.PaymentStatus, nullKilo(o.ActualKilo),
		o.CourierFee, o.CourierPlatformFee, o.MerchantFeeEstimate, o.TotalPrice,
		o.CheckoutURL, o.ExpiresAt, charges, o.ChargedAmount,
		o.RefundedAmount, o.AdditionalAmountDue, o.MerchantGrossCredited,
		o.MerchantNetCredited, o.MerchantHeld, o.CourierHeld, o.CancelReason,
		timeline, o.UpdatedAt, o.ID, o.Version,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrStaleOrder
	}
	o.Version++
	return nil
}

func encodeOrderJSON(o *domain.Order) (timeline, charges []byte, err error) {
	if timeline, err = json.Marshal(o.Timeline); err != nil {
		return nil, nil, fmt.Errorf("encode order timeline: %w", err)
	}
	list := o.Charges
	if list == nil {
		list = []domain.Charge{}
	}
	if charges, err = json.Marshal(list); err != nil {
		return nil, nil, fmt.Errorf("encode order charges: %w", err)
	}
	return timeline, charges, nil
}

func nullKilo(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o         domain.Order
		estimated string
		actual    *string
		timeline  []byte
		charges   []byte
	)
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.MerchantID, &o.CourierID, &o.Status, &o.Fulfillment,
		&o.PaymentMethod, &o.PaymentStatus, &estimated, &actual, &o.PricePerKilo, &o.Extras,
		&o.DistanceKm, &o.CourierFee, &o.CourierPlatformFee, &o.MerchantFeeEstimate, &o.TotalPrice,
		&o.PaymentReference, &o.CheckoutURL, &o.ExpiresAt, &charges, &o.ChargedAmount, &o.RefundedAmount,
		&o.AdditionalAmountDue, &o.MerchantGrossCredited, &o.MerchantNetCredited, &o.MerchantHeld,
		&o.CourierHeld, &o.CancelReason, &timeline, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if o.EstimatedKilo, err = decimal.NewFromString(estimated); err != nil {
		return nil, fmt.Errorf("decode estimated kilo: %w", err)
	}
	if actual != nil {
		d, err := decimal.NewFromString(*actual)
		if err != nil {
			return nil, fmt.Errorf("decode actual kilo: %w", err)
		}
		o.ActualKilo = decimal.NewNullDecimal(d)
	}
	o.Timeline = make(map[domain.OrderStatus]time.Time)
	if len(timeline) > 0 {
		if err := json.Unmarshal(timeline, &o.Timeline); err != nil {
			return nil, fmt.Errorf("decode order timeline: %w", err)
		}
	}
	if len(charges) > 0 {
		if err := json.Unmarshal(charges, &o.Charges); err != nil {
			return nil, fmt.Errorf("decode order charges: %w", err)
		}
	}
	return &o, nil
}
