package memory

import (
	"context"
	"fmt"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	s *Store
}

// NewOrderRepo creates a new OrderRepo over s.
func NewOrderRepo(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

func (r *OrderRepo) Create(ctx context.Context, _ pgx.Tx, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; ok {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	order.Version = 1
	r.s.orders[order.ID] = order.Clone()
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return o.Clone(), nil
}

func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, _ pgx.Tx, id string) (*domain.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(ctx context.Context, _ pgx.Tx, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[order.ID]
	if !ok {
		return fmt.Errorf("order %s not found", order.ID)
	}
	if stored.Version != order.Version {
		return ports.ErrStaleOrder
	}
	order.Version++
	r.s.orders[order.ID] = order.Clone()
	return nil
}
