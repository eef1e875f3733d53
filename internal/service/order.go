package service

import (
	"context"

	"github.com/deppfellow/petstore/internal/lib/job"
	"github.com/deppfellow/petstore/internal/model"
	"github.com/deppfellow/petstore/internal/repository"
)

// DefaultOrderStatus is used by FindByStatus when no status is given.
const DefaultOrderStatus = model.OrderStatusPlaced

type OrderService struct {
	resource[model.Order]
}

func NewOrderService(store repository.Store[model.Order], auditor job.Auditor, maxID int64) *OrderService {
	return &OrderService{
		resource: resource[model.Order]{
			kind:    "order",
			label:   "Order",
			store:   store,
			auditor: auditor,
			maxID:   maxID,
			withID: func(o model.Order, id int64) model.Order {
				o.ID = id
				return o
			},
		},
	}
}

func (s *OrderService) GetByID(ctx context.Context, id int64) (model.Order, error) {
	return s.get(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.remove(ctx, id)
}

// Add places order, replacing any order with the same id.
func (s *OrderService) Add(ctx context.Context, order model.Order) (model.Order, error) {
	return s.save(ctx, order, job.ActionAdd)
}

func (s *OrderService) Update(ctx context.Context, order model.Order) (model.Order, error) {
	return s.save(ctx, order, job.ActionUpdate)
}

func (s *OrderService) FindByStatus(ctx context.Context, statuses []model.OrderStatus) (model.Orders, error) {
	if len(statuses) == 0 {
		statuses = []model.OrderStatus{DefaultOrderStatus}
	}

	orders, err := s.list(ctx, func(o model.Order) bool {
		return o.HasStatus(statuses)
	})
	return model.Orders(orders), err
}
