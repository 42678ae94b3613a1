package commands

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/metrics"
)

// CreateOrderCommandHandler persists a new order in Draft status.
// No notification is emitted: drafts are invisible to pickers.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock func() time.Time) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates the order and returns it as stored.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.OrdererID(), cmd.Route(), cmd.Notes(), cmd.WaitingDays(), h.clock())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(order.Draft.String()).Inc()
	return o, nil
}
