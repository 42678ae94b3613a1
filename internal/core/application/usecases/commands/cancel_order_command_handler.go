package commands

import (
	"context"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/metrics"
)

// CancelOrderCommandHandler cancels a non-terminal order. When a picker is
// already assigned they receive an ORDER_CANCELLED notification.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Cancel(cmd.ActorID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(order.Cancelled.String()).Inc()
	if draft, ok := notifier.OrderCancelled(o); ok {
		h.notifier.Emit(ctx, draft)
	}
	return o, nil
}
