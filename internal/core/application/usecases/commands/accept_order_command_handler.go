package commands

import (
	"context"
	"time"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/metrics"
)

// AcceptOrderCommandHandler assigns a picker to a pending order.
//
// Two pickers racing for the same order are serialized by the version check
// of the order row: the loser fails with errs.ErrVersionIsInvalid when both
// loaded the unassigned order, or with errs.ErrConflict when it loaded the
// order after the winner committed.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
	clock      func() time.Time
}

func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	clock func() time.Time,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
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

	if err = o.AssignPicker(cmd.PickerID(), h.clock()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(order.Accepted.String()).Inc()
	h.notifier.Emit(ctx, notifier.OrderAccepted(o))
	return o, nil
}
