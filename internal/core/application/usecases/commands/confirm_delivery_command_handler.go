package commands

import (
	"context"
	"time"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/metrics"
)

// ConfirmDeliveryCommandHandler completes a delivered order.
//
// A concurrent issue report or sweep run bumps the order version, so only
// one of the competing updates can land; the others fail with
// errs.ErrVersionIsInvalid.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
	clock      func() time.Time
}

func NewConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	clock func() time.Time,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*order.Order, error) {
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

	if err = o.ConfirmDelivery(cmd.ActorID(), h.clock()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(order.Completed.String()).Inc()
	if draft, ok := notifier.PaymentConfirmed(o); ok {
		h.notifier.Emit(ctx, draft)
	}
	return o, nil
}
