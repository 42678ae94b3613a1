package commands

import (
	"context"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/core/domain/services"
	"pickup/internal/pkg/metrics"
)

// FinalizeOrderCommandHandler moves a draft order to Pending and tells every
// picker travelling the same route about it.
//
// Finalizing an order that already left Draft succeeds without side effects,
// so clients may retry freely.
type FinalizeOrderCommandHandler struct {
	uowFactory DiscoveryUoWFactory
	notifier   Notifier
}

func NewFinalizeOrderCommandHandler(uowFactory DiscoveryUoWFactory, notifier Notifier) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) (*order.Order, error) {
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

	published, err := o.Finalize(cmd.ActorID())
	if err != nil {
		return nil, err
	}
	if !published {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	journeys, err := uow.JourneyRepository().ListActiveByRoute(ctx, o.Route())
	if err != nil {
		return nil, err
	}
	recipients := services.NewPickerMatcher().Recipients(o, journeys)

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(order.Pending.String()).Inc()
	h.notifier.Emit(ctx, newOrderDrafts(o, recipients)...)
	return o, nil
}

func newOrderDrafts(o *order.Order, recipients []kernel.UUID) []notifier.Draft {
	drafts := make([]notifier.Draft, 0, len(recipients))
	for _, picker := range recipients {
		drafts = append(drafts, notifier.NewOrderAvailable(o, picker))
	}
	return drafts
}
