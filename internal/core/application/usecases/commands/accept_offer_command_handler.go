package commands

import (
	"context"
	"time"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/core/domain/services"
	"pickup/internal/pkg/metrics"
)

// AcceptOfferResult carries the accepted offer and the order after acceptance.
type AcceptOfferResult struct {
	Offer *offer.Offer
	Order *order.Order
}

// AcceptOfferCommandHandler accepts an offer and supersedes the competing ones
// inside a single transaction.
//
// Business rules:
//   - An INITIAL offer is accepted by a picker, who is assigned to the order;
//     a chat room for the orderer and the picker is ensured
//   - A COUNTER offer is accepted by the orderer; only the agreed amount is
//     recorded, assignment and status stay as they are
//   - At most one offer of an order is ACCEPTED; the partial unique index on
//     offers turns a lost race into errs.ErrConflict
type AcceptOfferCommandHandler struct {
	uowFactory NegotiationUoWFactory
	notifier   Notifier
	clock      func() time.Time
}

func NewAcceptOfferCommandHandler(
	uowFactory NegotiationUoWFactory,
	notifier Notifier,
	clock func() time.Time,
) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) (AcceptOfferResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcceptOfferResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AcceptOfferResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	offerRepo := uow.OfferRepository()

	target, err := offerRepo.Get(ctx, cmd.OfferID())
	if err != nil {
		return AcceptOfferResult{}, err
	}

	o, err := orderRepo.Get(ctx, target.OrderID())
	if err != nil {
		return AcceptOfferResult{}, err
	}

	offers, err := offerRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return AcceptOfferResult{}, err
	}
	for _, candidate := range offers {
		if candidate.ID().IsEqual(target.ID()) {
			target = candidate
			break
		}
	}

	outcome, err := services.NewOfferNegotiator().Accept(o, target, offers, cmd.ActorID(), h.clock())
	if err != nil {
		return AcceptOfferResult{}, err
	}

	for _, changed := range outcome.Superseded {
		if err = offerRepo.Update(ctx, changed); err != nil {
			return AcceptOfferResult{}, err
		}
	}
	if err = offerRepo.Update(ctx, outcome.Accepted); err != nil {
		return AcceptOfferResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return AcceptOfferResult{}, err
	}

	if outcome.AssignedPicker != nil {
		if err = uow.ChatRoomRepository().Ensure(ctx, o.ID(), o.OrdererID(), *outcome.AssignedPicker); err != nil {
			return AcceptOfferResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AcceptOfferResult{}, err
	}

	metrics.OffersAccepted.WithLabelValues(string(target.Type())).Inc()
	switch target.Type() {
	case offer.Initial:
		metrics.OrderTransitions.WithLabelValues(order.Accepted.String()).Inc()
		h.notifier.Emit(ctx, notifier.OrderAccepted(o))
	case offer.Counter:
		h.notifier.Emit(ctx, notifier.CounterOfferAccepted(o, target))
	}

	return AcceptOfferResult{Offer: outcome.Accepted, Order: o}, nil
}
