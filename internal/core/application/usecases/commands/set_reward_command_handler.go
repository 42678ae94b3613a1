package commands

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/model/order"
)

// SetRewardResult carries the updated order and the INITIAL offer created for it.
type SetRewardResult struct {
	Order *order.Order
	Offer *offer.Offer
}

// SetRewardCommandHandler updates the reward and appends a pending INITIAL
// offer. A previous INITIAL offer that is still pending is superseded so at
// most one INITIAL offer is open at a time. The order status is unchanged.
type SetRewardCommandHandler struct {
	uowFactory NegotiationUoWFactory
	clock      func() time.Time
}

func NewSetRewardCommandHandler(uowFactory NegotiationUoWFactory, clock func() time.Time) SetRewardCommandHandler {
	return SetRewardCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h SetRewardCommandHandler) Handle(ctx context.Context, cmd SetRewardCommand) (SetRewardResult, error) {
	if err := cmd.Validate(); err != nil {
		return SetRewardResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SetRewardResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	offerRepo := uow.OfferRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return SetRewardResult{}, err
	}

	if err = o.SetReward(cmd.ActorID(), cmd.Amount()); err != nil {
		return SetRewardResult{}, err
	}

	existing, err := offerRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return SetRewardResult{}, err
	}
	for _, previous := range existing {
		if previous.Type() != offer.Initial || previous.Status() != offer.Pending {
			continue
		}
		previous.Supersede()
		if err = offerRepo.Update(ctx, previous); err != nil {
			return SetRewardResult{}, err
		}
	}

	initial, err := offer.NewInitialOffer(cmd.OfferID(), o.ID(), o.OrdererID(), cmd.Amount(), h.clock())
	if err != nil {
		return SetRewardResult{}, err
	}
	if err = offerRepo.Add(ctx, initial); err != nil {
		return SetRewardResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return SetRewardResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SetRewardResult{}, err
	}

	return SetRewardResult{Order: o, Offer: initial}, nil
}
