package commands

import (
	"context"

	"pickup/internal/core/domain/model/offer"
	"pickup/internal/pkg/errs"
)

// RejectOfferCommandHandler marks a pending offer REJECTED. Sibling offers
// are not affected.
type RejectOfferCommandHandler struct {
	uowFactory NegotiationUoWFactory
}

func NewRejectOfferCommandHandler(uowFactory NegotiationUoWFactory) RejectOfferCommandHandler {
	return RejectOfferCommandHandler{uowFactory: uowFactory}
}

func (h RejectOfferCommandHandler) Handle(ctx context.Context, cmd RejectOfferCommand) (*offer.Offer, error) {
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

	offerRepo := uow.OfferRepository()

	target, err := offerRepo.Get(ctx, cmd.OfferID())
	if err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, target.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.IsOrderer(cmd.ActorID()) {
		return nil, errs.NewAccessDeniedError(cmd.ActorID().String(), "only the orderer can reject offers")
	}

	if err = target.Reject(); err != nil {
		return nil, err
	}

	if err = offerRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
