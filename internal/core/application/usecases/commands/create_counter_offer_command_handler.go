package commands

import (
	"context"
	"time"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/services"
)

// CreateCounterOfferCommandHandler appends a picker's counter offer to the
// negotiation and notifies the orderer.
//
// The one-outstanding-counter rule is checked against the loaded offers and
// backed by a partial unique index, so two concurrent submissions by the same
// picker cannot both be stored.
type CreateCounterOfferCommandHandler struct {
	uowFactory NegotiationUoWFactory
	notifier   Notifier
	clock      func() time.Time
}

func NewCreateCounterOfferCommandHandler(
	uowFactory NegotiationUoWFactory,
	notifier Notifier,
	clock func() time.Time,
) CreateCounterOfferCommandHandler {
	return CreateCounterOfferCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h CreateCounterOfferCommandHandler) Handle(ctx context.Context, cmd CreateCounterOfferCommand) (*offer.Offer, error) {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	existing, err := offerRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	counter, err := services.NewOfferNegotiator().PrepareCounterOffer(
		o, existing, cmd.OfferID(), cmd.PickerID(), cmd.Amount(), cmd.ParentID(), h.clock(),
	)
	if err != nil {
		return nil, err
	}

	if err = offerRepo.Add(ctx, counter); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Emit(ctx, notifier.CounterOfferReceived(o, counter))
	return counter, nil
}
