package commands

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

// RejectOfferCommand declines a pending offer. Only the orderer may reject.
type RejectOfferCommand struct {
	offerID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRejectOfferCommand(offerID, actorID kernel.UUID) (RejectOfferCommand, error) {
	if err := errors.Join(offerID.Validate(), actorID.Validate()); err != nil {
		return RejectOfferCommand{}, err
	}

	return RejectOfferCommand{
		offerID: offerID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}

func (c RejectOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

func (c RejectOfferCommand) ActorID() kernel.UUID {
	return c.actorID
}
