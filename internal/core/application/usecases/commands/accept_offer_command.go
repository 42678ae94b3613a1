package commands

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand accepts one offer of a negotiation. Who may accept
// depends on the offer type, see AcceptOfferCommandHandler.
type AcceptOfferCommand struct {
	offerID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOfferCommand(offerID, actorID kernel.UUID) (AcceptOfferCommand, error) {
	if err := errors.Join(offerID.Validate(), actorID.Validate()); err != nil {
		return AcceptOfferCommand{}, err
	}

	return AcceptOfferCommand{
		offerID: offerID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

func (c AcceptOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

func (c AcceptOfferCommand) ActorID() kernel.UUID {
	return c.actorID
}
