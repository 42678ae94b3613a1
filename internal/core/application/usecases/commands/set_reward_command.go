package commands

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"
)

var ErrSetRewardCommandIsNotConstructed = errors.New(
	"SetRewardCommand must be created via NewSetRewardCommand constructor",
)

// SetRewardCommand sets the reward the orderer proposes and opens the
// negotiation with an INITIAL offer of the same amount.
type SetRewardCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	offerID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

// NewSetRewardCommand validates the amount against the offer bounds
// [0.01, 999999.99].
func NewSetRewardCommand(orderID, actorID kernel.UUID, amount kernel.Money) (SetRewardCommand, error) {
	cmd := SetRewardCommand{
		offerID: kernel.NewUUID(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), actorID.Validate(), cmd.setAmount(amount)); err != nil {
		return SetRewardCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	return cmd, nil
}

func (c SetRewardCommand) Validate() error {
	return c.guard.Validate(ErrSetRewardCommandIsNotConstructed)
}

func (c SetRewardCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetRewardCommand) ActorID() kernel.UUID {
	return c.actorID
}

// OfferID is the identifier the INITIAL offer will be stored under.
func (c SetRewardCommand) OfferID() kernel.UUID {
	return c.offerID
}

func (c SetRewardCommand) Amount() kernel.Money {
	return c.amount
}

func (c *SetRewardCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if err := amount.ValidateOfferBounds(); err != nil {
		return err
	}
	c.amount = amount
	return nil
}
