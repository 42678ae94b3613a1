package commands

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"
)

var ErrCreateCounterOfferCommandIsNotConstructed = errors.New(
	"CreateCounterOfferCommand must be created via NewCreateCounterOfferCommand constructor",
)

// CreateCounterOfferCommand is a picker proposing a different amount for an order.
//
// Example:
//
//	amount, _ := kernel.ParseMoney("60.00")
//	cmd, err := NewCreateCounterOfferCommand(orderID, pickerID, amount, nil)
//	if err != nil {
//	    return err // amount outside [0.01, 999999.99]
//	}
//	counter, err := handler.Handle(ctx, cmd)
type CreateCounterOfferCommand struct { //nolint:recvcheck //using for validation
	offerID  kernel.UUID
	orderID  kernel.UUID
	pickerID kernel.UUID
	amount   kernel.Money
	parentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateCounterOfferCommand builds the command. parentID is optional;
// without it the offer answers the latest offer of the order.
func NewCreateCounterOfferCommand(
	orderID, pickerID kernel.UUID,
	amount kernel.Money,
	parentID *kernel.UUID,
) (CreateCounterOfferCommand, error) {
	cmd := CreateCounterOfferCommand{
		offerID: kernel.NewUUID(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		pickerID.Validate(),
		cmd.setAmount(amount),
		cmd.setParentID(parentID),
	); err != nil {
		return CreateCounterOfferCommand{}, err
	}

	cmd.orderID = orderID
	cmd.pickerID = pickerID
	return cmd, nil
}

func (c CreateCounterOfferCommand) Validate() error {
	return c.guard.Validate(ErrCreateCounterOfferCommandIsNotConstructed)
}

func (c CreateCounterOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

func (c CreateCounterOfferCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateCounterOfferCommand) PickerID() kernel.UUID {
	return c.pickerID
}

func (c CreateCounterOfferCommand) Amount() kernel.Money {
	return c.amount
}

func (c CreateCounterOfferCommand) ParentID() *kernel.UUID {
	return c.parentID
}

func (c *CreateCounterOfferCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if err := amount.ValidateOfferBounds(); err != nil {
		return err
	}
	c.amount = amount
	return nil
}

func (c *CreateCounterOfferCommand) setParentID(parentID *kernel.UUID) error {
	if parentID == nil {
		return nil
	}
	if err := parentID.Validate(); err != nil {
		return err
	}
	c.parentID = parentID
	return nil
}
