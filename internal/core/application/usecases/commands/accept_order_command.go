package commands

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is the direct assignment path: a picker takes a pending
// order at its current reward without negotiating.
type AcceptOrderCommand struct {
	orderID  kernel.UUID
	pickerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID, pickerID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), pickerID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID:  orderID,
		pickerID: pickerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AcceptOrderCommand) PickerID() kernel.UUID {
	return c.pickerID
}
