package commands

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand appends one item to an editable order. The item is
// validated when the command is built so malformed input never opens a transaction.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	item    order.Item

	guard guard.ConstructorGuard
}

func NewAddOrderItemCommand(orderID, actorID, itemID kernel.UUID, details order.ItemDetails) (AddOrderItemCommand, error) {
	item, itemErr := order.NewItem(itemID, details)
	if err := errors.Join(orderID.Validate(), actorID.Validate(), itemErr); err != nil {
		return AddOrderItemCommand{}, err
	}

	return AddOrderItemCommand{
		orderID: orderID,
		actorID: actorID,
		item:    item,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddOrderItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c AddOrderItemCommand) Item() order.Item {
	return c.item
}
