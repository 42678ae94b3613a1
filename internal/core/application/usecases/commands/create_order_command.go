package commands

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"
	"pickup/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new draft order.
//
// Example:
//
//	route, _ := kernel.NewRoute(origin, destination)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), ordererID, route, "fragile", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, time.Now)
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	ordererID   kernel.UUID
	route       kernel.Route
	notes       string
	waitingDays *int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and route. Notes and waiting
// days are validated by the order itself.
func NewCreateOrderCommand(
	orderID, ordererID kernel.UUID,
	route kernel.Route,
	notes string,
	waitingDays *int,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes:       notes,
		waitingDays: waitingDays,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrdererID(ordererID),
		cmd.setRoute(route),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) OrdererID() kernel.UUID {
	return c.ordererID
}

func (c CreateOrderCommand) Route() kernel.Route {
	return c.route
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c CreateOrderCommand) WaitingDays() *int {
	return c.waitingDays
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setOrdererID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredError("orderer_id")
	}
	c.ordererID = id
	return nil
}

func (c *CreateOrderCommand) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	c.route = route
	return nil
}
