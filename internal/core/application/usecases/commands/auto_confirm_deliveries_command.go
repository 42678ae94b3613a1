package commands

import (
	"errors"

	"pickup/internal/pkg/guard"
)

var ErrAutoConfirmDeliveriesCommandIsNotConstructed = errors.New(
	"AutoConfirmDeliveriesCommand must be created via NewAutoConfirmDeliveriesCommand constructor",
)

// AutoConfirmDeliveriesCommand triggers one run of the confirmation sweep.
// This is a parameterless command; the window is configured on the handler.
type AutoConfirmDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

func NewAutoConfirmDeliveriesCommand() AutoConfirmDeliveriesCommand {
	return AutoConfirmDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAutoConfirmDeliveriesCommandIsNotConstructed if validation fails.
func (c AutoConfirmDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrAutoConfirmDeliveriesCommandIsNotConstructed)
}
