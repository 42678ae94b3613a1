package commands

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"
)

var ErrReportIssueCommandIsNotConstructed = errors.New(
	"ReportIssueCommand must be created via NewReportIssueCommand constructor",
)

// ReportIssueCommand disputes a delivery. The order stays Delivered and
// can no longer be confirmed, explicitly or by the sweep.
type ReportIssueCommand struct {
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReportIssueCommand(orderID, actorID kernel.UUID) (ReportIssueCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return ReportIssueCommand{}, err
	}

	return ReportIssueCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

func (c ReportIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReportIssueCommand) ActorID() kernel.UUID {
	return c.actorID
}
