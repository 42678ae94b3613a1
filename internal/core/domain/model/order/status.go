package order

import (
	"fmt"

	"pickup/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Draft ──Finalize──> Pending ──Accept──> Accepted ──Deliver──> Delivered ──Complete──> Completed
//	  └───────────────────┴──────────────────┴───────────────────────┴──Cancel──> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is the initial status: the orderer is still adding items and the reward.
	Draft

	// Pending orders are visible to pickers travelling the same route.
	Pending

	// Accepted orders have an assigned picker.
	Accepted

	// Delivered orders wait for the orderer's confirmation or the timeout sweep.
	Delivered

	// Completed is the final state of a confirmed delivery.
	Completed

	// Cancelled is the final state of an order withdrawn by its orderer.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Draft:     "DRAFT",
		Pending:   "PENDING",
		Accepted:  "ACCEPTED",
		Delivered: "DELIVERED",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// ParseStatus converts the persisted representation back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the known lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted and wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsEditable reports whether items and the reward may still change.
func (s Status) IsEditable() bool {
	return s == Draft || s == Pending
}

// IsNegotiable reports whether pickers may still submit counter offers.
func (s Status) IsNegotiable() bool {
	return s == Draft || s == Pending || s == Accepted
}

// ValidateCanHavePicker checks consistency between status and picker assignment.
//
// Business Rules:
//   - Draft and Pending orders must not have a picker
//   - Accepted, Delivered and Completed orders must have a picker
//   - Cancelled orders may have been cancelled before or after assignment
func (s Status) ValidateCanHavePicker(picker bool) error {
	if s == Cancelled {
		return nil
	}
	if picker && (s == Draft || s == Pending) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a picker", s),
		)
	}
	if !picker && (s == Accepted || s == Delivered || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no picker", s),
		)
	}
	return nil
}

// Accept transitions Pending to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidStateError("accept the order", s.String())
	}
	return Accepted, nil
}

// Deliver transitions Accepted to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Accepted {
		return Unknown, errs.NewInvalidStateError("mark the order delivered", s.String())
	}
	return Delivered, nil
}

// Complete transitions Delivered to Completed.
func (s Status) Complete() (Status, error) {
	if s != Delivered {
		return Unknown, errs.NewInvalidStateError("confirm delivery", s.String())
	}
	return Completed, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return Unknown, errs.NewInvalidStateError("cancel the order", s.String())
	}
	return Cancelled, nil
}
