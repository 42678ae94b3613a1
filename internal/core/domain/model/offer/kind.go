package offer

import (
	"fmt"

	"pickup/internal/pkg/errs"
)

// Type distinguishes the orderer's proposal from a picker's counter proposal.
type Type string

const (
	Initial Type = "INITIAL"
	Counter Type = "COUNTER"
)

// ParseType converts a stored value back to a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	if t != Initial && t != Counter {
		return errs.NewValueIsInvalidErrorWithCause("offer_type", fmt.Errorf("%q is not a valid offer type", string(t)))
	}
	return nil
}

func (t Type) String() string {
	return string(t)
}

// Status is the lifecycle state of a single offer.
type Status string

const (
	Pending    Status = "PENDING"
	Accepted   Status = "ACCEPTED"
	Rejected   Status = "REJECTED"
	Superseded Status = "SUPERSEDED"
)

// ParseStatus converts a stored value back to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	switch s {
	case Pending, Accepted, Rejected, Superseded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("offer_status", fmt.Errorf("%q is not a valid offer status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsOutstanding reports whether the offer still binds its author.
func (s Status) IsOutstanding() bool {
	return s == Pending || s == Accepted
}
