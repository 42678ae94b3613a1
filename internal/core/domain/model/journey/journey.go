// Package journey models the travel routes pickers publish to receive orders.
// A user has at most one active journey; older ones are kept but deactivated.
package journey

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"
)

const maxLuggageCapacityLength = 50

var ErrJourneyIsNotConstructed = errors.New("Journey must be created via NewJourney constructor")

// Journey is a planned trip of a picker.
type Journey struct {
	id              kernel.UUID
	userID          kernel.UUID
	route           kernel.Route
	departureDate   time.Time
	arrivalDate     time.Time
	luggageCapacity string
	isActive        bool
	createdAt       time.Time

	isConstructed bool
}

// NewJourney creates an active journey. Departure may not be before today
// and arrival may not be before departure. Dates are truncated to days.
func NewJourney(
	id, userID kernel.UUID,
	route kernel.Route,
	departureDate, arrivalDate time.Time,
	luggageCapacity string,
	now time.Time,
) (*Journey, error) {
	departure := truncateToDay(departureDate)
	arrival := truncateToDay(arrivalDate)
	today := truncateToDay(now)

	var dateErr error
	switch {
	case departureDate.IsZero():
		dateErr = errs.NewValueIsRequiredError("departure_date")
	case departure.Before(today):
		dateErr = errs.NewValueIsInvalidErrorWithCause("departure_date", errors.New("must not be in the past"))
	case arrivalDate.IsZero():
		dateErr = errs.NewValueIsRequiredError("arrival_date")
	case arrival.Before(departure):
		dateErr = errs.NewValueIsInvalidErrorWithCause("arrival_date", errors.New("must not be before departure"))
	}

	var luggageErr error
	if n := utf8.RuneCountInString(luggageCapacity); n > maxLuggageCapacityLength {
		luggageErr = errs.NewValueIsInvalidErrorWithCause("luggage_weight_capacity",
			fmt.Errorf("%d characters exceeds the limit of %d", n, maxLuggageCapacityLength))
	}

	if err := errors.Join(id.Validate(), userID.Validate(), route.Validate(), dateErr, luggageErr); err != nil {
		return nil, err
	}

	return &Journey{
		id:              id,
		userID:          userID,
		route:           route,
		departureDate:   departure,
		arrivalDate:     arrival,
		luggageCapacity: luggageCapacity,
		isActive:        true,
		createdAt:       now.UTC(),
		isConstructed:   true,
	}, nil
}

// RestoreJourney rebuilds a stored journey, skipping the "not in the past" rule.
func RestoreJourney(
	id, userID kernel.UUID,
	route kernel.Route,
	departureDate, arrivalDate time.Time,
	luggageCapacity string,
	isActive bool,
	createdAt time.Time,
) (*Journey, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), route.Validate()); err != nil {
		return nil, err
	}
	return &Journey{
		id:              id,
		userID:          userID,
		route:           route,
		departureDate:   departureDate,
		arrivalDate:     arrivalDate,
		luggageCapacity: luggageCapacity,
		isActive:        isActive,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (j *Journey) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJourneyIsNotConstructed
	}
	return nil
}

func (j *Journey) ID() kernel.UUID {
	return j.id
}

func (j *Journey) UserID() kernel.UUID {
	return j.userID
}

func (j *Journey) Route() kernel.Route {
	return j.route
}

func (j *Journey) DepartureDate() time.Time {
	return j.departureDate
}

func (j *Journey) ArrivalDate() time.Time {
	return j.arrivalDate
}

func (j *Journey) LuggageCapacity() string {
	return j.luggageCapacity
}

func (j *Journey) IsActive() bool {
	return j.isActive
}

func (j *Journey) CreatedAt() time.Time {
	return j.createdAt
}

// Deactivate retires the journey from discovery.
func (j *Journey) Deactivate() {
	j.isActive = false
}
