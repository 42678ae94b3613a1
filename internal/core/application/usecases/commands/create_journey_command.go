package commands

import (
	"errors"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"
	"pickup/internal/pkg/guard"
)

var ErrCreateJourneyCommandIsNotConstructed = errors.New(
	"CreateJourneyCommand must be created via NewCreateJourneyCommand constructor",
)

// CreateJourneyCommand registers the route a user is about to travel. The
// date rules depend on the current day and are checked by the handler.
type CreateJourneyCommand struct { //nolint:recvcheck //using for validation
	journeyID       kernel.UUID
	userID          kernel.UUID
	route           kernel.Route
	departureDate   time.Time
	arrivalDate     time.Time
	luggageCapacity string

	guard guard.ConstructorGuard
}

func NewCreateJourneyCommand(
	userID kernel.UUID,
	route kernel.Route,
	departureDate, arrivalDate time.Time,
	luggageCapacity string,
) (CreateJourneyCommand, error) {
	var dateErr error
	if departureDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("departure_date")
	} else if arrivalDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("arrival_date")
	}

	if err := errors.Join(userID.Validate(), route.Validate(), dateErr); err != nil {
		return CreateJourneyCommand{}, err
	}

	return CreateJourneyCommand{
		journeyID:       kernel.NewUUID(),
		userID:          userID,
		route:           route,
		departureDate:   departureDate,
		arrivalDate:     arrivalDate,
		luggageCapacity: luggageCapacity,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CreateJourneyCommand) Validate() error {
	return c.guard.Validate(ErrCreateJourneyCommandIsNotConstructed)
}

func (c CreateJourneyCommand) JourneyID() kernel.UUID {
	return c.journeyID
}

func (c CreateJourneyCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateJourneyCommand) Route() kernel.Route {
	return c.route
}

func (c CreateJourneyCommand) DepartureDate() time.Time {
	return c.departureDate
}

func (c CreateJourneyCommand) ArrivalDate() time.Time {
	return c.arrivalDate
}

func (c CreateJourneyCommand) LuggageCapacity() string {
	return c.luggageCapacity
}
