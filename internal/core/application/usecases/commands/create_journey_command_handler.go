package commands

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/journey"
)

// CreateJourneyCommandHandler stores a new journey as the user's only active
// one. Older journeys are kept with the active flag cleared.
type CreateJourneyCommandHandler struct {
	uowFactory JourneyUoWFactory
	clock      func() time.Time
}

func NewCreateJourneyCommandHandler(uowFactory JourneyUoWFactory, clock func() time.Time) CreateJourneyCommandHandler {
	return CreateJourneyCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateJourneyCommandHandler) Handle(ctx context.Context, cmd CreateJourneyCommand) (*journey.Journey, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	j, err := journey.NewJourney(
		cmd.JourneyID(), cmd.UserID(), cmd.Route(),
		cmd.DepartureDate(), cmd.ArrivalDate(), cmd.LuggageCapacity(), h.clock(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	journeyRepo := uow.JourneyRepository()

	if err = journeyRepo.DeactivateAllForUser(ctx, cmd.UserID()); err != nil {
		return nil, err
	}

	if err = journeyRepo.Add(ctx, j); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return j, nil
}
