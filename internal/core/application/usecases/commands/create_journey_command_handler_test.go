package commands_test

import (
	"errors"
	"testing"
	"time"

	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateJourneyCommand(t *testing.T) {
	userID := kernel.NewUUID()

	cmd, err := commands.NewCreateJourneyCommand(userID, testRoute, now, now.Add(48*time.Hour), "10kg")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.JourneyID().Validate())
	assert.Equal(t, userID, cmd.UserID())
	assert.Equal(t, "10kg", cmd.LuggageCapacity())

	_, err = commands.NewCreateJourneyCommand(userID, testRoute, time.Time{}, now, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateJourneyCommand(kernel.UUID{}, testRoute, now, now, "")
	require.Error(t, err)
}

func TestCreateJourneyCommandHandler_Handle_ReplacesActiveJourney(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	cmd, err := commands.NewCreateJourneyCommand(userID, testRoute, now.Add(24*time.Hour), now.Add(48*time.Hour), "10kg")
	require.NoError(t, err)

	repo := new(MockJourneyRepository)
	uow := new(MockUoW)
	factory := new(MockJourneyUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JourneyRepository").Return(repo).Once(),
		repo.On("DeactivateAllForUser", ctx, userID).Return(nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*journey.Journey")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateJourneyCommandHandler(factory, clock)
	j, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, j.IsActive())
	assert.Equal(t, cmd.JourneyID(), j.ID())
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), j.DepartureDate())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateJourneyCommandHandler_Handle_PastDeparture(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateJourneyCommand(kernel.NewUUID(), testRoute,
		now.Add(-48*time.Hour), now.Add(24*time.Hour), "")
	require.NoError(t, err)

	factory := new(MockJourneyUoWFactory)
	handler := commands.NewCreateJourneyCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateJourneyCommandHandler_Handle_DeactivateError(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	cmd, err := commands.NewCreateJourneyCommand(userID, testRoute, now, now, "")
	require.NoError(t, err)

	repo := new(MockJourneyRepository)
	uow := new(MockUoW)
	factory := new(MockJourneyUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JourneyRepository").Return(repo).Once()
	repo.On("DeactivateAllForUser", ctx, userID).Return(errors.New("db error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateJourneyCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "db error")
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
