package commands_test

import (
	"errors"
	"testing"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/domain/model/journey"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func readyDraft(t *testing.T, ordererID kernel.UUID) *order.Order {
	t.Helper()
	o := draftOrder(t, ordererID)
	item, err := order.NewItem(kernel.NewUUID(), order.ItemDetails{Name: "Camera", Price: money(t, "300")})
	require.NoError(t, err)
	require.NoError(t, o.AddItem(ordererID, item))
	return o
}

func TestFinalizeOrderCommandHandler_Handle_PublishesAndNotifiesPickers(t *testing.T) {
	ctx := t.Context()
	ordererID := kernel.NewUUID()
	pickerID := kernel.NewUUID()
	o := readyDraft(t, ordererID)
	journeys := []*journey.Journey{activeJourney(t, pickerID), activeJourney(t, ordererID)}

	cmd, err := commands.NewFinalizeOrderCommand(o.ID(), ordererID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	journeyRepo := new(MockJourneyRepository)
	uow := new(MockUoW)
	factory := new(MockDiscoveryUoWFactory)
	notif := new(MockNotifier)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("JourneyRepository").Return(journeyRepo).Once(),
		journeyRepo.On("ListActiveByRoute", ctx, mock.Anything).Return(journeys, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notif.On("Emit", ctx, mock.MatchedBy(func(drafts []notifier.Draft) bool {
			return len(drafts) == 1 &&
				drafts[0].RecipientID.IsEqual(pickerID) &&
				drafts[0].Type == notification.NewOrderAvailable
		})).Return().Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewFinalizeOrderCommandHandler(factory, notif)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, result.Status())
	orderRepo.AssertExpectations(t)
	journeyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notif.AssertExpectations(t)
}

func TestFinalizeOrderCommandHandler_Handle_AlreadyPublishedIsNoop(t *testing.T) {
	ctx := t.Context()
	ordererID := kernel.NewUUID()
	o := pendingOrder(t, ordererID)

	cmd, err := commands.NewFinalizeOrderCommand(o.ID(), ordererID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockDiscoveryUoWFactory)
	notif := new(MockNotifier)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewFinalizeOrderCommandHandler(factory, notif)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, result.Status())
	orderRepo.AssertNotCalled(t, "Update", ctx, o)
	uow.AssertNotCalled(t, "Commit", ctx)
	notif.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
}

func TestFinalizeOrderCommandHandler_Handle_OnlyOrdererMayFinalize(t *testing.T) {
	ctx := t.Context()
	o := readyDraft(t, kernel.NewUUID())

	cmd, err := commands.NewFinalizeOrderCommand(o.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockDiscoveryUoWFactory)
	notif := new(MockNotifier)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewFinalizeOrderCommandHandler(factory, notif)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	assert.Equal(t, order.Draft, o.Status())
	notif.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
}

func TestFinalizeOrderCommandHandler_Handle_CommitErrorSkipsNotifications(t *testing.T) {
	ctx := t.Context()
	ordererID := kernel.NewUUID()
	o := readyDraft(t, ordererID)

	cmd, err := commands.NewFinalizeOrderCommand(o.ID(), ordererID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	journeyRepo := new(MockJourneyRepository)
	uow := new(MockUoW)
	factory := new(MockDiscoveryUoWFactory)
	notif := new(MockNotifier)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("JourneyRepository").Return(journeyRepo).Once(),
		journeyRepo.On("ListActiveByRoute", ctx, mock.Anything).
			Return([]*journey.Journey{activeJourney(t, kernel.NewUUID())}, nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewFinalizeOrderCommandHandler(factory, notif)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	notif.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
}

func TestFinalizeOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockDiscoveryUoWFactory)
	handler := commands.NewFinalizeOrderCommandHandler(factory, new(MockNotifier))

	_, err := handler.Handle(t.Context(), commands.FinalizeOrderCommand{})

	require.ErrorIs(t, err, commands.ErrFinalizeOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
