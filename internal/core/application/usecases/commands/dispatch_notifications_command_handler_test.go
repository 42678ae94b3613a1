package commands_test

import (
	"errors"
	"testing"

	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
	"pickup/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchNotificationsCommand(t *testing.T) {
	cmd, err := commands.NewDispatchNotificationsCommand(commands.DefaultDispatchBatchSize)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, commands.DefaultDispatchBatchSize, cmd.BatchSize())

	_, err = commands.NewDispatchNotificationsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestDispatchNotificationsCommandHandler_Handle_PublishesAndMarks(t *testing.T) {
	ctx := t.Context()
	batch := []*notification.Notification{
		testNotification(t, kernel.NewUUID()),
		testNotification(t, kernel.NewUUID()),
	}
	ids := []kernel.UUID{batch[0].ID(), batch[1].ID()}

	cmd, err := commands.NewDispatchNotificationsCommand(10)
	require.NoError(t, err)

	repo := new(MockNotificationRepository)
	uow := new(MockUoW)
	factory := new(MockNotificationUoWFactory)
	publisher := new(MockPublisher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(repo).Once(),
		repo.On("ListUndispatched", ctx, 10).Return(batch, nil).Once(),
		publisher.On("Publish", ctx, batch).Return(nil).Once(),
		repo.On("MarkDispatched", ctx, ids, now).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewDispatchNotificationsCommandHandler(factory, publisher, clock)
	sent, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDispatchNotificationsCommandHandler_Handle_EmptyBatch(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDispatchNotificationsCommand(10)
	require.NoError(t, err)

	repo := new(MockNotificationRepository)
	uow := new(MockUoW)
	factory := new(MockNotificationUoWFactory)
	publisher := new(MockPublisher)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationRepository").Return(repo).Once()
	repo.On("ListUndispatched", ctx, 10).Return([]*notification.Notification{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewDispatchNotificationsCommandHandler(factory, publisher, clock)
	sent, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, sent)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestDispatchNotificationsCommandHandler_Handle_PublishErrorKeepsBatchPending(t *testing.T) {
	ctx := t.Context()
	batch := []*notification.Notification{testNotification(t, kernel.NewUUID())}
	cmd, err := commands.NewDispatchNotificationsCommand(10)
	require.NoError(t, err)

	repo := new(MockNotificationRepository)
	uow := new(MockUoW)
	factory := new(MockNotificationUoWFactory)
	publisher := new(MockPublisher)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationRepository").Return(repo).Once()
	repo.On("ListUndispatched", ctx, 10).Return(batch, nil).Once()
	publisher.On("Publish", ctx, batch).Return(errors.New("broker unavailable")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewDispatchNotificationsCommandHandler(factory, publisher, clock)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "broker unavailable")
	repo.AssertNotCalled(t, "MarkDispatched", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
