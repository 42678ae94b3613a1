package commands_test

import (
	"testing"

	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportIssueCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ordererID := kernel.NewUUID()
	o := deliveredOrder(t, ordererID, kernel.NewUUID())

	cmd, err := commands.NewReportIssueCommand(o.ID(), ordererID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewReportIssueCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.DeliveryIssueReported())
	assert.Equal(t, order.Delivered, result.Status())
	_, pending := result.ConfirmationDeadline(order.DefaultConfirmationWindow)
	assert.True(t, pending)
	uow.AssertExpectations(t)
}

func TestReportIssueCommandHandler_Handle_RequiresDeliveredOrder(t *testing.T) {
	ctx := t.Context()
	ordererID := kernel.NewUUID()
	o := acceptedOrder(t, ordererID, kernel.NewUUID())

	cmd, err := commands.NewReportIssueCommand(o.ID(), ordererID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewReportIssueCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.False(t, o.DeliveryIssueReported())
}

func TestReportIssueCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	handler := commands.NewReportIssueCommandHandler(factory)

	_, err := handler.Handle(t.Context(), commands.ReportIssueCommand{})

	require.ErrorIs(t, err, commands.ErrReportIssueCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
