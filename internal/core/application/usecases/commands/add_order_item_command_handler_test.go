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

func TestAddOrderItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ordererID := kernel.NewUUID()
	o := draftOrder(t, ordererID)

	cmd, err := commands.NewAddOrderItemCommand(o.ID(), ordererID, kernel.NewUUID(),
		order.ItemDetails{Name: "Sneakers", Price: money(t, "120.50"), Currency: "usd", Quantity: 2})
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

	handler := commands.NewAddOrderItemCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, result.Items(), 1)
	assert.Equal(t, "USD", result.Currency())
	assert.Equal(t, 2, result.Items()[0].Details().Quantity)
	uow.AssertExpectations(t)
}

func TestAddOrderItemCommandHandler_Handle_Rejections(t *testing.T) {
	ordererID := kernel.NewUUID()

	tests := []struct {
		name   string
		order  *order.Order
		actor  kernel.UUID
		target error
	}{
		{name: "not the orderer", order: draftOrder(t, ordererID), actor: kernel.NewUUID(), target: errs.ErrAccessDenied},
		{name: "order already accepted", order: acceptedOrder(t, ordererID, kernel.NewUUID()), actor: ordererID, target: errs.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewAddOrderItemCommand(tt.order.ID(), tt.actor, kernel.NewUUID(),
				order.ItemDetails{Name: "Book", Price: money(t, "10")})
			require.NoError(t, err)

			repo := new(MockOrderRepository)
			uow := new(MockUoW)
			factory := new(MockOrderUoWFactory)

			factory.On("Create").Return(uow).Once()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("Get", ctx, tt.order.ID()).Return(tt.order, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			handler := commands.NewAddOrderItemCommandHandler(factory)
			_, err = handler.Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.target)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}
