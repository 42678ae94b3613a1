package commands_test

import (
	"testing"

	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRejectOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newNegotiation(t)

	cmd, err := commands.NewRejectOfferCommand(f.counter.ID(), f.ordererID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	factory := new(MockNegotiationUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OfferRepository").Return(offerRepo).Once(),
		offerRepo.On("Get", ctx, f.counter.ID()).Return(f.counter, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, f.order.ID()).Return(f.order, nil).Once(),
		offerRepo.On("Update", ctx, f.counter).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRejectOfferCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, offer.Rejected, result.Status())
	assert.Equal(t, offer.Pending, f.initial.Status())
	uow.AssertExpectations(t)
}

func TestRejectOfferCommandHandler_Handle_Rejections(t *testing.T) {
	t.Run("only the orderer rejects", func(t *testing.T) {
		ctx := t.Context()
		f := newNegotiation(t)
		cmd, err := commands.NewRejectOfferCommand(f.counter.ID(), f.pickerID)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		offerRepo := new(MockOfferRepository)
		uow := new(MockUoW)
		factory := new(MockNegotiationUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OfferRepository").Return(offerRepo).Once()
		offerRepo.On("Get", ctx, f.counter.ID()).Return(f.counter, nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("Get", ctx, f.order.ID()).Return(f.order, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		_, err = commands.NewRejectOfferCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Equal(t, offer.Pending, f.counter.Status())
	})

	t.Run("already decided", func(t *testing.T) {
		ctx := t.Context()
		f := newNegotiation(t)
		require.NoError(t, f.counter.Reject())
		cmd, err := commands.NewRejectOfferCommand(f.counter.ID(), f.ordererID)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		offerRepo := new(MockOfferRepository)
		uow := new(MockUoW)
		factory := new(MockNegotiationUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OfferRepository").Return(offerRepo).Once()
		offerRepo.On("Get", ctx, f.counter.ID()).Return(f.counter, nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("Get", ctx, f.order.ID()).Return(f.order, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		_, err = commands.NewRejectOfferCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		offerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
