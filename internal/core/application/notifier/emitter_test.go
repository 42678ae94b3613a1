package notifier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
	"pickup/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListUndispatched(ctx context.Context, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkDispatched(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

var now = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		kernel.MustNewRoute("Italy", "Rome", "Spain", "Madrid"), "", nil, now)
	require.NoError(t, err)
	return o
}

func TestEmitter_Emit_PersistsEveryDraft(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	pickerA, pickerB := kernel.NewUUID(), kernel.NewUUID()

	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.RecipientID().IsEqual(pickerA) && n.Type() == notification.NewOrderAvailable
	})).Return(nil).Once()
	repo.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.RecipientID().IsEqual(pickerB) && n.CreatedAt().Equal(now)
	})).Return(nil).Once()

	emitter := notifier.NewEmitter(repo, clock, zap.NewNop())
	emitter.Emit(ctx, notifier.NewOrderAvailable(o, pickerA), notifier.NewOrderAvailable(o, pickerB))

	repo.AssertExpectations(t)
}

func TestEmitter_Emit_FailureIsLoggedAndSkipped(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)
	core, logs := observer.New(zap.WarnLevel)

	repo := new(MockNotificationRepository)
	mock.InOrder(
		repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("database error")).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
	)

	emitter := notifier.NewEmitter(repo, clock, zap.New(core))
	emitter.Emit(ctx, notifier.OrderAccepted(o), notifier.OrderDelivered(o))

	repo.AssertNumberOfCalls(t, "Add", 2)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to emit notification", entry.Message)
	assert.Equal(t, string(notification.OrderAccepted), entry.ContextMap()["type"])
}

func TestEmitter_Emit_InvalidDraftNeverReachesStorage(t *testing.T) {
	repo := new(MockNotificationRepository)

	emitter := notifier.NewEmitter(repo, clock, zap.NewNop())
	emitter.Emit(t.Context(), notifier.Draft{RecipientID: kernel.NewUUID(), Type: "BOGUS", Title: "x"})

	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestEmitter_Emit_IgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	repo := new(MockNotificationRepository)
	repo.On("Add", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), mock.Anything).
		Return(nil).Once()

	notifier.NewEmitter(repo, clock, zap.NewNop()).Emit(ctx, notifier.OrderDelivered(testOrder(t)))

	repo.AssertExpectations(t)
}

func TestDrafts_RecipientSelection(t *testing.T) {
	o := testOrder(t)

	_, ok := notifier.OrderCancelled(o)
	assert.False(t, ok, "unassigned order has nobody to notify")
	_, ok = notifier.PaymentConfirmed(o)
	assert.False(t, ok)

	_, err := o.Finalize(o.OrdererID())
	require.NoError(t, err)
	picker := kernel.NewUUID()
	require.NoError(t, o.AssignPicker(picker, now))

	d, ok := notifier.OrderCancelled(o)
	require.True(t, ok)
	assert.True(t, d.RecipientID.IsEqual(picker))
	assert.Equal(t, notification.OrderCancelled, d.Type)

	accepted := notifier.OrderAccepted(o)
	assert.True(t, accepted.RecipientID.IsEqual(o.OrdererID()))
	assert.Equal(t, picker.String(), accepted.Data["picker_id"])
}
