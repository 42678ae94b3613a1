package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/domain/model/journey"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CompleteExpiredDeliveries(ctx context.Context, deliveredBefore, at time.Time) (int64, error) {
	args := m.Called(ctx, deliveredBefore, at)
	return args.Get(0).(int64), args.Error(1)
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

type MockJourneyRepository struct{ mock.Mock }

func (m *MockJourneyRepository) Add(ctx context.Context, j *journey.Journey) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJourneyRepository) DeactivateAllForUser(ctx context.Context, userID kernel.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockJourneyRepository) ListActiveByRoute(ctx context.Context, route kernel.Route) ([]*journey.Journey, error) {
	args := m.Called(ctx, route)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journey.Journey), args.Error(1)
}

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkDispatched(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockChatRoomRepository struct{ mock.Mock }

func (m *MockChatRoomRepository) Ensure(ctx context.Context, orderID, ordererID, pickerID kernel.UUID) error {
	args := m.Called(ctx, orderID, ordererID, pickerID)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OfferRepository() ports.OfferRepository {
	args := m.Called()
	return args.Get(0).(ports.OfferRepository)
}

func (m *MockUoW) JourneyRepository() ports.JourneyRepository {
	args := m.Called()
	return args.Get(0).(ports.JourneyRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) ChatRoomRepository() ports.ChatRoomRepository {
	args := m.Called()
	return args.Get(0).(ports.ChatRoomRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNegotiationUoWFactory struct{ mock.Mock }

func (m *MockNegotiationUoWFactory) Create() commands.NegotiationUoW {
	args := m.Called()
	return args.Get(0).(commands.NegotiationUoW)
}

type MockDiscoveryUoWFactory struct{ mock.Mock }

func (m *MockDiscoveryUoWFactory) Create() commands.DiscoveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DiscoveryUoW)
}

type MockJourneyUoWFactory struct{ mock.Mock }

func (m *MockJourneyUoWFactory) Create() commands.JourneyUoW {
	args := m.Called()
	return args.Get(0).(commands.JourneyUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Emit(ctx context.Context, drafts ...notifier.Draft) {
	m.Called(ctx, drafts)
}

type MockProofStorage struct{ mock.Mock }

func (m *MockProofStorage) Save(ctx context.Context, orderID kernel.UUID, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, orderID, filename, content)
	return args.String(0), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, notifications []*notification.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

var testRoute = kernel.MustNewRoute("France", "Paris", "Germany", "Berlin")

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(s))
	require.NoError(t, err)
	return m
}

func draftOrder(t *testing.T, ordererID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), ordererID, testRoute, "fragile", nil, now.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func pendingOrder(t *testing.T, ordererID kernel.UUID) *order.Order {
	t.Helper()
	o := draftOrder(t, ordererID)
	item, err := order.NewItem(kernel.NewUUID(), order.ItemDetails{Name: "Camera", Price: money(t, "300"), Currency: "EUR"})
	require.NoError(t, err)
	require.NoError(t, o.AddItem(ordererID, item))
	require.NoError(t, o.SetReward(ordererID, money(t, "40")))
	_, err = o.Finalize(ordererID)
	require.NoError(t, err)
	return o
}

func acceptedOrder(t *testing.T, ordererID, pickerID kernel.UUID) *order.Order {
	t.Helper()
	o := pendingOrder(t, ordererID)
	require.NoError(t, o.AssignPicker(pickerID, now.Add(-30*time.Minute)))
	return o
}

func deliveredOrder(t *testing.T, ordererID, pickerID kernel.UUID) *order.Order {
	t.Helper()
	o := acceptedOrder(t, ordererID, pickerID)
	require.NoError(t, o.MarkDelivered(pickerID, "", now.Add(-10*time.Minute)))
	return o
}

func activeJourney(t *testing.T, userID kernel.UUID) *journey.Journey {
	t.Helper()
	j, err := journey.NewJourney(kernel.NewUUID(), userID, testRoute, now, now.Add(24*time.Hour), "5kg", now)
	require.NoError(t, err)
	return j
}
