package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"pickup/internal/adapters/out/postgres/orderrepo"
	"pickup/internal/adapters/out/postgres/pgtest"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	now        time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AndGet_RoundTrip() {
	ctx := suite.T().Context()
	orderer := kernel.NewUUID()
	days := 3

	o, err := order.NewOrder(kernel.NewUUID(), orderer,
		kernel.MustNewRoute("France", "Paris", "Germany", "Berlin"), "fragile", &days, suite.now)
	suite.Require().NoError(err)
	suite.addItem(o, orderer, "Camera", "300")
	suite.addItem(o, orderer, "Lens", "120.5")

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), got.ID())
	suite.Equal(orderer, got.OrdererID())
	suite.Equal(order.Draft, got.Status())
	suite.True(got.Route().Matches(o.Route()))
	suite.Equal("Paris", got.Route().Origin().City())
	suite.Equal("fragile", got.Notes())
	suite.Equal("0.00", got.Reward().String())
	suite.Equal("EUR", got.Currency())
	suite.Require().NotNil(got.WaitingDays())
	suite.Equal(3, *got.WaitingDays())
	suite.Nil(got.AssignedPickerID())
	suite.True(suite.now.Equal(got.CreatedAt()))

	items := got.Items()
	suite.Require().Len(items, 2)
	suite.Equal("Camera", items[0].Details().Name)
	suite.Equal("120.50", items[1].Details().Price.String())
	suite.Equal([]string{"https://img.example/camera.jpg"}, items[0].Details().ProductImages)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionsAndNewItems() {
	ctx := suite.T().Context()
	orderer := kernel.NewUUID()
	picker := kernel.NewUUID()
	o := suite.storedDraft(orderer)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.addItem(loaded, orderer, "Tripod", "45")
	reward, err := kernel.ParseMoney("40")
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.SetReward(orderer, reward))
	_, err = loaded.Finalize(orderer)
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AssignPicker(picker, suite.now))
	counter, err := kernel.ParseMoney("55")
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.RecordAcceptedCounterOffer(counter))

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, got.Status())
	suite.Equal("40.00", got.Reward().String())
	suite.Require().NotNil(got.AssignedPickerID())
	suite.Equal(picker, *got.AssignedPickerID())
	suite.Require().NotNil(got.AcceptedCounterOfferAmount())
	suite.Equal("55.00", got.AcceptedCounterOfferAmount().String())
	suite.Require().NotNil(got.AcceptedAt())
	suite.Len(got.Items(), 2)
	suite.Equal(1, got.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionIsInvalid() {
	ctx := suite.T().Context()
	orderer := kernel.NewUUID()
	o := suite.storedDraft(orderer)

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = first.Finalize(orderer)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Cancel(orderer))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	orderer := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), orderer,
		kernel.MustNewRoute("France", "Paris", "Germany", "Berlin"), "", nil, suite.now)
	suite.Require().NoError(err)

	err = suite.repository.Update(suite.T().Context(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCompleteExpiredDeliveries() {
	ctx := suite.T().Context()
	window := order.DefaultConfirmationWindow

	overdue := suite.storedDelivered(suite.now.Add(-49 * time.Hour))
	exactlyDue := suite.storedDelivered(suite.now.Add(-window))
	recent := suite.storedDelivered(suite.now.Add(-47 * time.Hour))
	disputed := suite.storedDelivered(suite.now.Add(-72 * time.Hour))
	suite.Require().NoError(disputed.ReportIssue(disputed.OrdererID()))
	suite.Require().NoError(suite.repository.Update(ctx, disputed))

	completed, err := suite.repository.CompleteExpiredDeliveries(ctx, suite.now.Add(-window), suite.now)
	suite.Require().NoError(err)
	suite.Equal(int64(2), completed)

	for _, id := range []kernel.UUID{overdue.ID(), exactlyDue.ID()} {
		got, getErr := suite.repository.Get(ctx, id)
		suite.Require().NoError(getErr)
		suite.Equal(order.Completed, got.Status())
		suite.True(got.AutoConfirmed())
		suite.Require().NotNil(got.DeliveryConfirmedAt())
		suite.True(suite.now.Equal(*got.DeliveryConfirmedAt()))
	}

	for _, id := range []kernel.UUID{recent.ID(), disputed.ID()} {
		got, getErr := suite.repository.Get(ctx, id)
		suite.Require().NoError(getErr)
		suite.Equal(order.Delivered, got.Status())
		suite.False(got.AutoConfirmed())
	}

	again, err := suite.repository.CompleteExpiredDeliveries(ctx, suite.now.Add(-window), suite.now)
	suite.Require().NoError(err)
	suite.Zero(again)
}

func (suite *OrderRepositoryIntegrationTestSuite) addItem(o *order.Order, orderer kernel.UUID, name, price string) {
	amount, err := kernel.ParseMoney(price)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), order.ItemDetails{
		Name:          name,
		Price:         amount,
		Currency:      "eur",
		ProductImages: []string{"https://img.example/" + "camera.jpg"},
	})
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(orderer, item))
}

func (suite *OrderRepositoryIntegrationTestSuite) storedDraft(orderer kernel.UUID) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), orderer,
		kernel.MustNewRoute("France", "Paris", "Germany", "Berlin"), "", nil, suite.now.Add(-time.Hour))
	suite.Require().NoError(err)
	suite.addItem(o, orderer, "Camera", "300")
	suite.Require().NoError(suite.repository.Add(suite.T().Context(), o))
	return o
}

// storedDelivered persists an order delivered at deliveredAt and returns it
// reloaded, so its version matches the row.
func (suite *OrderRepositoryIntegrationTestSuite) storedDelivered(deliveredAt time.Time) *order.Order {
	ctx := suite.T().Context()
	orderer := kernel.NewUUID()
	picker := kernel.NewUUID()
	o := suite.storedDraft(orderer)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.Finalize(orderer)
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AssignPicker(picker, deliveredAt.Add(-time.Hour)))
	suite.Require().NoError(loaded.MarkDelivered(picker, "", deliveredAt))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	return reloaded
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
