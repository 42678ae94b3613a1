package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "pickup/internal/adapters/out/postgres"
	"pickup/internal/adapters/out/postgres/chatroomrepo"
	"pickup/internal/adapters/out/postgres/pgtest"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMigrate_IsRepeatable() {
	suite.Require().NoError(postgres_adapter.Migrate(suite.T().Context(), suite.database.DB))
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx), "Rollback after commit reports no active transaction")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Require().Error(uow.Commit(ctx), "Commit without transaction should fail")
}

// TestUnitOfWork_AcceptanceIsAtomic commits an order, its accepted offer and
// the chat room together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AcceptanceIsAtomic() {
	ctx := suite.T().Context()
	orderer := kernel.NewUUID()
	picker := kernel.NewUUID()
	o, initial := suite.publishedOrderWithOffer(orderer)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AcceptInitialOffer(picker, initial.Amount(), time.Now()))
	suite.Require().NoError(initial.Accept())
	suite.Require().NoError(uow.OfferRepository().Update(ctx, initial))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.ChatRoomRepository().Ensure(ctx, o.ID(), orderer, picker))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	got, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, got.Status())

	storedOffer, err := reader.OfferRepository().Get(ctx, initial.ID())
	suite.Require().NoError(err)
	suite.Equal(offer.Accepted, storedOffer.Status())

	suite.Equal(int64(1), suite.chatRooms(o.ID()))
}

// TestUnitOfWork_RollbackDiscardsEveryRepository verifies rollback discards
// changes made through several repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEveryRepository() {
	ctx := suite.T().Context()
	orderer := kernel.NewUUID()
	picker := kernel.NewUUID()
	o, initial := suite.publishedOrderWithOffer(orderer)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AcceptInitialOffer(picker, initial.Amount(), time.Now()))
	suite.Require().NoError(initial.Accept())
	suite.Require().NoError(uow.OfferRepository().Update(ctx, initial))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.ChatRoomRepository().Ensure(ctx, o.ID(), orderer, picker))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	got, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, got.Status())
	suite.Nil(got.AssignedPickerID())

	storedOffer, err := reader.OfferRepository().Get(ctx, initial.ID())
	suite.Require().NoError(err)
	suite.Equal(offer.Pending, storedOffer.Status())

	suite.Zero(suite.chatRooms(o.ID()))
}

// TestUnitOfWork_RepositoryIsolation verifies uncommitted work is invisible
// to other units of work.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := suite.T().Context()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := suite.newOrder(kernel.NewUUID())
	order2 := suite.newOrder(kernel.NewUUID())

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")
	_, err = reader.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_ConcurrentAcceptance lets two pickers race for the same
// order: the loser fails on the version check.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentAcceptance() {
	ctx := suite.T().Context()
	o, _ := suite.publishedOrderWithOffer(kernel.NewUUID())

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))

	firstCopy, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	secondCopy, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(firstCopy.AssignPicker(kernel.NewUUID(), time.Now()))
	suite.Require().NoError(first.OrderRepository().Update(ctx, firstCopy))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(secondCopy.AssignPicker(kernel.NewUUID(), time.Now()))
	err = second.OrderRepository().Update(ctx, secondCopy)
	suite.Require().Error(err)
	suite.Require().NoError(second.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(orderer kernel.UUID) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), orderer,
		kernel.MustNewRoute("France", "Paris", "Germany", "Berlin"), "", nil, time.Now())
	suite.Require().NoError(err)
	return o
}

// publishedOrderWithOffer stores a Pending order with a reward of 40 and its
// pending initial offer.
func (suite *UnitOfWorkIntegrationTestSuite) publishedOrderWithOffer(orderer kernel.UUID) (*order.Order, *offer.Offer) {
	ctx := suite.T().Context()
	o := suite.newOrder(orderer)
	price, err := kernel.ParseMoney("300")
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), order.ItemDetails{Name: "Camera", Price: price, Currency: "EUR"})
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(orderer, item))
	reward, err := kernel.ParseMoney("40")
	suite.Require().NoError(err)
	suite.Require().NoError(o.SetReward(orderer, reward))
	_, err = o.Finalize(orderer)
	suite.Require().NoError(err)

	initial, err := offer.NewInitialOffer(kernel.NewUUID(), o.ID(), orderer, reward, time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.OfferRepository().Add(ctx, initial))
	suite.Require().NoError(uow.Commit(ctx))
	return o, initial
}

func (suite *UnitOfWorkIntegrationTestSuite) chatRooms(orderID kernel.UUID) int64 {
	var count int64
	suite.Require().NoError(suite.database.DB.Model(&chatroomrepo.ChatRoomDTO{}).
		Where("order_id = ?", orderID.Bytes()).Count(&count).Error)
	return count
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
