package offerrepo_test

import (
	"context"
	"testing"
	"time"

	"pickup/internal/adapters/out/postgres/offerrepo"
	"pickup/internal/adapters/out/postgres/orderrepo"
	"pickup/internal/adapters/out/postgres/pgtest"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type OfferRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *offerrepo.GormOfferRepository
	orderID    kernel.UUID
	orderer    kernel.UUID
	now        time.Time
}

func (suite *OfferRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OfferRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = offerrepo.NewGormOfferRepository(suite.database.DB)
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	suite.orderer = kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), suite.orderer,
		kernel.MustNewRoute("France", "Paris", "Germany", "Berlin"), "", nil, suite.now.Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.database.DB).Add(suite.T().Context(), o))
	suite.orderID = o.ID()
}

func (suite *OfferRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OfferRepositoryIntegrationTestSuite) TestAdd_AndListByOrder_OldestFirst() {
	ctx := suite.T().Context()
	initial := suite.initial("40", suite.now)
	counter := suite.counter(kernel.NewUUID(), "55", initial, suite.now.Add(time.Minute))

	suite.Require().NoError(suite.repository.Add(ctx, initial))
	suite.Require().NoError(suite.repository.Add(ctx, counter))

	offers, err := suite.repository.ListByOrder(ctx, suite.orderID)
	suite.Require().NoError(err)
	suite.Require().Len(offers, 2)

	suite.Equal(initial.ID(), offers[0].ID())
	suite.Equal(offer.Initial, offers[0].Type())
	suite.Equal("40.00", offers[0].Amount().String())
	suite.Nil(offers[0].ParentID())

	suite.Equal(counter.ID(), offers[1].ID())
	suite.Equal(offer.Counter, offers[1].Type())
	suite.Equal(offer.Pending, offers[1].Status())
	suite.Require().NotNil(offers[1].ParentID())
	suite.Equal(initial.ID(), *offers[1].ParentID())
}

func (suite *OfferRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OfferRepositoryIntegrationTestSuite) TestUpdate_StatusAndVersion() {
	ctx := suite.T().Context()
	initial := suite.initial("40", suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, initial))

	loaded, err := suite.repository.Get(ctx, initial.ID())
	suite.Require().NoError(err)
	stale, err := suite.repository.Get(ctx, initial.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(loaded.Accept())
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	got, err := suite.repository.Get(ctx, initial.ID())
	suite.Require().NoError(err)
	suite.Equal(offer.Accepted, got.Status())
	suite.Equal(1, got.Version())

	suite.Require().NoError(stale.Reject())
	err = suite.repository.Update(ctx, stale)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *OfferRepositoryIntegrationTestSuite) TestSecondOutstandingCounter_ReturnsConflict() {
	ctx := suite.T().Context()
	picker := kernel.NewUUID()
	initial := suite.initial("40", suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, initial))

	first := suite.counter(picker, "50", initial, suite.now.Add(time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.counter(picker, "60", initial, suite.now.Add(2*time.Minute))
	err := suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	other := suite.counter(kernel.NewUUID(), "60", initial, suite.now.Add(3*time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, other))
}

func (suite *OfferRepositoryIntegrationTestSuite) TestRejectedCounter_AllowsANewOne() {
	ctx := suite.T().Context()
	picker := kernel.NewUUID()
	initial := suite.initial("40", suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, initial))

	first := suite.counter(picker, "50", initial, suite.now.Add(time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(first.Reject())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	second := suite.counter(picker, "45", initial, suite.now.Add(2*time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, second))
}

func (suite *OfferRepositoryIntegrationTestSuite) TestSecondAcceptedOffer_ReturnsConflict() {
	ctx := suite.T().Context()
	initial := suite.initial("40", suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, initial))
	counter := suite.counter(kernel.NewUUID(), "50", initial, suite.now.Add(time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, counter))

	suite.Require().NoError(initial.Accept())
	suite.Require().NoError(suite.repository.Update(ctx, initial))

	suite.Require().NoError(counter.Accept())
	err := suite.repository.Update(ctx, counter)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OfferRepositoryIntegrationTestSuite) initial(amount string, at time.Time) *offer.Offer {
	money, err := kernel.ParseMoney(amount)
	suite.Require().NoError(err)
	o, err := offer.NewInitialOffer(kernel.NewUUID(), suite.orderID, suite.orderer, money, at)
	suite.Require().NoError(err)
	return o
}

func (suite *OfferRepositoryIntegrationTestSuite) counter(
	picker kernel.UUID,
	amount string,
	parent *offer.Offer,
	at time.Time,
) *offer.Offer {
	money, err := kernel.ParseMoney(amount)
	suite.Require().NoError(err)
	parentID := parent.ID()
	o, err := offer.NewCounterOffer(kernel.NewUUID(), suite.orderID, picker, money, &parentID, at)
	suite.Require().NoError(err)
	return o
}

func TestOfferRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OfferRepositoryIntegrationTestSuite))
}
