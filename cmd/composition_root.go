package cmd

import (
	"context"
	"time"

	httpin "pickup/internal/adapters/in/http"
	"pickup/internal/adapters/out/filestore"
	"pickup/internal/adapters/out/kafka"
	"pickup/internal/adapters/out/postgres"
	"pickup/internal/adapters/out/postgres/notificationrepo"
	"pickup/internal/core/application/notifier"
	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/application/usecases/queries"
	"pickup/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *zap.Logger

	proofs    *filestore.ProofStorage
	publisher *kafka.Publisher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	proofs, err := filestore.NewProofStorage(config.ProofStorageDir, filestore.DefaultMaxProofBytes)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		proofs:     proofs,
	}
	if len(config.KafkaBrokers) > 0 {
		root.publisher = kafka.NewPublisher(kafka.Config{
			Brokers: config.KafkaBrokers,
			Topic:   config.KafkaNotificationTopic,
		})
	}
	return root, nil
}

// Close releases the outbound connections.
func (c *CompositionRoot) Close() error {
	if c.publisher == nil {
		return nil
	}
	return c.publisher.Close()
}

func clock() time.Time {
	return time.Now().UTC()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) negotiationUoWFactory() commands.NegotiationUoWFactory {
	return FuncNegotiationUoWFactory(func() commands.NegotiationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) discoveryUoWFactory() commands.DiscoveryUoWFactory {
	return FuncDiscoveryUoWFactory(func() commands.DiscoveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) journeyUoWFactory() commands.JourneyUoWFactory {
	return FuncJourneyUoWFactory(func() commands.JourneyUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

// CreateNotifier persists notifications outside the command transactions.
func (c *CompositionRoot) CreateNotifier() *notifier.Emitter {
	return notifier.NewEmitter(notificationrepo.NewGormNotificationRepository(c.gormDB), clock, c.logger)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	notify := c.CreateNotifier()

	return httpin.Handlers{
		CreateOrder:        commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), clock),
		AddOrderItem:       commands.NewAddOrderItemCommandHandler(c.orderUoWFactory()),
		SetReward:          commands.NewSetRewardCommandHandler(c.negotiationUoWFactory(), clock),
		FinalizeOrder:      commands.NewFinalizeOrderCommandHandler(c.discoveryUoWFactory(), notify),
		AcceptOrder:        commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), notify, clock),
		MarkDelivered:      commands.NewMarkDeliveredCommandHandler(c.orderUoWFactory(), c.proofs, notify, clock),
		ConfirmDelivery:    commands.NewConfirmDeliveryCommandHandler(c.orderUoWFactory(), notify, clock),
		ReportIssue:        commands.NewReportIssueCommandHandler(c.orderUoWFactory()),
		CancelOrder:        commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), notify),
		CreateCounterOffer: commands.NewCreateCounterOfferCommandHandler(c.negotiationUoWFactory(), notify, clock),
		AcceptOffer:        commands.NewAcceptOfferCommandHandler(c.negotiationUoWFactory(), notify, clock),
		RejectOffer:        commands.NewRejectOfferCommandHandler(c.negotiationUoWFactory()),
		CreateJourney:      commands.NewCreateJourneyCommandHandler(c.journeyUoWFactory(), clock),
		MarkRead:           commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory(), clock),
		MarkShown:          commands.NewMarkNotificationShownCommandHandler(c.notificationUoWFactory(), clock),

		GetOrder:           queries.NewGetOrderQueryHandler(c.gormDB),
		GetDeliveryStatus:  queries.NewGetDeliveryStatusQueryHandler(c.gormDB, clock, c.config.AutoConfirmWindow),
		ListActiveJourneys: queries.NewListActiveJourneysQueryHandler(c.gormDB),
		Offers:             queries.NewOfferQueriesHandler(c.gormDB),
		Discovery:          queries.NewDiscoveryQueriesHandler(c.gormDB),
		Inbox:              queries.NewNotificationQueriesHandler(c.gormDB),
		Proofs:             c.proofs,
	}
}

// CreateRouter builds the HTTP entry point. A nil store disables
// idempotency keys.
func (c *CompositionRoot) CreateRouter(ctx context.Context, store httpin.IdempotencyStore) (*echo.Echo, error) {
	return httpin.NewRouter(ctx, httpin.NewServer(c.CreateHTTPHandlers()), httpin.RouterConfig{
		Logger:        c.logger,
		Authenticator: httpin.NewAuthenticator(c.config.JWTSecret),
		Idempotency:   store,
	})
}

// CreateJobs returns the background jobs. Notification dispatch runs only
// when a broker is configured.
func (c *CompositionRoot) CreateJobs() []jobs.Job {
	autoConfirm := jobs.NewAutoConfirmDeliveriesJob(
		commands.NewAutoConfirmDeliveriesCommandHandler(c.orderUoWFactory(), clock, c.config.AutoConfirmWindow),
		c.config.AutoConfirmSchedule,
		c.logger,
	)
	if c.publisher == nil {
		return []jobs.Job{autoConfirm}
	}

	dispatch := jobs.NewNotificationDispatchJob(
		commands.NewDispatchNotificationsCommandHandler(c.notificationUoWFactory(), c.publisher, clock),
		c.config.NotificationDispatchSchedule,
		jobs.DefaultDispatchBatchSize,
		c.logger,
	)
	return []jobs.Job{autoConfirm, dispatch}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNegotiationUoWFactory func() commands.NegotiationUoW

func (f FuncNegotiationUoWFactory) Create() commands.NegotiationUoW {
	return f()
}

type FuncDiscoveryUoWFactory func() commands.DiscoveryUoW

func (f FuncDiscoveryUoWFactory) Create() commands.DiscoveryUoW {
	return f()
}

type FuncJourneyUoWFactory func() commands.JourneyUoW

func (f FuncJourneyUoWFactory) Create() commands.JourneyUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
