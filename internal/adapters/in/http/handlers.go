package http

import (
	"context"
	"os"

	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/application/usecases/queries"
	"pickup/internal/core/domain/model/journey"
	"pickup/internal/core/domain/model/notification"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/model/order"
)

// Handler is a command or query handler with a single Handle method.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// OfferReader serves the offer read endpoints.
type OfferReader interface {
	History(ctx context.Context, query queries.GetOfferHistoryQuery) (queries.PagedResponse[queries.OfferResponse], error)
	Current(ctx context.Context, query queries.GetCurrentOfferQuery) (*queries.OfferResponse, error)
	Pending(ctx context.Context, query queries.GetPendingOffersQuery) ([]queries.OfferResponse, error)
}

// DiscoveryReader serves the discovery feeds.
type DiscoveryReader interface {
	AvailableOrders(
		ctx context.Context,
		query queries.GetAvailableOrdersQuery,
	) (queries.PagedResponse[queries.OrderSummaryResponse], error)
	Search(ctx context.Context, query queries.SearchOrdersQuery) (queries.PagedResponse[queries.OrderSummaryResponse], error)
	AvailablePickers(
		ctx context.Context,
		query queries.GetAvailablePickersQuery,
	) (queries.PagedResponse[queries.AvailablePickerResponse], error)
}

// InboxReader serves the notification read endpoints.
type InboxReader interface {
	List(ctx context.Context, query queries.ListNotificationsQuery) (queries.PagedResponse[queries.NotificationResponse], error)
	UnreadCount(ctx context.Context, query queries.RecipientQuery) (queries.UnreadCountResponse, error)
	Pending(ctx context.Context, query queries.RecipientQuery) ([]queries.NotificationResponse, error)
}

// ProofReader opens stored proof-of-delivery files by reference.
type ProofReader interface {
	Open(reference string) (*os.File, error)
}

// Handlers are the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder        Handler[commands.CreateOrderCommand, *order.Order]
	AddOrderItem       Handler[commands.AddOrderItemCommand, *order.Order]
	SetReward          Handler[commands.SetRewardCommand, commands.SetRewardResult]
	FinalizeOrder      Handler[commands.FinalizeOrderCommand, *order.Order]
	AcceptOrder        Handler[commands.AcceptOrderCommand, *order.Order]
	MarkDelivered      Handler[commands.MarkDeliveredCommand, *order.Order]
	ConfirmDelivery    Handler[commands.ConfirmDeliveryCommand, *order.Order]
	ReportIssue        Handler[commands.ReportIssueCommand, *order.Order]
	CancelOrder        Handler[commands.CancelOrderCommand, *order.Order]
	CreateCounterOffer Handler[commands.CreateCounterOfferCommand, *offer.Offer]
	AcceptOffer        Handler[commands.AcceptOfferCommand, commands.AcceptOfferResult]
	RejectOffer        Handler[commands.RejectOfferCommand, *offer.Offer]
	CreateJourney      Handler[commands.CreateJourneyCommand, *journey.Journey]
	MarkRead           Handler[commands.MarkNotificationReadCommand, *notification.Notification]
	MarkShown          Handler[commands.MarkNotificationShownCommand, *notification.Notification]

	GetOrder           Handler[queries.GetOrderQuery, *queries.OrderDetailsResponse]
	GetDeliveryStatus  Handler[queries.GetDeliveryStatusQuery, *queries.DeliveryStatusResponse]
	ListActiveJourneys Handler[queries.RecipientQuery, []queries.JourneyResponse]
	Offers             OfferReader
	Discovery          DiscoveryReader
	Inbox              InboxReader
	Proofs             ProofReader
}
