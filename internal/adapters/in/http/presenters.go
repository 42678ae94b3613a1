package http

import (
	"time"

	"pickup/internal/core/application/usecases/queries"
	"pickup/internal/core/domain/model/journey"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderResponse is the snapshot returned by order mutations.
type OrderResponse struct {
	ID                         uuid.UUID                   `json:"id"`
	OrdererID                  uuid.UUID                   `json:"orderer_id"`
	AssignedPickerID           *uuid.UUID                  `json:"assigned_picker_id"`
	Route                      queries.RouteResponse       `json:"route"`
	SpecialNotes               string                      `json:"special_notes"`
	RewardAmount               string                      `json:"reward_amount"`
	Currency                   string                      `json:"currency"`
	Status                     string                      `json:"status"`
	AcceptedCounterOfferAmount *string                     `json:"accepted_counter_offer_amount"`
	AcceptedAt                 *time.Time                  `json:"accepted_at"`
	DeliveredAt                *time.Time                  `json:"delivered_at"`
	DeliveryConfirmedAt        *time.Time                  `json:"delivery_confirmed_at"`
	DeliveryIssueReported      bool                        `json:"delivery_issue_reported"`
	AutoConfirmed              bool                        `json:"auto_confirmed"`
	WaitingDays                *int                        `json:"waiting_days"`
	ProofOfDelivery            string                      `json:"proof_of_delivery"`
	Items                      []queries.OrderItemResponse `json:"items"`
	CreatedAt                  time.Time                   `json:"created_at"`
}

// OfferResponse is the snapshot returned by offer mutations.
type OfferResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         uuid.UUID  `json:"order_id"`
	OfferedByUserID uuid.UUID  `json:"offered_by_user_id"`
	OfferType       string     `json:"offer_type"`
	OfferAmount     string     `json:"offer_amount"`
	ParentOfferID   *uuid.UUID `json:"parent_offer_id"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	value := id.Bytes()
	return &value
}

func presentRoute(route kernel.Route) queries.RouteResponse {
	return queries.RouteResponse{
		OriginCountry:      route.Origin().Country(),
		OriginCity:         route.Origin().City(),
		DestinationCountry: route.Destination().Country(),
		DestinationCity:    route.Destination().City(),
	}
}

func presentOrder(o *order.Order) OrderResponse {
	response := OrderResponse{
		ID:                    o.ID().Bytes(),
		OrdererID:             o.OrdererID().Bytes(),
		AssignedPickerID:      optionalID(o.AssignedPickerID()),
		Route:                 presentRoute(o.Route()),
		SpecialNotes:          o.Notes(),
		RewardAmount:          o.Reward().String(),
		Currency:              o.Currency(),
		Status:                o.Status().String(),
		AcceptedAt:            o.AcceptedAt(),
		DeliveredAt:           o.DeliveredAt(),
		DeliveryConfirmedAt:   o.DeliveryConfirmedAt(),
		DeliveryIssueReported: o.DeliveryIssueReported(),
		AutoConfirmed:         o.AutoConfirmed(),
		WaitingDays:           o.WaitingDays(),
		ProofOfDelivery:       o.ProofOfDelivery(),
		Items:                 make([]queries.OrderItemResponse, 0, len(o.Items())),
		CreatedAt:             o.CreatedAt(),
	}
	if amount := o.AcceptedCounterOfferAmount(); amount != nil {
		value := amount.String()
		response.AcceptedCounterOfferAmount = &value
	}

	for _, item := range o.Items() {
		details := item.Details()
		images := details.ProductImages
		if images == nil {
			images = []string{}
		}
		response.Items = append(response.Items, queries.OrderItemResponse{
			ID:            item.ID().Bytes(),
			ItemName:      details.Name,
			Weight:        details.Weight,
			Price:         details.Price.String(),
			Currency:      details.Currency,
			Quantity:      details.Quantity,
			SpecialNotes:  details.SpecialNotes,
			StoreLink:     details.StoreLink,
			ProductImages: images,
		})
	}
	return response
}

func presentOffer(o *offer.Offer) OfferResponse {
	return OfferResponse{
		ID:              o.ID().Bytes(),
		OrderID:         o.OrderID().Bytes(),
		OfferedByUserID: o.OfferedBy().Bytes(),
		OfferType:       o.Type().String(),
		OfferAmount:     o.Amount().String(),
		ParentOfferID:   optionalID(o.ParentID()),
		Status:          o.Status().String(),
		CreatedAt:       o.CreatedAt(),
	}
}

func presentJourney(j *journey.Journey) queries.JourneyResponse {
	route := j.Route()
	return queries.JourneyResponse{
		ID:                    j.ID().Bytes(),
		UserID:                j.UserID().Bytes(),
		DepartureCountry:      route.Origin().Country(),
		DepartureCity:         route.Origin().City(),
		ArrivalCountry:        route.Destination().Country(),
		ArrivalCity:           route.Destination().City(),
		DepartureDate:         j.DepartureDate().Format(time.DateOnly),
		ArrivalDate:           j.ArrivalDate().Format(time.DateOnly),
		LuggageWeightCapacity: j.LuggageCapacity(),
		IsActive:              j.IsActive(),
		CreatedAt:             j.CreatedAt(),
	}
}

func presentNotification(n *notification.Notification) queries.NotificationResponse {
	data := n.Data()
	if data == nil {
		data = map[string]any{}
	}
	return queries.NotificationResponse{
		ID:        n.ID().Bytes(),
		Type:      string(n.Type()),
		EntityID:  optionalID(n.EntityID()),
		Title:     n.Title(),
		Message:   n.Message(),
		Data:      data,
		IsRead:    n.IsRead(),
		ReadAt:    n.ReadAt(),
		ShownAt:   n.ShownAt(),
		CreatedAt: n.CreatedAt(),
	}
}
