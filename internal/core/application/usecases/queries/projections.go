package queries

import (
	"database/sql"
	"time"

	"pickup/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserResponse is the public profile of a participant.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
}

// RouteResponse is an origin and destination pair.
type RouteResponse struct {
	OriginCountry      string `json:"origin_country"`
	OriginCity         string `json:"origin_city"`
	DestinationCountry string `json:"destination_country"`
	DestinationCity    string `json:"destination_city"`
}

// OrderSummaryResponse is a discovery feed entry.
//
// Example:
//
//	{
//	  "id": "6f1c...", "orderer": {"id": "a3e0...", "full_name": "Ana", "avatar_url": null},
//	  "route": {"origin_country": "France", "origin_city": "Paris", ...},
//	  "reward_amount": "40.00", "currency": "EUR", "status": "PENDING", "item_count": 2
//	}
type OrderSummaryResponse struct {
	ID           uuid.UUID     `json:"id"`
	Orderer      UserResponse  `json:"orderer"`
	Route        RouteResponse `json:"route"`
	SpecialNotes string        `json:"special_notes"`
	RewardAmount string        `json:"reward_amount"`
	Currency     string        `json:"currency"`
	Status       string        `json:"status"`
	WaitingDays  *int          `json:"waiting_days"`
	ItemCount    int           `json:"item_count"`
	CreatedAt    time.Time     `json:"created_at"`
}

// OfferResponse is an offer with the public identity of its author.
type OfferResponse struct {
	ID            uuid.UUID    `json:"id"`
	OrderID       uuid.UUID    `json:"order_id"`
	OfferedBy     UserResponse `json:"offered_by"`
	OfferType     string       `json:"offer_type"`
	OfferAmount   string       `json:"offer_amount"`
	ParentOfferID *uuid.UUID   `json:"parent_offer_id"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NotificationResponse is an inbox entry.
type NotificationResponse struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	EntityID  *uuid.UUID     `json:"entity_id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	IsRead    bool           `json:"is_read"`
	ReadAt    *time.Time     `json:"read_at"`
	ShownAt   *time.Time     `json:"shown_at"`
	CreatedAt time.Time      `json:"created_at"`
}

// JourneyResponse is a travel journey of a picker.
type JourneyResponse struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	DepartureCountry      string    `json:"departure_country"`
	DepartureCity         string    `json:"departure_city"`
	ArrivalCountry        string    `json:"arrival_country"`
	ArrivalCity           string    `json:"arrival_city"`
	DepartureDate         string    `json:"departure_date"`
	ArrivalDate           string    `json:"arrival_date"`
	LuggageWeightCapacity string    `json:"luggage_weight_capacity"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
}

// dateLayout formats journey dates.
const dateLayout = time.DateOnly

const orderSummarySelect = `
	SELECT
		o.id,
		o.orderer_id,
		COALESCE(u.full_name, ''),
		u.avatar_url,
		o.origin_country,
		o.origin_city,
		o.destination_country,
		o.destination_city,
		o.special_notes,
		o.reward_amount,
		o.currency,
		o.status,
		o.waiting_days,
		(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id),
		o.created_at
	FROM orders o
	LEFT JOIN users u ON u.id = o.orderer_id`

// availableOrderFilter restricts orders to the ones pickers may take.
const availableOrderFilter = `
	o.status = 'PENDING'
	AND o.assigned_picker_id IS NULL
	AND EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id)`

func scanOrderSummary(rows *sql.Rows) (OrderSummaryResponse, error) {
	var (
		r      OrderSummaryResponse
		reward decimal.Decimal
	)
	err := rows.Scan(
		&r.ID,
		&r.Orderer.ID,
		&r.Orderer.FullName,
		&r.Orderer.AvatarURL,
		&r.Route.OriginCountry,
		&r.Route.OriginCity,
		&r.Route.DestinationCountry,
		&r.Route.DestinationCity,
		&r.SpecialNotes,
		&reward,
		&r.Currency,
		&r.Status,
		&r.WaitingDays,
		&r.ItemCount,
		&r.CreatedAt,
	)
	if err != nil {
		return OrderSummaryResponse{}, err
	}
	r.RewardAmount = reward.StringFixed(kernel.MoneyScale)
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

const offerSelect = `
	SELECT
		f.id,
		f.order_id,
		f.offered_by_user_id,
		COALESCE(u.full_name, ''),
		u.avatar_url,
		f.offer_type,
		f.offer_amount,
		f.parent_offer_id,
		f.status,
		f.created_at
	FROM offers f
	LEFT JOIN users u ON u.id = f.offered_by_user_id`

func scanOffer(rows *sql.Rows) (OfferResponse, error) {
	var (
		r      OfferResponse
		amount decimal.Decimal
	)
	err := rows.Scan(
		&r.ID,
		&r.OrderID,
		&r.OfferedBy.ID,
		&r.OfferedBy.FullName,
		&r.OfferedBy.AvatarURL,
		&r.OfferType,
		&amount,
		&r.ParentOfferID,
		&r.Status,
		&r.CreatedAt,
	)
	if err != nil {
		return OfferResponse{}, err
	}
	r.OfferAmount = amount.StringFixed(kernel.MoneyScale)
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

const journeySelect = `
	SELECT
		j.id,
		j.user_id,
		j.departure_country,
		j.departure_city,
		j.arrival_country,
		j.arrival_city,
		j.departure_date,
		j.arrival_date,
		j.luggage_weight_capacity,
		j.is_active,
		j.created_at
	FROM travel_journeys j`

func scanJourney(rows *sql.Rows) (JourneyResponse, error) {
	var (
		r                  JourneyResponse
		departure, arrival time.Time
	)
	err := rows.Scan(
		&r.ID,
		&r.UserID,
		&r.DepartureCountry,
		&r.DepartureCity,
		&r.ArrivalCountry,
		&r.ArrivalCity,
		&departure,
		&arrival,
		&r.LuggageWeightCapacity,
		&r.IsActive,
		&r.CreatedAt,
	)
	if err != nil {
		return JourneyResponse{}, err
	}
	r.DepartureDate = departure.Format(dateLayout)
	r.ArrivalDate = arrival.Format(dateLayout)
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

func collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
