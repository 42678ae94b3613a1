package queries

import (
	"errors"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads the full snapshot of an order. The orderer and the
// assigned picker always see it; other users only while it is PENDING.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, userID)
//	details, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID, userID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), userID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) UserID() kernel.UUID {
	return q.userID
}

// OrderItemResponse is an item of an order snapshot.
type OrderItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ItemName      string    `json:"item_name"`
	Weight        string    `json:"weight"`
	Price         string    `json:"price"`
	Currency      string    `json:"currency"`
	Quantity      int       `json:"quantity"`
	SpecialNotes  string    `json:"special_notes"`
	StoreLink     string    `json:"store_link"`
	ProductImages []string  `json:"product_images"`
}

// OrderDetailsResponse is the full snapshot of an order with its items.
//
// Example:
//
//	{
//	  "id": "6f1c...", "status": "ACCEPTED", "reward_amount": "40.00",
//	  "orderer": {"id": "a3e0...", "full_name": "Ana"},
//	  "assigned_picker": {"id": "c7d2...", "full_name": "Pablo"},
//	  "items": [{"item_name": "Camera", "price": "300.00", "quantity": 1}]
//	}
type OrderDetailsResponse struct {
	ID                         uuid.UUID           `json:"id"`
	Orderer                    UserResponse        `json:"orderer"`
	AssignedPicker             *UserResponse       `json:"assigned_picker"`
	Route                      RouteResponse       `json:"route"`
	SpecialNotes               string              `json:"special_notes"`
	RewardAmount               string              `json:"reward_amount"`
	Currency                   string              `json:"currency"`
	Status                     string              `json:"status"`
	AcceptedCounterOfferAmount *string             `json:"accepted_counter_offer_amount"`
	AcceptedAt                 *time.Time          `json:"accepted_at"`
	DeliveredAt                *time.Time          `json:"delivered_at"`
	DeliveryConfirmedAt        *time.Time          `json:"delivery_confirmed_at"`
	DeliveryIssueReported      bool                `json:"delivery_issue_reported"`
	AutoConfirmed              bool                `json:"auto_confirmed"`
	WaitingDays                *int                `json:"waiting_days"`
	ProofOfDelivery            string              `json:"proof_of_delivery"`
	Items                      []OrderItemResponse `json:"items"`
	CreatedAt                  time.Time           `json:"created_at"`
	UpdatedAt                  time.Time           `json:"updated_at"`
}
