package queries

import (
	"errors"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrGetDeliveryStatusQueryIsNotConstructed = errors.New(
	"GetDeliveryStatusQuery must be created via NewGetDeliveryStatusQuery constructor",
)

// GetDeliveryStatusQuery reads the delivery progress and the auto-confirmation
// deadline of an order. Only the orderer and the assigned picker may read it.
type GetDeliveryStatusQuery struct {
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryStatusQuery(orderID, userID kernel.UUID) (GetDeliveryStatusQuery, error) {
	if err := errors.Join(orderID.Validate(), userID.Validate()); err != nil {
		return GetDeliveryStatusQuery{}, err
	}
	return GetDeliveryStatusQuery{orderID: orderID, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatusQueryIsNotConstructed)
}

func (q GetDeliveryStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetDeliveryStatusQuery) UserID() kernel.UUID {
	return q.userID
}

// DeliveryStatusResponse reports where an order stands in delivery.
// ConfirmationDeadline and HoursRemaining are set only while the order is
// DELIVERED and unconfirmed.
//
// Example:
//
//	{
//	  "order_id": "6f1c...", "status": "DELIVERED",
//	  "delivered_at": "2025-03-10T12:00:00Z",
//	  "confirmation_deadline": "2025-03-12T12:00:00Z", "hours_remaining": 47
//	}
type DeliveryStatusResponse struct {
	OrderID               uuid.UUID  `json:"order_id"`
	Status                string     `json:"status"`
	DeliveredAt           *time.Time `json:"delivered_at"`
	DeliveryConfirmedAt   *time.Time `json:"delivery_confirmed_at"`
	DeliveryIssueReported bool       `json:"delivery_issue_reported"`
	AutoConfirmed         bool       `json:"auto_confirmed"`
	ProofOfDelivery       string     `json:"proof_of_delivery"`
	ConfirmationDeadline  *time.Time `json:"confirmation_deadline"`
	HoursRemaining        *int       `json:"hours_remaining"`
}
