package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryStatusQueryHandler computes delivery status with the same
// confirmation window the auto-confirm sweep uses.
type GetDeliveryStatusQueryHandler struct {
	db     *gorm.DB
	clock  func() time.Time
	window time.Duration
}

func NewGetDeliveryStatusQueryHandler(
	db *gorm.DB,
	clock func() time.Time,
	window time.Duration,
) GetDeliveryStatusQueryHandler {
	if window <= 0 {
		window = order.DefaultConfirmationWindow
	}
	return GetDeliveryStatusQueryHandler{db: db, clock: clock, window: window}
}

func (h GetDeliveryStatusQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatusQuery,
) (*DeliveryStatusResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		r        DeliveryStatusResponse
		orderer  uuid.UUID
		pickerID *uuid.UUID
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			orderer_id,
			assigned_picker_id,
			status,
			delivered_at,
			delivery_confirmed_at,
			delivery_issue_reported,
			auto_confirmed,
			proof_of_delivery
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(
		&r.OrderID,
		&orderer,
		&pickerID,
		&r.Status,
		&r.DeliveredAt,
		&r.DeliveryConfirmedAt,
		&r.DeliveryIssueReported,
		&r.AutoConfirmed,
		&r.ProofOfDelivery,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return nil, err
	}

	user := query.UserID().Bytes()
	if orderer != user && (pickerID == nil || *pickerID != user) {
		return nil, errs.NewAccessDeniedError(query.UserID().String(), "only participants can view the delivery status")
	}

	if r.Status == order.Delivered.String() && r.DeliveredAt != nil && r.DeliveryConfirmedAt == nil {
		deadline := r.DeliveredAt.UTC().Add(h.window)
		hours := order.HoursRemaining(deadline, h.clock())
		r.ConfirmationDeadline = &deadline
		r.HoursRemaining = &hours
	}
	return &r, nil
}
