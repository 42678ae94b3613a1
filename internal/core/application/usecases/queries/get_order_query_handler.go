package queries

import (
	"context"
	"database/sql"
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads order snapshots.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the snapshot or an ObjectNotFoundError. A user who is not
// a participant gets an AccessDeniedError unless the order is PENDING.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDetailsResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	details, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	user := query.UserID().Bytes()
	participant := details.Orderer.ID == user ||
		(details.AssignedPicker != nil && details.AssignedPicker.ID == user)
	if !participant && details.Status != order.Pending.String() {
		return nil, errs.NewAccessDeniedError(query.UserID().String(), "the order is not visible to this user")
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	details.Items = items
	return details, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (*OrderDetailsResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.orderer_id,
			COALESCE(ou.full_name, ''),
			ou.avatar_url,
			o.assigned_picker_id,
			COALESCE(pu.full_name, ''),
			pu.avatar_url,
			o.origin_country,
			o.origin_city,
			o.destination_country,
			o.destination_city,
			o.special_notes,
			o.reward_amount,
			o.currency,
			o.status,
			o.accepted_counter_offer_amount,
			o.accepted_at,
			o.delivered_at,
			o.delivery_confirmed_at,
			o.delivery_issue_reported,
			o.auto_confirmed,
			o.waiting_days,
			o.proof_of_delivery,
			o.created_at,
			o.updated_at
		FROM orders o
		LEFT JOIN users ou ON ou.id = o.orderer_id
		LEFT JOIN users pu ON pu.id = o.assigned_picker_id
		WHERE o.id = ?
	`, orderID.Bytes()).Row()

	var (
		d             OrderDetailsResponse
		pickerID      *uuid.UUID
		pickerName    string
		pickerAvatar  *string
		reward        decimal.Decimal
		counterAmount decimal.NullDecimal
	)
	err := row.Scan(
		&d.ID,
		&d.Orderer.ID,
		&d.Orderer.FullName,
		&d.Orderer.AvatarURL,
		&pickerID,
		&pickerName,
		&pickerAvatar,
		&d.Route.OriginCountry,
		&d.Route.OriginCity,
		&d.Route.DestinationCountry,
		&d.Route.DestinationCity,
		&d.SpecialNotes,
		&reward,
		&d.Currency,
		&d.Status,
		&counterAmount,
		&d.AcceptedAt,
		&d.DeliveredAt,
		&d.DeliveryConfirmedAt,
		&d.DeliveryIssueReported,
		&d.AutoConfirmed,
		&d.WaitingDays,
		&d.ProofOfDelivery,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	d.RewardAmount = reward.StringFixed(kernel.MoneyScale)
	if counterAmount.Valid {
		amount := counterAmount.Decimal.StringFixed(kernel.MoneyScale)
		d.AcceptedCounterOfferAmount = &amount
	}
	if pickerID != nil {
		d.AssignedPicker = &UserResponse{ID: *pickerID, FullName: pickerName, AvatarURL: pickerAvatar}
	}
	return &d, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			item_name,
			weight,
			price,
			currency,
			quantity,
			special_notes,
			store_link,
			product_images
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}

	return collect(rows, func(rows *sql.Rows) (OrderItemResponse, error) {
		var (
			item   OrderItemResponse
			price  decimal.Decimal
			images pq.StringArray
		)
		if err := rows.Scan(
			&item.ID,
			&item.ItemName,
			&item.Weight,
			&price,
			&item.Currency,
			&item.Quantity,
			&item.SpecialNotes,
			&item.StoreLink,
			&images,
		); err != nil {
			return OrderItemResponse{}, err
		}
		item.Price = price.StringFixed(kernel.MoneyScale)
		item.ProductImages = append(make([]string, 0, len(images)), images...)
		return item, nil
	})
}
