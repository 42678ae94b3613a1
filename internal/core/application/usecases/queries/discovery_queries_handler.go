package queries

import (
	"context"
	"database/sql"
	"errors"

	"pickup/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// routeMatch joins an order o to an active journey j travelling the same
// route, compared case-insensitively.
const routeMatch = `
	j.is_active
	AND LOWER(j.departure_country) = LOWER(o.origin_country)
	AND LOWER(j.departure_city) = LOWER(o.origin_city)
	AND LOWER(j.arrival_country) = LOWER(o.destination_country)
	AND LOWER(j.arrival_city) = LOWER(o.destination_city)`

// DiscoveryQueriesHandler matches pending orders to travelling pickers.
// Matching is exact on country and city names, ignoring case.
type DiscoveryQueriesHandler struct {
	db *gorm.DB
}

func NewDiscoveryQueriesHandler(db *gorm.DB) DiscoveryQueriesHandler {
	return DiscoveryQueriesHandler{db: db}
}

// AvailableOrders returns orders whose route equals one of the picker's
// active journeys, newest first. The picker's own orders are excluded.
func (h DiscoveryQueriesHandler) AvailableOrders(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) (PagedResponse[OrderSummaryResponse], error) {
	if err := query.Validate(); err != nil {
		return PagedResponse[OrderSummaryResponse]{}, err
	}

	where := `
		WHERE` + availableOrderFilter + `
		AND o.orderer_id <> @picker
		AND EXISTS (SELECT 1 FROM travel_journeys j WHERE j.user_id = @picker AND` + routeMatch + `)`
	args := map[string]any{"picker": query.PickerID().Bytes()}

	return h.pageOrders(ctx, where, args, query.Page())
}

// Search returns available orders whose item names or route fields contain
// the text, newest first.
func (h DiscoveryQueriesHandler) Search(
	ctx context.Context,
	query SearchOrdersQuery,
) (PagedResponse[OrderSummaryResponse], error) {
	if err := query.Validate(); err != nil {
		return PagedResponse[OrderSummaryResponse]{}, err
	}

	where := `
		WHERE` + availableOrderFilter + `
		AND (
			o.origin_country ILIKE @pattern
			OR o.origin_city ILIKE @pattern
			OR o.destination_country ILIKE @pattern
			OR o.destination_city ILIKE @pattern
			OR EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id AND i.item_name ILIKE @pattern)
		)`
	args := map[string]any{"pattern": query.Pattern()}

	return h.pageOrders(ctx, where, args, query.Page())
}

func (h DiscoveryQueriesHandler) pageOrders(
	ctx context.Context,
	where string,
	args map[string]any,
	page Page,
) (PagedResponse[OrderSummaryResponse], error) {
	var total int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM orders o`+where, args).
		Scan(&total).Error
	if err != nil {
		return PagedResponse[OrderSummaryResponse]{}, err
	}

	args["limit"] = page.Limit()
	args["offset"] = page.Offset()
	rows, err := h.db.WithContext(ctx).Raw(orderSummarySelect+where+`
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT @limit OFFSET @offset
	`, args).Rows()
	if err != nil {
		return PagedResponse[OrderSummaryResponse]{}, err
	}

	orders, err := collect(rows, scanOrderSummary)
	if err != nil {
		return PagedResponse[OrderSummaryResponse]{}, err
	}
	return newPagedResponse(orders, page, total), nil
}

// AvailablePickers returns users other than the orderer whose active journey
// equals the order route. Only the orderer may list them.
func (h DiscoveryQueriesHandler) AvailablePickers(
	ctx context.Context,
	query GetAvailablePickersQuery,
) (PagedResponse[AvailablePickerResponse], error) {
	if err := query.Validate(); err != nil {
		return PagedResponse[AvailablePickerResponse]{}, err
	}

	var ordererID uuid.UUID
	err := h.db.WithContext(ctx).
		Raw(`SELECT orderer_id FROM orders WHERE id = ?`, query.OrderID().Bytes()).
		Row().
		Scan(&ordererID)
	if errors.Is(err, sql.ErrNoRows) {
		return PagedResponse[AvailablePickerResponse]{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return PagedResponse[AvailablePickerResponse]{}, err
	}
	if ordererID != query.UserID().Bytes() {
		return PagedResponse[AvailablePickerResponse]{}, errs.NewAccessDeniedError(
			query.UserID().String(), "only the orderer can list pickers of an order",
		)
	}

	from := `
		FROM travel_journeys j
		JOIN orders o ON o.id = @order
		LEFT JOIN users u ON u.id = j.user_id
		WHERE` + routeMatch + `
		AND j.user_id <> o.orderer_id`
	args := map[string]any{"order": query.OrderID().Bytes()}

	var total int64
	if err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*)`+from, args).Scan(&total).Error; err != nil {
		return PagedResponse[AvailablePickerResponse]{}, err
	}

	page := query.Page()
	args["limit"] = page.Limit()
	args["offset"] = page.Offset()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(u.full_name, ''),
			u.avatar_url,
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
			j.created_at`+from+`
		ORDER BY j.created_at DESC, j.id DESC
		LIMIT @limit OFFSET @offset
	`, args).Rows()
	if err != nil {
		return PagedResponse[AvailablePickerResponse]{}, err
	}

	pickers, err := collect(rows, scanAvailablePicker)
	if err != nil {
		return PagedResponse[AvailablePickerResponse]{}, err
	}
	return newPagedResponse(pickers, page, total), nil
}

func scanAvailablePicker(rows *sql.Rows) (AvailablePickerResponse, error) {
	var (
		r                  AvailablePickerResponse
		departure, arrival sql.NullTime
	)
	err := rows.Scan(
		&r.Picker.FullName,
		&r.Picker.AvatarURL,
		&r.Journey.ID,
		&r.Journey.UserID,
		&r.Journey.DepartureCountry,
		&r.Journey.DepartureCity,
		&r.Journey.ArrivalCountry,
		&r.Journey.ArrivalCity,
		&departure,
		&arrival,
		&r.Journey.LuggageWeightCapacity,
		&r.Journey.IsActive,
		&r.Journey.CreatedAt,
	)
	if err != nil {
		return AvailablePickerResponse{}, err
	}
	r.Picker.ID = r.Journey.UserID
	r.Journey.DepartureDate = departure.Time.Format(dateLayout)
	r.Journey.ArrivalDate = arrival.Time.Format(dateLayout)
	r.Journey.CreatedAt = r.Journey.CreatedAt.UTC()
	return r, nil
}
