package queries

import (
	"context"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"

	"gorm.io/gorm"
)

// OfferQueriesHandler serves the read side of the offer ledger.
//
// Example:
//
//	handler := NewOfferQueriesHandler(db)
//	query, _ := NewGetOfferHistoryQuery(orderID, 1, 0)
//	history, err := handler.History(ctx, query)
//	for _, o := range history.Data {
//	    fmt.Println(o.OfferType, o.OfferAmount, o.OfferedBy.FullName)
//	}
type OfferQueriesHandler struct {
	db *gorm.DB
}

func NewOfferQueriesHandler(db *gorm.DB) OfferQueriesHandler {
	return OfferQueriesHandler{db: db}
}

// History returns the offers of an existing order in creation order.
func (h OfferQueriesHandler) History(
	ctx context.Context,
	query GetOfferHistoryQuery,
) (PagedResponse[OfferResponse], error) {
	if err := query.Validate(); err != nil {
		return PagedResponse[OfferResponse]{}, err
	}
	if err := h.ensureOrder(ctx, query.OrderID()); err != nil {
		return PagedResponse[OfferResponse]{}, err
	}

	var total int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM offers WHERE order_id = ?`, query.OrderID().Bytes()).
		Scan(&total).Error
	if err != nil {
		return PagedResponse[OfferResponse]{}, err
	}

	page := query.Page()
	rows, err := h.db.WithContext(ctx).Raw(offerSelect+`
		WHERE f.order_id = ?
		ORDER BY f.created_at ASC, f.id ASC
		LIMIT ? OFFSET ?
	`, query.OrderID().Bytes(), page.Limit(), page.Offset()).Rows()
	if err != nil {
		return PagedResponse[OfferResponse]{}, err
	}

	offers, err := collect(rows, scanOffer)
	if err != nil {
		return PagedResponse[OfferResponse]{}, err
	}
	return newPagedResponse(offers, page, total), nil
}

// Current returns the latest outstanding offer, or an ObjectNotFoundError
// when the negotiation has none.
func (h OfferQueriesHandler) Current(ctx context.Context, query GetCurrentOfferQuery) (*OfferResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(offerSelect+`
		WHERE f.order_id = ? AND f.status IN ('PENDING', 'ACCEPTED')
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT 1
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}

	offers, err := collect(rows, scanOffer)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, errs.NewObjectNotFoundError("current offer", query.OrderID().String())
	}
	return &offers[0], nil
}

// Pending returns the PENDING offers of the order, newest first.
func (h OfferQueriesHandler) Pending(ctx context.Context, query GetPendingOffersQuery) ([]OfferResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(offerSelect+`
		WHERE f.order_id = ? AND f.status = 'PENDING'
		ORDER BY f.created_at DESC, f.id DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOffer)
}

func (h OfferQueriesHandler) ensureOrder(ctx context.Context, orderID kernel.UUID) error {
	var count int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM orders WHERE id = ?`, orderID.Bytes()).
		Scan(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}
	return nil
}
