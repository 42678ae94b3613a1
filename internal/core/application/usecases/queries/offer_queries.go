package queries

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"
)

// DefaultOfferHistoryLimit is the page size of the offer history.
const DefaultOfferHistoryLimit = 50

var (
	ErrGetOfferHistoryQueryIsNotConstructed = errors.New(
		"GetOfferHistoryQuery must be created via NewGetOfferHistoryQuery constructor",
	)
	ErrGetCurrentOfferQueryIsNotConstructed = errors.New(
		"GetCurrentOfferQuery must be created via NewGetCurrentOfferQuery constructor",
	)
	ErrGetPendingOffersQueryIsNotConstructed = errors.New(
		"GetPendingOffersQuery must be created via NewGetPendingOffersQuery constructor",
	)
)

// GetOfferHistoryQuery pages through the negotiation of an order, oldest
// offer first.
type GetOfferHistoryQuery struct {
	orderID kernel.UUID
	page    Page

	guard guard.ConstructorGuard
}

func NewGetOfferHistoryQuery(orderID kernel.UUID, page, limit int) (GetOfferHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOfferHistoryQuery{}, err
	}
	return GetOfferHistoryQuery{
		orderID: orderID,
		page:    NewPage(page, limit, DefaultOfferHistoryLimit),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOfferHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOfferHistoryQueryIsNotConstructed)
}

func (q GetOfferHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOfferHistoryQuery) Page() Page {
	return q.page
}

// GetCurrentOfferQuery reads the most recent PENDING or ACCEPTED offer.
type GetCurrentOfferQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCurrentOfferQuery(orderID kernel.UUID) (GetCurrentOfferQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetCurrentOfferQuery{}, err
	}
	return GetCurrentOfferQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCurrentOfferQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentOfferQueryIsNotConstructed)
}

func (q GetCurrentOfferQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPendingOffersQuery lists PENDING offers of an order, newest first.
type GetPendingOffersQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPendingOffersQuery(orderID kernel.UUID) (GetPendingOffersQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPendingOffersQuery{}, err
	}
	return GetPendingOffersQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingOffersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOffersQueryIsNotConstructed)
}

func (q GetPendingOffersQuery) OrderID() kernel.UUID {
	return q.orderID
}
