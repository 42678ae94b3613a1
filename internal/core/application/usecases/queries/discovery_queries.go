package queries

import (
	"errors"
	"strings"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"
	"pickup/internal/pkg/guard"
)

// DefaultDiscoveryLimit is the page size of discovery feeds.
const DefaultDiscoveryLimit = 20

var (
	ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
		"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
	)
	ErrSearchOrdersQueryIsNotConstructed = errors.New(
		"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
	)
	ErrGetAvailablePickersQueryIsNotConstructed = errors.New(
		"GetAvailablePickersQuery must be created via NewGetAvailablePickersQuery constructor",
	)
)

// GetAvailableOrdersQuery is the feed of orders matching the picker's active
// journey route.
type GetAvailableOrdersQuery struct {
	pickerID kernel.UUID
	page     Page

	guard guard.ConstructorGuard
}

func NewGetAvailableOrdersQuery(pickerID kernel.UUID, page, limit int) (GetAvailableOrdersQuery, error) {
	if err := pickerID.Validate(); err != nil {
		return GetAvailableOrdersQuery{}, err
	}
	return GetAvailableOrdersQuery{
		pickerID: pickerID,
		page:     NewPage(page, limit, DefaultDiscoveryLimit),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

func (q GetAvailableOrdersQuery) PickerID() kernel.UUID {
	return q.pickerID
}

func (q GetAvailableOrdersQuery) Page() Page {
	return q.page
}

// SearchOrdersQuery is a case-insensitive substring search over item names
// and route fields of available orders.
type SearchOrdersQuery struct {
	userID kernel.UUID
	text   string
	page   Page

	guard guard.ConstructorGuard
}

func NewSearchOrdersQuery(userID kernel.UUID, text string, page, limit int) (SearchOrdersQuery, error) {
	text = strings.TrimSpace(text)
	var textErr error
	if text == "" {
		textErr = errs.NewValueIsRequiredError("q")
	}
	if err := errors.Join(userID.Validate(), textErr); err != nil {
		return SearchOrdersQuery{}, err
	}
	return SearchOrdersQuery{
		userID: userID,
		text:   text,
		page:   NewPage(page, limit, DefaultDiscoveryLimit),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

func (q SearchOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

func (q SearchOrdersQuery) Text() string {
	return q.text
}

// Pattern is the ILIKE pattern of the search text with wildcards escaped.
func (q SearchOrdersQuery) Pattern() string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q.text)
	return "%" + escaped + "%"
}

func (q SearchOrdersQuery) Page() Page {
	return q.page
}

// GetAvailablePickersQuery lists pickers whose active journey matches the
// order route. Only the orderer may run it.
type GetAvailablePickersQuery struct {
	orderID kernel.UUID
	userID  kernel.UUID
	page    Page

	guard guard.ConstructorGuard
}

func NewGetAvailablePickersQuery(orderID, userID kernel.UUID, page, limit int) (GetAvailablePickersQuery, error) {
	if err := errors.Join(orderID.Validate(), userID.Validate()); err != nil {
		return GetAvailablePickersQuery{}, err
	}
	return GetAvailablePickersQuery{
		orderID: orderID,
		userID:  userID,
		page:    NewPage(page, limit, DefaultDiscoveryLimit),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetAvailablePickersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailablePickersQueryIsNotConstructed)
}

func (q GetAvailablePickersQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetAvailablePickersQuery) UserID() kernel.UUID {
	return q.userID
}

func (q GetAvailablePickersQuery) Page() Page {
	return q.page
}

// AvailablePickerResponse is a picker travelling along an order route.
type AvailablePickerResponse struct {
	Picker  UserResponse    `json:"picker"`
	Journey JourneyResponse `json:"journey"`
}
