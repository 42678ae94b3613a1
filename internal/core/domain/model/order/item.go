package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"
	"pickup/internal/pkg/guard"
)

const (
	maxItemNameLength  = 255
	maxWeightLength    = 50
	maxNotesLength     = 1000
	maxStoreLinkLength = 500
)

var (
	// ErrItemIsNotConstructed is returned when an Item bypassed NewItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ItemDetails carries the user supplied attributes of an Item.
type ItemDetails struct {
	Name          string
	Weight        string
	Price         kernel.Money
	Currency      string
	Quantity      int
	SpecialNotes  string
	StoreLink     string
	ProductImages []string
}

// Item is an article inside an order. It is immutable once appended.
type Item struct {
	id      kernel.UUID
	details ItemDetails
	guard   guard.ConstructorGuard
}

// NewItem validates the details of an item:
//   - name is required, at most 255 characters
//   - price must be at least 0.01
//   - currency, when present, is a three letter code (normalized to upper case)
//   - quantity defaults to 1 and must be positive
//   - weight, notes and store link are bounded free text
func NewItem(id kernel.UUID, details ItemDetails) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	details.Name = strings.TrimSpace(details.Name)
	details.Currency = strings.ToUpper(strings.TrimSpace(details.Currency))
	if details.Quantity == 0 {
		details.Quantity = 1
	}

	if err := errors.Join(
		id.Validate(),
		validateText("item_name", details.Name, maxItemNameLength, true),
		validateText("weight", details.Weight, maxWeightLength, false),
		validateText("special_notes", details.SpecialNotes, maxNotesLength, false),
		validateText("store_link", details.StoreLink, maxStoreLinkLength, false),
		validatePrice(details.Price),
		ValidateCurrency(details.Currency),
		validateQuantity(details.Quantity),
	); err != nil {
		return Item{}, err
	}

	if details.ProductImages == nil {
		details.ProductImages = []string{}
	}
	item.id = id
	item.details = details
	return item, nil
}

// RestoreItem rebuilds an item loaded from storage.
func RestoreItem(id kernel.UUID, details ItemDetails) (Item, error) {
	return NewItem(id, details)
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ID() kernel.UUID {
	return i.id
}

// Details returns a copy of the item attributes.
func (i Item) Details() ItemDetails {
	d := i.details
	d.ProductImages = append([]string(nil), i.details.ProductImages...)
	return d
}

// ValidateCurrency accepts an empty code or three upper case letters.
func ValidateCurrency(code string) error {
	if code == "" || currencyPattern.MatchString(code) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a three letter code", code))
}

func validateText(name, value string, limit int, required bool) error {
	if required && value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if n := utf8.RuneCountInString(value); n > limit {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d characters exceeds the limit of %d", n, limit))
	}
	return nil
}

func validatePrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	if price.Decimal().LessThan(kernel.MinOfferAmount) {
		return errs.NewValueIsOutOfRangeError("price", price.String(), kernel.MinOfferAmount.String(), "-")
	}
	return nil
}

func validateQuantity(q int) error {
	if q < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", q, 1, "-")
	}
	return nil
}
