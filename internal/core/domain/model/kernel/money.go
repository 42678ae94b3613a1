package kernel

import (
	"fmt"

	"pickup/internal/pkg/errs"
	"pickup/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits stored for every amount.
const MoneyScale = 2

var (
	// ErrMoneyIsNotConstructed is returned for zero-value Money.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or ParseMoney")

	// MinOfferAmount and MaxOfferAmount bound every offer and reward.
	MinOfferAmount = decimal.RequireFromString("0.01")
	MaxOfferAmount = decimal.RequireFromString("999999.99")
)

// Money is a non-negative amount with at most MoneyScale fractional digits.
// Amounts are never represented as floating point.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney rejects negative values and values with more than two
// fractional digits. Trailing zeros such as "10.500" are accepted.
func NewMoney(amount decimal.Decimal) (Money, error) {
	scaled := amount.Round(MoneyScale)
	if !scaled.Equal(amount) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), MoneyScale))
	}
	if scaled.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s must not be negative", scaled.StringFixed(MoneyScale)))
	}
	return Money{amount: scaled, guard: guard.NewConstructorGuard()}, nil
}

// ZeroMoney is the reward of a freshly created order.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// ParseMoney parses a decimal string such as "49.90".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal number", s))
	}
	return NewMoney(d)
}

// NewOfferAmount builds Money that satisfies the offer bounds [0.01, 999999.99].
func NewOfferAmount(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount",
			amount.String(), MinOfferAmount.StringFixed(MoneyScale), MaxOfferAmount.StringFixed(MoneyScale))
	}
	m, err := NewMoney(amount)
	if err != nil {
		return Money{}, err
	}
	if err = m.ValidateOfferBounds(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// Validate checks the value was built by a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// ValidateOfferBounds reports whether the amount may be offered.
func (m Money) ValidateOfferBounds() error {
	if m.amount.LessThan(MinOfferAmount) || m.amount.GreaterThan(MaxOfferAmount) {
		return errs.NewValueIsOutOfRangeError("amount",
			m.String(), MinOfferAmount.StringFixed(MoneyScale), MaxOfferAmount.StringFixed(MoneyScale))
	}
	return nil
}

// Decimal returns the underlying fixed-point amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts numerically.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with exactly two digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
