package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"pickup/internal/pkg/errs"
	"pickup/internal/pkg/guard"
)

// MaxPlaceFieldLength bounds country and city names.
const MaxPlaceFieldLength = 100

var (
	ErrPlaceIsNotConstructed = errs.NewValueIsRequiredError("Place must be created via NewPlace")
	ErrRouteIsNotConstructed = errs.NewValueIsRequiredError("Route must be created via NewRoute")
)

// Place is a country and city pair. Names keep the casing they were entered
// with; comparisons are case-insensitive.
type Place struct {
	country string
	city    string
	guard   guard.ConstructorGuard
}

// NewPlace trims both names and requires them to be 1..100 characters long.
func NewPlace(country, city string) (Place, error) {
	country = strings.TrimSpace(country)
	city = strings.TrimSpace(city)

	if err := validatePlaceField("country", country); err != nil {
		return Place{}, err
	}
	if err := validatePlaceField("city", city); err != nil {
		return Place{}, err
	}

	return Place{country: country, city: city, guard: guard.NewConstructorGuard()}, nil
}

func validatePlaceField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if n := utf8.RuneCountInString(value); n > MaxPlaceFieldLength {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%d characters exceeds the limit of %d", n, MaxPlaceFieldLength))
	}
	return nil
}

func (p Place) Validate() error {
	return p.guard.Validate(ErrPlaceIsNotConstructed)
}

func (p Place) Country() string {
	return p.country
}

func (p Place) City() string {
	return p.city
}

// Matches compares country and city case-insensitively.
func (p Place) Matches(other Place) bool {
	return strings.EqualFold(p.country, other.country) && strings.EqualFold(p.city, other.city)
}

func (p Place) String() string {
	return p.city + ", " + p.country
}

// Route is the origin→destination leg of an order or a travel journey.
type Route struct {
	origin      Place
	destination Place
	guard       guard.ConstructorGuard
}

// NewRoute validates both ends of the leg.
func NewRoute(origin, destination Place) (Route, error) {
	if err := errors.Join(origin.Validate(), destination.Validate()); err != nil {
		return Route{}, err
	}
	return Route{origin: origin, destination: destination, guard: guard.NewConstructorGuard()}, nil
}

// MustNewRoute builds a route from raw names and panics on invalid input.
// Intended for tests and fixtures.
func MustNewRoute(fromCountry, fromCity, toCountry, toCity string) Route {
	origin, err := NewPlace(fromCountry, fromCity)
	if err != nil {
		panic(err)
	}
	destination, err := NewPlace(toCountry, toCity)
	if err != nil {
		panic(err)
	}
	r, err := NewRoute(origin, destination)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r Route) Origin() Place {
	return r.origin
}

func (r Route) Destination() Place {
	return r.destination
}

// Matches reports whether both legs are equal ignoring case. Matching is
// exact-string, never geographic.
func (r Route) Matches(other Route) bool {
	return r.origin.Matches(other.origin) && r.destination.Matches(other.destination)
}

func (r Route) String() string {
	return r.origin.String() + " → " + r.destination.String()
}
