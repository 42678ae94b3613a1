package guard_test

import (
	"errors"
	"testing"

	"pickup/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Offer must be created via NewOffer")

	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero value falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})

	t.Run("copies keep their state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, copied.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type route struct {
		from, to string
		guard    guard.ConstructorGuard
	}
	errRouteNotConstructed := errors.New("route must be created via newRoute")

	newRoute := func(from, to string) (route, error) {
		if from == "" || to == "" {
			return route{}, errors.New("both ends are required")
		}
		return route{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
	}

	r, err := newRoute("Paris", "Berlin")
	require.NoError(t, err)
	require.NoError(t, r.guard.Validate(errRouteNotConstructed))

	var zero route
	assert.Equal(t, errRouteNotConstructed, zero.guard.Validate(errRouteNotConstructed))

	_, err = newRoute("", "Berlin")
	require.Error(t, err)
}
