package ports

import (
	"context"

	"pickup/internal/core/domain/model/journey"
	"pickup/internal/core/domain/model/kernel"
)

// JourneyRepository defines the persistence contract for travel journeys.
type JourneyRepository interface {
	Add(ctx context.Context, j *journey.Journey) error

	// DeactivateAllForUser clears the active flag on every journey of the user.
	DeactivateAllForUser(ctx context.Context, userID kernel.UUID) error

	// ListActiveByRoute returns active journeys whose route matches
	// case-insensitively.
	ListActiveByRoute(ctx context.Context, route kernel.Route) ([]*journey.Journey, error)
}
