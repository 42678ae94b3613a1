package ports

import (
	"context"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/offer"
)

// OfferRepository defines the persistence contract for negotiation offers.
// Offers are never deleted; only their status changes.
type OfferRepository interface {
	// Add persists a new offer. Violating the one-accepted-per-order or
	// one-outstanding-counter-per-picker constraints yields errs.ErrConflict.
	Add(ctx context.Context, o *offer.Offer) error

	// Update persists a status change, conditional on the loaded version.
	Update(ctx context.Context, o *offer.Offer) error

	// Get retrieves an offer by identifier.
	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// ListByOrder returns every offer of the order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error)
}
