// Package ports defines the contracts between the pickup core and its infrastructure.
// Repositories persist aggregates; collaborators (chat rooms, proof storage, the
// notification publisher) are reached only through the interfaces declared here.
package ports

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their items.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. New items are inserted,
	// existing ones are left untouched. The update is conditional on the
	// version the aggregate was loaded with; a concurrent writer makes it fail
	// with errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CompleteExpiredDeliveries auto-confirms every Delivered order delivered
	// at or before deliveredBefore that is neither confirmed nor disputed.
	// It is a single conditional update and returns the affected row count;
	// a second run over the same data affects zero rows.
	//
	// Example:
	//   n, err := repo.CompleteExpiredDeliveries(ctx, now.Add(-48*time.Hour), now)
	CompleteExpiredDeliveries(ctx context.Context, deliveredBefore, now time.Time) (int64, error)
}
