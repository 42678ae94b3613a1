package ports

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
// The table doubles as the outbox read by the dispatcher.
type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error

	// Update persists the read and shown markers.
	Update(ctx context.Context, n *notification.Notification) error

	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// ListUndispatched returns up to limit notifications not yet handed to the
	// publisher, oldest first. Rows are locked with SKIP LOCKED so concurrent
	// dispatchers never pick the same notification.
	ListUndispatched(ctx context.Context, limit int) ([]*notification.Notification, error)

	// MarkDispatched stamps dispatched_at on the given notifications.
	MarkDispatched(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
