package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command execution.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork spans one database transaction over every repository the
// negotiation, delivery and notification commands touch. Callers Begin, defer
// Rollback and Commit explicitly; Rollback after Commit returns an error
// that deferred calls ignore.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Repositories are bound to the transaction opened by Begin.

	OrderRepository() OrderRepository
	OfferRepository() OfferRepository
	JourneyRepository() JourneyRepository
	NotificationRepository() NotificationRepository
	ChatRoomRepository() ChatRoomRepository
}
