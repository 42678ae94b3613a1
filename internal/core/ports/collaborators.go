package ports

import (
	"context"
	"io"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
)

// ChatRoomRepository is the chat collaborator: it only guarantees a room
// exists for an order and its two participants. Messages live elsewhere.
type ChatRoomRepository interface {
	// Ensure creates the room for the order unless it already exists.
	Ensure(ctx context.Context, orderID, ordererID, pickerID kernel.UUID) error
}

// ProofStorage stores proof-of-delivery uploads and returns a reference
// suitable for saving on the order.
type ProofStorage interface {
	Save(ctx context.Context, orderID kernel.UUID, filename string, content io.Reader) (string, error)
}

// NotificationPublisher hands notifications to downstream delivery
// (push, email). Publishing is at-least-once.
type NotificationPublisher interface {
	Publish(ctx context.Context, notifications []*notification.Notification) error
}
