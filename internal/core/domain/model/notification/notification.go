// Package notification models in-app notification records addressed to a
// single recipient. The core only creates them and flips the read and shown
// flags; outbound push or email delivery happens downstream.
package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"
)

// Type is the event kind a notification reports.
type Type string

const (
	NewOrderAvailable    Type = "NEW_ORDER_AVAILABLE"
	OrderAccepted        Type = "ORDER_ACCEPTED"
	OrderCancelled       Type = "ORDER_CANCELLED"
	OrderDelivered       Type = "ORDER_DELIVERED"
	CounterOfferReceived Type = "COUNTER_OFFER_RECEIVED"
	CounterOfferAccepted Type = "COUNTER_OFFER_ACCEPTED"
	PaymentConfirmed     Type = "PAYMENT_CONFIRMED"
)

func (t Type) Validate() error {
	switch t {
	case NewOrderAvailable, OrderAccepted, OrderCancelled, OrderDelivered,
		CounterOfferReceived, CounterOfferAccepted, PaymentConfirmed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a notification type", string(t)))
	}
}

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is an event record owned by its recipient.
type Notification struct {
	id           kernel.UUID
	recipientID  kernel.UUID
	kind         Type
	entityID     *kernel.UUID
	title        string
	message      string
	data         map[string]any
	readAt       *time.Time
	shownAt      *time.Time
	dispatchedAt *time.Time
	createdAt    time.Time

	isConstructed bool
}

// NewNotification creates an unread, never shown notification.
func NewNotification(
	id, recipientID kernel.UUID,
	kind Type,
	entityID *kernel.UUID,
	title, message string,
	data map[string]any,
	now time.Time,
) (*Notification, error) {
	title = strings.TrimSpace(title)
	var titleErr error
	if title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if err := errors.Join(id.Validate(), recipientID.Validate(), kind.Validate(), titleErr); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}

	return &Notification{
		id:            id,
		recipientID:   recipientID,
		kind:          kind,
		entityID:      entityID,
		title:         title,
		message:       message,
		data:          data,
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreNotification rebuilds a stored notification.
func RestoreNotification(
	id, recipientID kernel.UUID,
	kind Type,
	entityID *kernel.UUID,
	title, message string,
	data map[string]any,
	readAt, shownAt, dispatchedAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, recipientID, kind, entityID, title, message, data, createdAt)
	if err != nil {
		return nil, err
	}
	n.createdAt = createdAt
	n.readAt = readAt
	n.shownAt = shownAt
	n.dispatchedAt = dispatchedAt
	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

func (n *Notification) Type() Type {
	return n.kind
}

func (n *Notification) EntityID() *kernel.UUID {
	return n.entityID
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) Message() string {
	return n.message
}

// Data returns the structured payload. Callers must not modify it.
func (n *Notification) Data() map[string]any {
	return n.data
}

func (n *Notification) IsRead() bool {
	return n.readAt != nil
}

func (n *Notification) ReadAt() *time.Time {
	return n.readAt
}

func (n *Notification) ShownAt() *time.Time {
	return n.shownAt
}

func (n *Notification) DispatchedAt() *time.Time {
	return n.dispatchedAt
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// IsOwnedBy reports whether userID is the recipient.
func (n *Notification) IsOwnedBy(userID kernel.UUID) bool {
	return n.recipientID.IsEqual(userID)
}

// MarkRead sets the read timestamp once and reports whether it changed.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.readAt != nil {
		return false
	}
	t := now.UTC()
	n.readAt = &t
	return true
}

// MarkShown records the first pop-up display. Later calls keep the original timestamp.
func (n *Notification) MarkShown(now time.Time) bool {
	if n.shownAt != nil {
		return false
	}
	t := now.UTC()
	n.shownAt = &t
	return true
}
