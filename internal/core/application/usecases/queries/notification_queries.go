package queries

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"
)

const (
	// DefaultNotificationLimit is the page size of the inbox.
	DefaultNotificationLimit = 20

	// PendingNotificationsCap bounds the pending notifications returned at once.
	PendingNotificationsCap = 50
)

var (
	ErrListNotificationsQueryIsNotConstructed = errors.New(
		"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
	)
	ErrRecipientQueryIsNotConstructed = errors.New(
		"RecipientQuery must be created via NewRecipientQuery constructor",
	)
)

// ListNotificationsQuery pages through the inbox of a user, newest first.
type ListNotificationsQuery struct {
	userID kernel.UUID
	page   Page

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(userID kernel.UUID, page, limit int) (ListNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{
		userID: userID,
		page:   NewPage(page, limit, DefaultNotificationLimit),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

func (q ListNotificationsQuery) Page() Page {
	return q.page
}

// RecipientQuery addresses the data owned by one user: unread count,
// pending notifications and active journeys.
type RecipientQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRecipientQuery(userID kernel.UUID) (RecipientQuery, error) {
	if err := userID.Validate(); err != nil {
		return RecipientQuery{}, err
	}
	return RecipientQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q RecipientQuery) Validate() error {
	return q.guard.Validate(ErrRecipientQueryIsNotConstructed)
}

func (q RecipientQuery) UserID() kernel.UUID {
	return q.userID
}

// UnreadCountResponse is the unread badge of the inbox.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
