package commands

import (
	"errors"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/guard"
)

var ErrMarkNotificationShownCommandIsNotConstructed = errors.New(
	"MarkNotificationShownCommand must be created via NewMarkNotificationShownCommand constructor",
)

// MarkNotificationShownCommand records that the notification pop-up was displayed.
type MarkNotificationShownCommand struct {
	notificationID kernel.UUID
	userID         kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkNotificationShownCommand(notificationID, userID kernel.UUID) (MarkNotificationShownCommand, error) {
	if err := errors.Join(notificationID.Validate(), userID.Validate()); err != nil {
		return MarkNotificationShownCommand{}, err
	}

	return MarkNotificationShownCommand{
		notificationID: notificationID,
		userID:         userID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationShownCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationShownCommandIsNotConstructed)
}

func (c MarkNotificationShownCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

func (c MarkNotificationShownCommand) UserID() kernel.UUID {
	return c.userID
}
