package commands

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/notification"
	"pickup/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler sets the read marker once. Notifications
// of other users are reported as not found.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	clock      func() time.Time
}

func NewMarkNotificationReadCommandHandler(
	uowFactory NotificationUoWFactory,
	clock func() time.Time,
) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h MarkNotificationReadCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationReadCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()

	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}
	if !n.IsOwnedBy(cmd.UserID()) {
		return nil, errs.NewObjectNotFoundError("notification", cmd.NotificationID().String())
	}

	if !n.MarkRead(h.clock()) {
		return n, nil
	}

	if err = repo.Update(ctx, n); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return n, nil
}
