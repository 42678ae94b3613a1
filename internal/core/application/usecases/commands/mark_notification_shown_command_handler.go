package commands

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/notification"
	"pickup/internal/pkg/errs"
)

// MarkNotificationShownCommandHandler sets the shown marker once; repeated
// calls keep the first timestamp and write nothing.
type MarkNotificationShownCommandHandler struct {
	uowFactory NotificationUoWFactory
	clock      func() time.Time
}

func NewMarkNotificationShownCommandHandler(
	uowFactory NotificationUoWFactory,
	clock func() time.Time,
) MarkNotificationShownCommandHandler {
	return MarkNotificationShownCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h MarkNotificationShownCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationShownCommand,
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

	if !n.MarkShown(h.clock()) {
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
