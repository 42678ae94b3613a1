package commands

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/ports"
	"pickup/internal/pkg/metrics"
)

// DispatchNotificationsCommandHandler drains the notification outbox into
// the publisher.
//
// The batch is locked for the duration of the transaction and stamped as
// dispatched only after the publisher accepted it. A crash between publish
// and commit re-publishes the batch on the next run, so consumers must
// tolerate duplicates keyed by notification id.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	publisher  ports.NotificationPublisher
	clock      func() time.Time
}

func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	publisher ports.NotificationPublisher,
	clock func() time.Time,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle publishes up to one batch and returns how many notifications were sent.
func (h DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()

	batch, err := repo.ListUndispatched(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, batch); err != nil {
		metrics.NotificationDispatchErrors.Inc()
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(batch))
	for _, n := range batch {
		ids = append(ids, n.ID())
	}
	if err = repo.MarkDispatched(ctx, ids, h.clock()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	metrics.NotificationsDispatched.Add(float64(len(batch)))
	return len(batch), nil
}
