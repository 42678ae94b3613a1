// Package notifier is the notification emitter of the pickup core. Command
// handlers call it after their transaction commits; a notification that cannot
// be stored is logged and counted but never fails the state transition that
// produced it.
package notifier

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
	"pickup/internal/core/ports"
	"pickup/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Draft is a notification that has not been persisted yet.
type Draft struct {
	RecipientID kernel.UUID
	Type        notification.Type
	EntityID    *kernel.UUID
	Title       string
	Message     string
	Data        map[string]any
}

// Emitter persists notification drafts on a best-effort basis.
//
// Example:
//
//	emitter := notifier.NewEmitter(repo, time.Now, logger)
//	emitter.Emit(ctx, notifier.OrderDelivered(o))
type Emitter struct {
	repo   ports.NotificationRepository
	clock  func() time.Time
	logger *zap.Logger
}

func NewEmitter(repo ports.NotificationRepository, clock func() time.Time, logger *zap.Logger) *Emitter {
	return &Emitter{
		repo:   repo,
		clock:  clock,
		logger: logger.With(zap.String("component", "notification_emitter")),
	}
}

// Emit stores every draft independently. Cancellation of ctx by the caller
// does not abort emission.
func (e *Emitter) Emit(ctx context.Context, drafts ...Draft) {
	ctx = context.WithoutCancel(ctx)
	for _, d := range drafts {
		n, err := notification.NewNotification(
			kernel.NewUUID(), d.RecipientID, d.Type, d.EntityID, d.Title, d.Message, d.Data, e.clock(),
		)
		if err == nil {
			err = e.repo.Add(ctx, n)
		}
		if err != nil {
			metrics.NotificationEmitErrors.Inc()
			e.logger.Warn("failed to emit notification",
				zap.String("type", string(d.Type)),
				zap.String("recipient_id", d.RecipientID.String()),
				zap.Error(err),
			)
			continue
		}
		metrics.NotificationsEmitted.WithLabelValues(string(d.Type)).Inc()
	}
}
