package jobs

import (
	"context"

	"pickup/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultDispatchSchedule  = "*/10 * * * * *"
	DefaultDispatchBatchSize = 100
)

type dispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (int, error)
}

// NotificationDispatchJob drains the notification outbox in batches.
type NotificationDispatchJob struct {
	handler   dispatchHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewNotificationDispatchJob(
	handler dispatchHandler,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) *NotificationDispatchJob {
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}
	if batchSize <= 0 {
		batchSize = DefaultDispatchBatchSize
	}
	return &NotificationDispatchJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      newCron(),
		logger:    logger.With(zap.String("component", "notification_dispatch_job")),
	}
}

func (j *NotificationDispatchJob) Name() string {
	return "notification dispatch"
}

func (j *NotificationDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Notification dispatch job started",
		zap.String("schedule", j.schedule), zap.Int("batch_size", j.batchSize))
	return nil
}

// Run publishes batches until the outbox is empty or a batch fails.
func (j *NotificationDispatchJob) Run(ctx context.Context) {
	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.Error("Invalid dispatch command", zap.Error(err))
		return
	}

	total := 0
	for {
		sent, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error("Notification dispatch failed", zap.Error(err), zap.Int("dispatched", total))
			return
		}
		total += sent
		if sent < j.batchSize {
			break
		}
	}
	if total > 0 {
		j.logger.Info("Notifications dispatched", zap.Int("count", total))
	}
}

func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Notification dispatch job stopped")
}
