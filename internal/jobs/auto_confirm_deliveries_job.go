package jobs

import (
	"context"

	"pickup/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultAutoConfirmSchedule runs the sweep every five minutes.
const DefaultAutoConfirmSchedule = "0 */5 * * * *"

type autoConfirmHandler interface {
	Handle(ctx context.Context, cmd commands.AutoConfirmDeliveriesCommand) (int64, error)
}

// AutoConfirmDeliveriesJob completes delivered orders the orderer neither
// confirmed nor disputed within the confirmation window.
type AutoConfirmDeliveriesJob struct {
	handler  autoConfirmHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewAutoConfirmDeliveriesJob(handler autoConfirmHandler, schedule string, logger *zap.Logger) *AutoConfirmDeliveriesJob {
	if schedule == "" {
		schedule = DefaultAutoConfirmSchedule
	}
	return &AutoConfirmDeliveriesJob{
		handler:  handler,
		schedule: schedule,
		cron:     newCron(),
		logger:   logger.With(zap.String("component", "auto_confirm_deliveries_job")),
	}
}

func (j *AutoConfirmDeliveriesJob) Name() string {
	return "auto confirm deliveries"
}

func (j *AutoConfirmDeliveriesJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Auto confirm job started", zap.String("schedule", j.schedule))
	return nil
}

// Run executes a single sweep.
func (j *AutoConfirmDeliveriesJob) Run(ctx context.Context) {
	completed, err := j.handler.Handle(ctx, commands.NewAutoConfirmDeliveriesCommand())
	if err != nil {
		j.logger.Error("Auto confirm sweep failed", zap.Error(err))
		return
	}
	if completed > 0 {
		j.logger.Info("Deliveries auto confirmed", zap.Int64("count", completed))
	}
}

func (j *AutoConfirmDeliveriesJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Auto confirm job stopped")
}
