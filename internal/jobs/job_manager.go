package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a scheduled task managed by JobManager.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  *zap.Logger
}

// NewJobManager creates a job manager. Nil jobs are skipped so optional
// jobs can be passed unconditionally.
func NewJobManager(logger *zap.Logger, jobs ...Job) *JobManager {
	manager := &JobManager{logger: logger}
	for _, job := range jobs {
		if job != nil && !isNilJob(job) {
			manager.jobs = append(manager.jobs, job)
		}
	}
	return manager
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs already started are stopped.
func (jm *JobManager) StartAll() error {
	for _, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
		jm.started = append(jm.started, job)
	}
	jm.logger.Info("Jobs started", zap.Int("count", len(jm.started)))
	return nil
}

// StopAll stops started jobs in reverse order and waits for running cycles.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}

func isNilJob(job Job) bool {
	switch j := job.(type) {
	case *AutoConfirmDeliveriesJob:
		return j == nil
	case *NotificationDispatchJob:
		return j == nil
	default:
		return false
	}
}

func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}
