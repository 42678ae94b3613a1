// Package jobs provides scheduled background tasks for the pickup service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field format with seconds.
//
// # Available Jobs
//
// 1. AutoConfirmDeliveriesJob - completes delivered orders whose confirmation window elapsed
// 2. NotificationDispatchJob - publishes undispatched notifications to Kafka
//
// # Usage
//
//	manager := jobs.NewJobManager(logger,
//		jobs.NewAutoConfirmDeliveriesJob(autoConfirmHandler, "0 */5 * * * *", logger),
//		jobs.NewNotificationDispatchJob(dispatchHandler, "*/10 * * * * *", 100, logger),
//	)
//
//	if err := manager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// Jobs never propagate errors: a failed cycle is logged and the next one
// runs on schedule. A cycle that is still running when its next tick fires
// is skipped.
package jobs
