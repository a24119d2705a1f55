// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. BatchSchedulingJob - drains batches queued through POST /api/v1/batches,
// pricing and scheduling each one in its own transaction
//
// # Usage
//
//	jobManager := jobs.NewJobManager(scheduleBatchHandler, cfg.BatchSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The default cron expression "* * * * * *" runs the job every second. A tick
// keeps pulling batches until the queue is empty, so a burst of submissions
// does not wait one second per batch.
//
// # Error Handling
//
// An empty queue (commands.ErrNoBatchFound) ends the tick quietly. Any other
// error is logged and ends the tick; the failed batch stays Created and is
// retried on the next tick.
package jobs
