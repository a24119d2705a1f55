package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"fleetdelivery/internal/core/application/usecases/commands"
)

// DefaultBatchSchedule runs the job every second.
const DefaultBatchSchedule = "* * * * * *"

// maxBatchesPerTick bounds how many queued batches one tick takes, whether
// they end up Scheduled or Failed.
const maxBatchesPerTick = 32

type batchScheduler interface {
	Handle(ctx context.Context, cmd commands.ScheduleBatchCommand) error
}

// BatchSchedulingJob drains Created batches through ScheduleBatchCommandHandler.
type BatchSchedulingJob struct {
	handler  batchScheduler
	cronSpec string
	cron     *cron.Cron
	logger   *slog.Logger
	mu       sync.Mutex
	draining bool
}

// NewBatchSchedulingJob creates the job. spec is a six-field cron
// expression; empty means DefaultBatchSchedule.
func NewBatchSchedulingJob(handler batchScheduler, spec string, logger *slog.Logger) *BatchSchedulingJob {
	if spec == "" {
		spec = DefaultBatchSchedule
	}
	return &BatchSchedulingJob{
		handler:  handler,
		cronSpec: spec,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "batch_scheduling_job"),
	}
}

// Start registers the tick and starts the cron runner.
func (j *BatchSchedulingJob) Start() error {
	if _, err := j.cron.AddFunc(j.cronSpec, func() { j.Tick(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Batch scheduling job started", "schedule", j.cronSpec)
	return nil
}

// Stop stops the cron runner and waits for a running tick to finish.
func (j *BatchSchedulingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Batch scheduling job stopped")
}

// Tick schedules queued batches until the queue is empty, a storage error
// occurs or maxBatchesPerTick is reached. Batches stored as Failed are logged
// and skipped. Overlapping ticks return immediately. It returns the number
// of batches scheduled.
func (j *BatchSchedulingJob) Tick(ctx context.Context) int {
	j.mu.Lock()
	if j.draining {
		j.mu.Unlock()
		return 0
	}
	j.draining = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		j.draining = false
		j.mu.Unlock()
	}()

	scheduled := 0
	for range maxBatchesPerTick {
		err := j.handler.Handle(ctx, commands.NewScheduleBatchCommand())
		if errors.Is(err, commands.ErrNoBatchFound) {
			break
		}
		if errors.Is(err, commands.ErrBatchSchedulingFailed) {
			j.logger.WarnContext(ctx, "Batch marked as failed", "error", err)
			continue
		}
		if err != nil {
			j.logger.ErrorContext(ctx, "Batch scheduling job failed", "error", err)
			break
		}
		scheduled++
	}

	if scheduled > 0 {
		j.logger.DebugContext(ctx, "Batches scheduled", "count", scheduled)
	}
	return scheduled
}
