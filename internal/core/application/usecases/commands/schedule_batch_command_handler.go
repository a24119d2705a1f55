package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/services"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/pkg/errs"
)

var (
	ErrNoBatchFound = errors.New("no batch found")
	// ErrBatchSchedulingFailed wraps the cause when a queued batch could not
	// be scheduled and was stored as Failed.
	ErrBatchSchedulingFailed = errors.New("batch scheduling failed")
)

// ScheduleBatchCommandHandler takes the oldest Created batch, prices its
// parcels, plans its trips and stores the result, all in one transaction.
//
// Example:
//
//	err := handler.Handle(ctx, NewScheduleBatchCommand())
//	switch {
//	case errors.Is(err, ErrNoBatchFound):
//	    // queue is empty
//	case errors.Is(err, ErrBatchSchedulingFailed):
//	    // batch stored as Failed, move on
//	case err != nil:
//	    return err
//	}
type ScheduleBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	calculator services.CostCalculator
	scheduler  *services.DeliveryScheduler
	recorder   ports.ScheduleRecorder
}

func NewScheduleBatchCommandHandler(
	uowFactory BatchUoWFactory,
	calculator services.CostCalculator,
	scheduler *services.DeliveryScheduler,
	recorder ports.ScheduleRecorder,
) ScheduleBatchCommandHandler {
	return ScheduleBatchCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		scheduler:  scheduler,
		recorder:   recorder,
	}
}

// Handle schedules one batch. Returns ErrNoBatchFound when nothing is queued.
// A batch the domain refuses to schedule is committed as Failed and reported
// with ErrBatchSchedulingFailed, so it never blocks the queue.
func (h ScheduleBatchCommandHandler) Handle(ctx context.Context, cmd ScheduleBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BatchRepository()

	b, err := repo.GetFirstInCreatedStatus(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoBatchFound
	}
	if err != nil {
		return err
	}

	started := time.Now()
	schedule, err := b.Schedule(h.calculator, h.scheduler)
	if err != nil {
		return h.fail(ctx, uow, repo, b, err)
	}
	elapsed := time.Since(started)

	if err = repo.Update(ctx, b); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.recorder != nil {
		h.recorder.RecordSchedule("batch", schedule, elapsed)
	}
	return nil
}

func (h ScheduleBatchCommandHandler) fail(
	ctx context.Context,
	uow BatchUoW,
	repo ports.BatchRepository,
	b *batch.Batch,
	cause error,
) error {
	if err := b.MarkFailed(cause); err != nil {
		return errors.Join(cause, err)
	}
	if err := repo.Update(ctx, b); err != nil {
		return errors.Join(cause, err)
	}
	if err := uow.Commit(ctx); err != nil {
		return errors.Join(cause, err)
	}
	return fmt.Errorf("%w: batch %s: %w", ErrBatchSchedulingFailed, b.ID(), cause)
}
