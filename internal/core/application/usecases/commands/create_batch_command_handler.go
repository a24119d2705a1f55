package commands

import (
	"context"

	"fleetdelivery/internal/core/domain/model/batch"
)

// CreateBatchCommandHandler stores a new batch in Created status. The batch
// is priced and scheduled later by ScheduleBatchCommandHandler.
type CreateBatchCommandHandler struct {
	uowFactory BatchUoWFactory
}

func NewCreateBatchCommandHandler(uowFactory BatchUoWFactory) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the batch and persists it in one transaction. It returns
// the skip messages of parcel lines that were rejected.
func (h CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) ([]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	b, err := batch.NewBatch(cmd.BatchID(), cmd.BaseCost(), cmd.Fleet(), cmd.Parcels())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BatchRepository().Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b.SkipMessages(), nil
}
