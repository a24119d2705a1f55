// Package ports defines the contracts between the delivery domain and the
// infrastructure that stores batches and caches estimates.
package ports

import (
	"context"

	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for batch aggregates,
// parcels included.
type BatchRepository interface {
	// Add persists a new batch with its parcels.
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Update persists the state of an existing batch: its status, the cost
	// and delivery time of every parcel, and the scheduling summary.
	Update(ctx context.Context, aggregate *batch.Batch) error

	// Get retrieves a batch by identity. Returns errs.ObjectNotFoundError
	// when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// GetFirstInCreatedStatus retrieves the oldest batch still waiting to be
	// scheduled. Returns errs.ObjectNotFoundError when the queue is empty.
	GetFirstInCreatedStatus(ctx context.Context) (*batch.Batch, error)
}
