// Package queries contains read-only operations. Handlers read straight from
// the database without loading aggregates.
package queries

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/guard"
)

var ErrGetBatchQueryIsNotConstructed = errors.New(
	"GetBatchQuery must be created via NewGetBatchQuery constructor",
)

// GetBatchQuery reads one batch with its parcels.
//
// Example:
//
//	query, err := NewGetBatchQuery(id)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown batch
//	}
type GetBatchQuery struct {
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBatchQuery(batchID kernel.UUID) (GetBatchQuery, error) {
	if err := batchID.Validate(); err != nil {
		return GetBatchQuery{}, err
	}
	return GetBatchQuery{batchID: batchID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBatchQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchQueryIsNotConstructed)
}

func (q GetBatchQuery) BatchID() kernel.UUID {
	return q.batchID
}

// ParcelView is one parcel row. DeliveryTime is nil until the batch is
// scheduled, and stays nil for oversize parcels.
type ParcelView struct {
	ID           string
	Weight       float64
	Distance     float64
	OfferCode    string
	Discount     float64
	TotalCost    float64
	DeliveryTime *float64
}

// GetBatchQueryResponse is the stored state of a batch.
type GetBatchQueryResponse struct {
	ID                    kernel.UUID
	Status                string
	Failure               string
	BaseCost              float64
	VehicleCount          int
	MaxLoad               float64
	MaxSpeed              float64
	Parcels               []ParcelView
	SkipMessages          []string
	OversizeIDs           []string
	VehicleAvailableTimes []float64
}
