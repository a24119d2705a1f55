package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
)

// GetBatchQueryHandler reads batches from the batches and parcels tables.
type GetBatchQueryHandler struct {
	db *gorm.DB
}

func NewGetBatchQueryHandler(db *gorm.DB) GetBatchQueryHandler {
	return GetBatchQueryHandler{db: db}
}

// Handle returns the batch, or errs.ObjectNotFoundError when it does not
// exist. Parcels come back in submission order.
func (h GetBatchQueryHandler) Handle(ctx context.Context, query GetBatchQuery) (*GetBatchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	id := query.BatchID()
	resp, err := h.readBatch(ctx, id)
	if err != nil {
		return nil, err
	}

	if resp.Parcels, err = h.readParcels(ctx, id); err != nil {
		return nil, err
	}

	return resp, nil
}

func (h GetBatchQueryHandler) readBatch(ctx context.Context, id kernel.UUID) (*GetBatchQueryResponse, error) {
	var (
		rawID          uuid.UUID
		status         int
		skipMessages   pq.StringArray
		oversizeIDs    pq.StringArray
		availableTimes pq.Float64Array
		resp           GetBatchQueryResponse
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			base_cost,
			vehicle_count,
			max_load,
			max_speed,
			skip_messages,
			oversize_ids,
			available_times,
			failure
		FROM batches
		WHERE id = ?
	`, id.Bytes()).Row()

	err := row.Scan(
		&rawID,
		&status,
		&resp.BaseCost,
		&resp.VehicleCount,
		&resp.MaxLoad,
		&resp.MaxSpeed,
		&skipMessages,
		&oversizeIDs,
		&availableTimes,
		&resp.Failure,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("batch", id.String())
	}
	if err != nil {
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
		return nil, err
	}
	resp.Status = batch.Status(status).String()
	resp.SkipMessages = skipMessages
	resp.OversizeIDs = oversizeIDs
	resp.VehicleAvailableTimes = availableTimes

	return &resp, nil
}

func (h GetBatchQueryHandler) readParcels(ctx context.Context, id kernel.UUID) ([]ParcelView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			weight,
			distance,
			offer_code,
			discount,
			total_cost,
			delivery_time
		FROM parcels
		WHERE batch_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := make([]ParcelView, 0)
	for rows.Next() {
		var p ParcelView
		if err = rows.Scan(
			&p.ID,
			&p.Weight,
			&p.Distance,
			&p.OfferCode,
			&p.Discount,
			&p.TotalCost,
			&p.DeliveryTime,
		); err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
