// Package batchrepo maps the batch aggregate and its parcels to PostgreSQL
// tables through GORM.
package batchrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/parcel"
	"fleetdelivery/internal/core/domain/model/vehicle"
)

// BatchDTO is the row of the batches table. Fleet settings are stored inline
// since a fleet only exists for the run of its batch.
type BatchDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BaseCost       float64         `gorm:"not null"`
	VehicleCount   int             `gorm:"not null"`
	MaxLoad        float64         `gorm:"not null"`
	MaxSpeed       float64         `gorm:"not null"`
	Status         int             `gorm:"not null;index"`
	SkipMessages   pq.StringArray  `gorm:"type:text[]"`
	OversizeIDs    pq.StringArray  `gorm:"type:text[]"`
	AvailableTimes pq.Float64Array `gorm:"type:double precision[]"`
	Failure        string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;index"`
	Parcels        []ParcelDTO     `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
}

func (BatchDTO) TableName() string {
	return "batches"
}

// ParcelDTO is the row of the parcels table. Position keeps the order the
// parcels were submitted in.
type ParcelDTO struct {
	BatchID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ID           string    `gorm:"type:varchar(255);primaryKey"`
	Position     int       `gorm:"not null"`
	Weight       float64   `gorm:"not null"`
	Distance     float64   `gorm:"not null"`
	OfferCode    string    `gorm:"type:varchar(64)"`
	Discount     float64   `gorm:"not null"`
	TotalCost    float64   `gorm:"not null"`
	DeliveryTime *float64
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(aggregate *batch.Batch) BatchDTO {
	batchID := aggregate.ID().Bytes()
	fleet := aggregate.Fleet()

	parcels := make([]ParcelDTO, 0, len(aggregate.Parcels()))
	for i, p := range aggregate.Parcels() {
		parcels = append(parcels, ParcelDTO{
			BatchID:      batchID,
			ID:           p.ID(),
			Position:     i,
			Weight:       p.Weight(),
			Distance:     p.Distance(),
			OfferCode:    p.OfferCode(),
			Discount:     p.Discount(),
			TotalCost:    p.TotalCost(),
			DeliveryTime: p.DeliveryTime(),
		})
	}

	return BatchDTO{
		ID:             batchID,
		BaseCost:       aggregate.BaseCost(),
		VehicleCount:   fleet.Count(),
		MaxLoad:        fleet.MaxLoad(),
		MaxSpeed:       fleet.MaxSpeed(),
		Status:         int(aggregate.Status()),
		SkipMessages:   aggregate.SkipMessages(),
		OversizeIDs:    aggregate.OversizeIDs(),
		AvailableTimes: aggregate.VehicleAvailableTimes(),
		Failure:        aggregate.Failure(),
		Parcels:        parcels,
	}
}

func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	fleet, err := vehicle.NewFleetConfig(dto.VehicleCount, dto.MaxLoad, dto.MaxSpeed)
	if err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dto.Parcels))
	for _, p := range dto.Parcels {
		restored, restoreErr := parcel.RestoreParcel(
			p.ID, p.Weight, p.Distance, p.OfferCode, p.Discount, p.TotalCost, p.DeliveryTime,
		)
		if restoreErr != nil {
			return nil, restoreErr
		}
		parcels = append(parcels, restored)
	}

	return batch.RestoreBatch(
		id,
		dto.BaseCost,
		fleet,
		parcels,
		batch.Status(dto.Status),
		dto.SkipMessages,
		dto.OversizeIDs,
		dto.AvailableTimes,
		dto.Failure,
	)
}

// AutoMigrate creates or updates the batches and parcels tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&BatchDTO{}, &ParcelDTO{})
}
