package commands

import (
	"errors"
	"fmt"
	"slices"

	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/vehicle"
	"fleetdelivery/internal/pkg/guard"
)

var ErrEstimateDeliveryCommandIsNotConstructed = errors.New(
	"EstimateDeliveryCommand must be created via NewEstimateDeliveryCommand constructor",
)

// EstimateDeliveryCommand prices and schedules parcels right away without
// storing anything.
type EstimateDeliveryCommand struct {
	baseCost float64
	fleet    vehicle.FleetConfig
	parcels  []batch.ParcelInput

	guard guard.ConstructorGuard
}

func NewEstimateDeliveryCommand(
	baseCost float64,
	fleet vehicle.FleetConfig,
	parcels []batch.ParcelInput,
	maxParcels int,
) (EstimateDeliveryCommand, error) {
	if err := errors.Join(
		fleet.Validate(),
		requireParcels(parcels, maxParcels),
	); err != nil {
		return EstimateDeliveryCommand{}, err
	}

	return EstimateDeliveryCommand{
		baseCost: baseCost,
		fleet:    fleet,
		parcels:  slices.Clone(parcels),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EstimateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrEstimateDeliveryCommandIsNotConstructed)
}

func (c EstimateDeliveryCommand) BaseCost() float64            { return c.baseCost }
func (c EstimateDeliveryCommand) Fleet() vehicle.FleetConfig   { return c.fleet }
func (c EstimateDeliveryCommand) Parcels() []batch.ParcelInput { return slices.Clone(c.parcels) }

// requireParcels bounds the parcel lines of one request. A non-positive
// maxParcels means DefaultMaxParcels.
func requireParcels(parcels []batch.ParcelInput, maxParcels int) error {
	if maxParcels <= 0 {
		maxParcels = DefaultMaxParcels
	}
	switch {
	case len(parcels) == 0:
		return ErrParcelsAreRequired
	case len(parcels) > maxParcels:
		return fmt.Errorf("%w: got %d, limit is %d", ErrTooManyParcels, len(parcels), maxParcels)
	}
	return nil
}
