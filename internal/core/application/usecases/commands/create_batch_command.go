package commands

import (
	"errors"
	"slices"

	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/vehicle"
	"fleetdelivery/internal/pkg/guard"
)

var (
	ErrCreateBatchCommandIsNotConstructed = errors.New(
		"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
	)
	ErrParcelsAreRequired = errors.New("at least one parcel is required")
	ErrTooManyParcels     = errors.New("too many parcels in one batch")
)

// DefaultMaxParcels caps the parcel lines of one batch. Trip selection keeps
// every tied group of the heaviest size, and for parcels of equal weight
// that is C(n, n/2) groups, so n stays small.
const DefaultMaxParcels = 20

// CreateBatchCommand queues a batch of parcels for the scheduling job.
//
// Example:
//
//	fleet, _ := vehicle.NewFleetConfig(2, 200, 70)
//	cmd, err := NewCreateBatchCommand(kernel.NewUUID(), 100, fleet, []batch.ParcelInput{
//	    {ID: "PKG1", Weight: 50, Distance: 30, OfferCode: "OFR001"},
//	}, DefaultMaxParcels)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateBatchCommand struct {
	batchID  kernel.UUID
	baseCost float64
	fleet    vehicle.FleetConfig
	parcels  []batch.ParcelInput

	guard guard.ConstructorGuard
}

// NewCreateBatchCommand validates the batch identity and fleet and requires
// between one and maxParcels parcel lines. Parcel lines themselves are
// checked when the batch is built, so that bad lines are skipped rather than
// rejected.
func NewCreateBatchCommand(
	batchID kernel.UUID,
	baseCost float64,
	fleet vehicle.FleetConfig,
	parcels []batch.ParcelInput,
	maxParcels int,
) (CreateBatchCommand, error) {
	cmd := CreateBatchCommand{
		baseCost: baseCost,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchID(batchID),
		cmd.setFleet(fleet),
		cmd.setParcels(parcels, maxParcels),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

func (c CreateBatchCommand) BatchID() kernel.UUID         { return c.batchID }
func (c CreateBatchCommand) BaseCost() float64            { return c.baseCost }
func (c CreateBatchCommand) Fleet() vehicle.FleetConfig   { return c.fleet }
func (c CreateBatchCommand) Parcels() []batch.ParcelInput { return slices.Clone(c.parcels) }

func (c *CreateBatchCommand) setBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.batchID = id
	return nil
}

func (c *CreateBatchCommand) setFleet(fleet vehicle.FleetConfig) error {
	if err := fleet.Validate(); err != nil {
		return err
	}
	c.fleet = fleet
	return nil
}

func (c *CreateBatchCommand) setParcels(parcels []batch.ParcelInput, maxParcels int) error {
	if err := requireParcels(parcels, maxParcels); err != nil {
		return err
	}
	c.parcels = slices.Clone(parcels)
	return nil
}
