// Package batch contains the Batch aggregate: one estimation request made of
// a base cost, a fleet and the parcels to price and schedule.
package batch

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/parcel"
	"fleetdelivery/internal/core/domain/model/vehicle"
	"fleetdelivery/internal/core/domain/services"
	"fleetdelivery/internal/pkg/guard"
)

var (
	// ErrBatchIsNotConstructed is returned when using a zero-value Batch.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")
	// ErrBatchAlreadyScheduled is returned when a batch that already left
	// the queue is scheduled or failed again.
	ErrBatchAlreadyScheduled = errors.New("batch is already processed")
	// ErrDuplicateParcelID is the reason recorded for a repeated parcel identity.
	ErrDuplicateParcelID = errors.New("duplicate package id")
)

// ParcelInput is one parcel line as received from a client, before any
// validation.
type ParcelInput struct {
	ID        string
	Weight    float64
	Distance  float64
	OfferCode string
}

// Batch is the aggregate root for one scheduling request.
//
// Business rules:
//   - Invalid parcel inputs are skipped with a message and never reach
//     pricing or scheduling
//   - Parcel identities are unique within a batch
//   - A batch is scheduled once; scheduling prices every parcel and then
//     plans the trips
//   - Parcels too heavy for the fleet stay in the batch without a delivery
//     time and are listed as oversize
type Batch struct {
	id       kernel.UUID
	baseCost float64
	fleet    vehicle.FleetConfig
	parcels  []*parcel.Parcel
	status   Status

	skipped        []string
	oversize       []string
	availableTimes []float64
	failure        string

	guard guard.ConstructorGuard
}

// NewBatch creates a Created batch. Parcel inputs that fail validation are
// recorded as "Skipping package <id>: <reason>" instead of failing the batch.
func NewBatch(id kernel.UUID, baseCost float64, fleet vehicle.FleetConfig, inputs []ParcelInput) (*Batch, error) {
	if err := errors.Join(
		id.Validate(),
		fleet.Validate(),
		validateBaseCost(baseCost),
	); err != nil {
		return nil, err
	}

	parcels, skipped := NewParcels(inputs)
	return &Batch{
		id:       id,
		baseCost: baseCost,
		fleet:    fleet,
		parcels:  parcels,
		status:   Created,
		skipped:  skipped,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewParcels builds parcels from input lines in order. A line that fails
// validation, or repeats an identity already accepted, is left out and
// reported through SkipMessage.
func NewParcels(inputs []ParcelInput) ([]*parcel.Parcel, []string) {
	var (
		parcels []*parcel.Parcel
		skipped []string
	)

	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.ID]; ok && in.ID != "" {
			skipped = append(skipped, SkipMessage(in.ID, ErrDuplicateParcelID))
			continue
		}

		p, err := parcel.NewParcel(in.ID, in.Weight, in.Distance, in.OfferCode)
		if err != nil {
			skipped = append(skipped, SkipMessage(in.ID, err))
			continue
		}

		seen[in.ID] = struct{}{}
		parcels = append(parcels, p)
	}

	return parcels, skipped
}

// RestoreBatch rebuilds a batch from storage.
func RestoreBatch(
	id kernel.UUID,
	baseCost float64,
	fleet vehicle.FleetConfig,
	parcels []*parcel.Parcel,
	status Status,
	skipped, oversize []string,
	availableTimes []float64,
	failure string,
) (*Batch, error) {
	if err := errors.Join(
		id.Validate(),
		fleet.Validate(),
		validateBaseCost(baseCost),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	return &Batch{
		id:             id,
		baseCost:       baseCost,
		fleet:          fleet,
		parcels:        slices.Clone(parcels),
		status:         status,
		skipped:        slices.Clone(skipped),
		oversize:       slices.Clone(oversize),
		availableTimes: slices.Clone(availableTimes),
		failure:        failure,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the batch was built by NewBatch or RestoreBatch.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

func (b *Batch) ID() kernel.UUID                  { return b.id }
func (b *Batch) BaseCost() float64                { return b.baseCost }
func (b *Batch) Fleet() vehicle.FleetConfig       { return b.fleet }
func (b *Batch) Status() Status                   { return b.status }
func (b *Batch) Parcels() []*parcel.Parcel        { return slices.Clone(b.parcels) }
func (b *Batch) SkipMessages() []string           { return slices.Clone(b.skipped) }
func (b *Batch) OversizeIDs() []string            { return slices.Clone(b.oversize) }
func (b *Batch) VehicleAvailableTimes() []float64 { return slices.Clone(b.availableTimes) }

// Failure is the reason recorded by MarkFailed, empty otherwise.
func (b *Batch) Failure() string { return b.failure }

// Schedule prices every parcel with calculator, plans the trips with
// scheduler and marks the batch Scheduled.
func (b *Batch) Schedule(calculator services.CostCalculator, scheduler *services.DeliveryScheduler) (services.Schedule, error) {
	if err := b.Validate(); err != nil {
		return services.Schedule{}, err
	}

	next, err := b.status.Schedule()
	if err != nil {
		return services.Schedule{}, err
	}

	for _, p := range b.parcels {
		if err = calculator.Apply(p, b.baseCost); err != nil {
			return services.Schedule{}, fmt.Errorf("pricing parcel %s: %w", p.ID(), err)
		}
	}

	schedule, err := scheduler.Schedule(b.fleet, b.parcels)
	if err != nil {
		return services.Schedule{}, err
	}

	b.oversize = schedule.Oversize
	b.availableTimes = schedule.AvailableTimes
	b.status = next
	return schedule, nil
}

// MarkFailed takes a Created batch out of the queue for good and records
// reason. Costs or delivery times set before the failure are kept.
func (b *Batch) MarkFailed(reason error) error {
	if err := b.Validate(); err != nil {
		return err
	}

	next, err := b.status.Fail()
	if err != nil {
		return err
	}

	b.status = next
	b.failure = strings.ReplaceAll(reason.Error(), "\n", "; ")
	return nil
}

// SkipMessage formats the report line for a parcel left out of a batch.
// Joined errors are flattened onto one line.
func SkipMessage(id string, reason error) string {
	msg := strings.ReplaceAll(reason.Error(), "\n", "; ")
	return fmt.Sprintf("Skipping package %s: %s", id, msg)
}

func validateBaseCost(baseCost float64) error {
	if !(baseCost >= 0) || math.IsInf(baseCost, 0) {
		return services.ErrBaseCostIsInvalid
	}
	return nil
}
