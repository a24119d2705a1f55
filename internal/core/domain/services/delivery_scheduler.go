package services

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"fleetdelivery/internal/core/domain/model/parcel"
	"fleetdelivery/internal/core/domain/model/vehicle"
)

var (
	// ErrDuplicateParcel is returned when the same parcel identity is
	// scheduled twice in one run.
	ErrDuplicateParcel = errors.New("duplicate parcel id")
	// ErrTripOverloaded is returned when a trip would exceed the vehicle
	// capacity.
	ErrTripOverloaded = errors.New("trip exceeds vehicle capacity")
	// ErrNoProgress is returned if a selection round dispatches nothing while
	// parcels are still pending.
	ErrNoProgress = errors.New("scheduling made no progress")
)

// Schedule is the outcome of one scheduling run.
type Schedule struct {
	// Dispatches lists the trips in the order they were dispatched.
	Dispatches []Dispatch
	// Oversize holds the identities of parcels heavier than any vehicle can
	// carry, in input order. They get no delivery time.
	Oversize []string
	// AvailableTimes is the final available-from time of every vehicle,
	// indexed by identity - 1.
	AvailableTimes []float64
}

// DeliveryScheduler plans a whole batch. A run owns its pending list and its
// fleet from start to finish; nothing is shared between runs.
type DeliveryScheduler struct {
	dispatcher TripDispatcher
	logger     *slog.Logger
}

// NewDeliveryScheduler creates a scheduler. A nil logger discards output.
func NewDeliveryScheduler(logger *slog.Logger) *DeliveryScheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DeliveryScheduler{
		dispatcher: NewTripDispatcher(),
		logger:     logger.With("component", "DeliveryScheduler"),
	}
}

// Schedule assigns every parcel that fits a vehicle to a trip and writes its
// delivery time. Parcels must not be dispatched yet.
//
// Parcels heavier than config.MaxLoad() are reported in Schedule.Oversize.
// The rest are sorted ascending by weight, keeping input order for equal
// weights, and dispatched trip by trip until none remain. The same input in
// the same order always produces the same schedule.
func (s *DeliveryScheduler) Schedule(config vehicle.FleetConfig, parcels []*parcel.Parcel) (Schedule, error) {
	if err := s.validate(parcels); err != nil {
		return Schedule{}, err
	}

	fleet, err := vehicle.NewFleet(config)
	if err != nil {
		return Schedule{}, err
	}

	pending, oversize := s.partition(parcels, config.MaxLoad())
	for _, id := range oversize {
		s.logger.Warn("parcel exceeds vehicle capacity", "parcel_id", id, "max_load", config.MaxLoad())
	}

	slices.SortStableFunc(pending, func(a, b *parcel.Parcel) int {
		switch {
		case a.Weight() < b.Weight():
			return -1
		case a.Weight() > b.Weight():
			return 1
		default:
			return 0
		}
	})

	selector := NewTripSelector(config.MaxLoad())
	dispatches := make([]Dispatch, 0, len(pending))

	for len(pending) > 0 {
		t := selector.Select(pending)

		d, ok, err := s.dispatcher.Dispatch(t, fleet)
		if err != nil {
			return Schedule{}, err
		}
		if !ok {
			return Schedule{}, fmt.Errorf("%w: %d parcels pending", ErrNoProgress, len(pending))
		}

		s.logger.Debug("trip dispatched",
			"vehicle_id", d.VehicleID,
			"parcels", d.ParcelIDs,
			"weight", d.Weight,
			"start", d.StartTime,
			"return", d.ReturnTime,
		)

		dispatches = append(dispatches, d)
		pending = slices.DeleteFunc(pending, (*parcel.Parcel).IsDispatched)
	}

	return Schedule{
		Dispatches:     dispatches,
		Oversize:       oversize,
		AvailableTimes: fleet.AvailableTimes(),
	}, nil
}

func (s *DeliveryScheduler) validate(parcels []*parcel.Parcel) error {
	seen := make(map[string]struct{}, len(parcels))
	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, ok := seen[p.ID()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateParcel, p.ID())
		}
		seen[p.ID()] = struct{}{}

		if p.IsDispatched() {
			return fmt.Errorf("%w: %s", ErrParcelAlreadyDispatched, p.ID())
		}
	}
	return nil
}

// partition splits parcels into those a vehicle can carry, as a fresh slice,
// and the identities of those it cannot.
func (s *DeliveryScheduler) partition(parcels []*parcel.Parcel, maxLoad float64) ([]*parcel.Parcel, []string) {
	pending := make([]*parcel.Parcel, 0, len(parcels))
	var oversize []string
	for _, p := range parcels {
		if p.Weight() > maxLoad {
			oversize = append(oversize, p.ID())
			continue
		}
		pending = append(pending, p)
	}
	return pending, oversize
}
