package services

import (
	"errors"
	"fmt"

	"fleetdelivery/internal/core/domain/model/parcel"
	"fleetdelivery/internal/core/domain/model/trip"
	"fleetdelivery/internal/core/domain/model/vehicle"
)

// ErrParcelAlreadyDispatched is returned when a trip contains a parcel that
// already carries a delivery time.
var ErrParcelAlreadyDispatched = errors.New("parcel is already dispatched")

// Dispatch records one trip handed to a vehicle.
type Dispatch struct {
	VehicleID  int
	StartTime  float64
	ReturnTime float64
	// Furthest is the distance that fixed the round trip, in km.
	Furthest  float64
	Weight    float64
	ParcelIDs []string
}

// TripDispatcher assigns trips to the vehicle that frees up first and writes
// the delivery time of every parcel on board.
//
// Business rules:
//   - The vehicle is the one minimal by (available time, identity)
//   - A parcel is delivered at start + distance / speed, rounded to 2 places
//   - The vehicle is busy until start + 2 × furthest / speed
//   - An empty trip changes nothing
//
// Example usage:
//
//	dispatcher := NewTripDispatcher()
//	d, ok, err := dispatcher.Dispatch(t, fleet)
//	if err != nil {
//	    return err
//	}
//	if ok {
//	    fmt.Printf("vehicle %d back at %.2fh\n", d.VehicleID, d.ReturnTime)
//	}
type TripDispatcher struct{}

// NewTripDispatcher creates a TripDispatcher.
func NewTripDispatcher() TripDispatcher {
	return TripDispatcher{}
}

// Dispatch hands t to the next available vehicle of fleet. The returned flag
// is false for an empty trip, in which case nothing is touched.
//
// Every parcel is checked before anything is written, so a failed dispatch
// leaves both the fleet and the parcels unchanged.
func (d TripDispatcher) Dispatch(t trip.Trip, fleet *vehicle.Fleet) (Dispatch, bool, error) {
	if t.IsEmpty() {
		return Dispatch{}, false, nil
	}

	if err := fleet.Validate(); err != nil {
		return Dispatch{}, false, err
	}

	parcels := t.Parcels()
	if err := d.validateParcels(parcels, fleet.Config().MaxLoad()); err != nil {
		return Dispatch{}, false, err
	}

	v := fleet.NextAvailable()
	start := v.AvailableTime()
	furthest := t.FurthestDistance()

	for _, p := range parcels {
		if err := p.SetDeliveryTime(v.ArrivalTime(p.Distance())); err != nil {
			return Dispatch{}, false, err
		}
	}

	returnTime, err := v.Depart(furthest)
	if err != nil {
		return Dispatch{}, false, err
	}

	return Dispatch{
		VehicleID:  v.ID(),
		StartTime:  start,
		ReturnTime: returnTime,
		Furthest:   furthest,
		Weight:     t.TotalWeight(),
		ParcelIDs:  t.IDs(),
	}, true, nil
}

func (d TripDispatcher) validateParcels(parcels []*parcel.Parcel, maxLoad float64) error {
	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return err
		}
		if p.IsDispatched() {
			return fmt.Errorf("%w: %s", ErrParcelAlreadyDispatched, p.ID())
		}
	}

	if w := trip.TotalWeight(parcels); w > maxLoad {
		return fmt.Errorf("%w: %v kg over %v kg", ErrTripOverloaded, w, maxLoad)
	}
	return nil
}
