package vehicle

import (
	"errors"
	"fmt"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var (
	// ErrVehicleIDIsInvalid is returned for identities below 1.
	ErrVehicleIDIsInvalid = errs.NewValueIsInvalidErrorWithCause("vehicle id", errors.New("must be 1 or greater"))
	// ErrFurthestDistanceIsInvalid is returned when a departure has no positive furthest distance.
	ErrFurthestDistanceIsInvalid = errs.NewValueIsInvalidError("furthest distance")
	// ErrAvailableTimeDecreased is returned when an update would move the
	// available-from time backwards.
	ErrAvailableTimeDecreased = errors.New("vehicle available time cannot decrease")
	// ErrVehicleIsNotConstructed is returned when using a zero-value Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// Vehicle is one slot of the fleet.
//
// Business rules:
//   - Identity is 1..N within a fleet
//   - Maximum load and speed are positive and fixed
//   - The available-from time starts at 0 and never decreases
//   - A departure occupies the vehicle for the round trip to the furthest
//     stop: 2 × furthest / speed
//
// Example usage:
//
//	v, _ := vehicle.NewVehicle(1, 200, 70)
//	arrival := v.ArrivalTime(50)  // 0.714...
//	_, _ = v.Depart(100)          // available again at 2.857...
type Vehicle struct {
	id            int
	maxLoad       float64
	maxSpeed      float64
	availableTime float64

	guard guard.ConstructorGuard
}

// NewVehicle creates an idle vehicle available from time 0.
func NewVehicle(id int, maxLoad, maxSpeed float64) (*Vehicle, error) {
	v := &Vehicle{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		v.setID(id),
		v.setMaxLoad(maxLoad),
		v.setMaxSpeed(maxSpeed),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate reports whether the vehicle was built by NewVehicle.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// ID returns the fleet slot number.
func (v *Vehicle) ID() int {
	return v.id
}

// MaxLoad returns the capacity in kilograms.
func (v *Vehicle) MaxLoad() float64 {
	return v.maxLoad
}

// MaxSpeed returns the speed in kilometres per hour.
func (v *Vehicle) MaxSpeed() float64 {
	return v.maxSpeed
}

// AvailableTime returns the earliest time, in hours, the vehicle can start
// its next trip.
func (v *Vehicle) AvailableTime() float64 {
	return v.availableTime
}

// CanCarry reports whether a load of the given weight fits the vehicle.
func (v *Vehicle) CanCarry(weight float64) bool {
	return weight <= v.maxLoad
}

// ArrivalTime returns when a stop at distanceKm is reached if the vehicle
// leaves at its available-from time. The value is not rounded.
func (v *Vehicle) ArrivalTime(distanceKm float64) float64 {
	return v.availableTime + kernel.TravelHours(distanceKm, v.maxSpeed)
}

// ReturnTime returns when the vehicle is back at the depot after driving to
// furthestKm and back.
func (v *Vehicle) ReturnTime(furthestKm float64) float64 {
	return v.availableTime + kernel.RoundTripHours(furthestKm, v.maxSpeed)
}

// Depart occupies the vehicle for a round trip to furthestKm and returns the
// new available-from time.
func (v *Vehicle) Depart(furthestKm float64) (float64, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}
	if !isPositive(furthestKm) {
		return 0, ErrFurthestDistanceIsInvalid
	}

	next := v.ReturnTime(furthestKm)
	if err := v.setAvailableTime(next); err != nil {
		return 0, err
	}

	return next, nil
}

func (v *Vehicle) setID(id int) error {
	if id < 1 {
		return ErrVehicleIDIsInvalid
	}
	v.id = id
	return nil
}

func (v *Vehicle) setMaxLoad(maxLoad float64) error {
	if !isPositive(maxLoad) {
		return ErrMaxLoadIsInvalid
	}
	v.maxLoad = maxLoad
	return nil
}

func (v *Vehicle) setMaxSpeed(maxSpeed float64) error {
	if !isPositive(maxSpeed) {
		return ErrMaxSpeedIsInvalid
	}
	v.maxSpeed = maxSpeed
	return nil
}

func (v *Vehicle) setAvailableTime(t float64) error {
	if t < v.availableTime {
		return fmt.Errorf("%w: vehicle %d from %v to %v", ErrAvailableTimeDecreased, v.id, v.availableTime, t)
	}
	v.availableTime = t
	return nil
}
