package vehicle

import "errors"

// ErrFleetIsNotConstructed is returned when using a zero-value Fleet.
var ErrFleetIsNotConstructed = errors.New("Fleet must be created via NewFleet constructor")

// Fleet holds the vehicles of one scheduling run. It is created at the start
// of the run, mutated only through Vehicle.Depart and dropped when the run
// ends.
type Fleet struct {
	config   FleetConfig
	vehicles []*Vehicle
}

// NewFleet creates config.Count() idle vehicles numbered 1..N.
func NewFleet(config FleetConfig) (*Fleet, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	vehicles := make([]*Vehicle, 0, config.Count())
	for i := 1; i <= config.Count(); i++ {
		v, err := NewVehicle(i, config.MaxLoad(), config.MaxSpeed())
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	return &Fleet{config: config, vehicles: vehicles}, nil
}

// Validate reports whether the fleet was built by NewFleet.
func (f *Fleet) Validate() error {
	if f == nil || len(f.vehicles) == 0 {
		return ErrFleetIsNotConstructed
	}
	return nil
}

// Config returns the configuration the fleet was built from.
func (f *Fleet) Config() FleetConfig {
	return f.config
}

// Vehicles returns the vehicles ordered by identity. The slice is a copy;
// the vehicles are shared.
func (f *Fleet) Vehicles() []*Vehicle {
	out := make([]*Vehicle, len(f.vehicles))
	copy(out, f.vehicles)
	return out
}

// NextAvailable returns the vehicle that frees up first. Equal
// available-from times go to the lowest identity.
func (f *Fleet) NextAvailable() *Vehicle {
	var best *Vehicle
	for _, v := range f.vehicles {
		if best == nil || v.availableTime < best.availableTime {
			best = v
		}
	}
	return best
}

// AvailableTimes returns every vehicle's available-from time, indexed by
// identity - 1.
func (f *Fleet) AvailableTimes() []float64 {
	out := make([]float64, len(f.vehicles))
	for i, v := range f.vehicles {
		out[i] = v.availableTime
	}
	return out
}
