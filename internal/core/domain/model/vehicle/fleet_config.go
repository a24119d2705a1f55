package vehicle

import (
	"errors"
	"math"

	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var (
	// ErrCountIsInvalid is returned when the fleet has no vehicles.
	ErrCountIsInvalid = errs.NewValueIsInvalidErrorWithCause("vehicle count", errors.New("must be greater than 0"))
	// ErrMaxLoadIsInvalid is returned for a maximum load that is not a positive number.
	ErrMaxLoadIsInvalid = errs.NewValueIsInvalidErrorWithCause("max load", errors.New("must be a positive number"))
	// ErrMaxSpeedIsInvalid is returned for a maximum speed that is not a positive number.
	ErrMaxSpeedIsInvalid = errs.NewValueIsInvalidErrorWithCause("max speed", errors.New("must be a positive number"))
	// ErrFleetConfigIsNotConstructed is returned when using a zero-value FleetConfig.
	ErrFleetConfigIsNotConstructed = errors.New("FleetConfig must be created via NewFleetConfig constructor")
)

// FleetConfig describes a homogeneous fleet: every vehicle shares the same
// maximum load (kg) and maximum speed (km/h).
type FleetConfig struct {
	count    int
	maxLoad  float64
	maxSpeed float64

	guard guard.ConstructorGuard
}

// NewFleetConfig validates and returns a fleet configuration.
func NewFleetConfig(count int, maxLoad, maxSpeed float64) (FleetConfig, error) {
	cfg := FleetConfig{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cfg.setCount(count),
		cfg.setMaxLoad(maxLoad),
		cfg.setMaxSpeed(maxSpeed),
	); err != nil {
		return FleetConfig{}, err
	}

	return cfg, nil
}

// Validate reports whether the configuration was built by NewFleetConfig.
func (c FleetConfig) Validate() error {
	return c.guard.Validate(ErrFleetConfigIsNotConstructed)
}

// Count returns the number of vehicles.
func (c FleetConfig) Count() int {
	return c.count
}

// MaxLoad returns the shared capacity in kilograms.
func (c FleetConfig) MaxLoad() float64 {
	return c.maxLoad
}

// MaxSpeed returns the shared speed in kilometres per hour.
func (c FleetConfig) MaxSpeed() float64 {
	return c.maxSpeed
}

func (c *FleetConfig) setCount(count int) error {
	if count <= 0 {
		return ErrCountIsInvalid
	}
	c.count = count
	return nil
}

func (c *FleetConfig) setMaxLoad(maxLoad float64) error {
	if !isPositive(maxLoad) {
		return ErrMaxLoadIsInvalid
	}
	c.maxLoad = maxLoad
	return nil
}

func (c *FleetConfig) setMaxSpeed(maxSpeed float64) error {
	if !isPositive(maxSpeed) {
		return ErrMaxSpeedIsInvalid
	}
	c.maxSpeed = maxSpeed
	return nil
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
