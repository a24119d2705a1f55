package vehicle_test

import (
	"testing"

	"fleetdelivery/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicle(t *testing.T) {
	t.Run("should create idle vehicle", func(t *testing.T) {
		v, err := vehicle.NewVehicle(1, 200, 70)

		require.NoError(t, err)
		require.NoError(t, v.Validate())
		assert.Equal(t, 1, v.ID())
		assert.InDelta(t, 200.0, v.MaxLoad(), 0)
		assert.InDelta(t, 70.0, v.MaxSpeed(), 0)
		assert.Zero(t, v.AvailableTime())
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		_, err := vehicle.NewVehicle(0, 0, -1)

		require.ErrorIs(t, err, vehicle.ErrVehicleIDIsInvalid)
		require.ErrorIs(t, err, vehicle.ErrMaxLoadIsInvalid)
		require.ErrorIs(t, err, vehicle.ErrMaxSpeedIsInvalid)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var v vehicle.Vehicle
		assert.Equal(t, vehicle.ErrVehicleIsNotConstructed, v.Validate())

		_, err := v.Depart(10)
		require.ErrorIs(t, err, vehicle.ErrVehicleIsNotConstructed)
	})
}

func TestVehicle_ReturnTime(t *testing.T) {
	t.Run("should calculate return time for a trip starting at time 0", func(t *testing.T) {
		v, _ := vehicle.NewVehicle(1, 200, 70)

		assert.InDelta(t, (100.0/70.0)*2, v.ReturnTime(100), 1e-4)
	})

	t.Run("should calculate return time based on current available time", func(t *testing.T) {
		v, _ := vehicle.NewVehicle(2, 200, 70)
		_, err := v.Depart(175) // back at 5.0
		require.NoError(t, err)

		assert.InDelta(t, 5+(50.0/70.0)*2, v.ReturnTime(50), 1e-4)
	})
}

func TestVehicle_Depart(t *testing.T) {
	t.Run("should advance by the round trip to the furthest stop", func(t *testing.T) {
		v, _ := vehicle.NewVehicle(1, 200, 70)

		next, err := v.Depart(100)

		require.NoError(t, err)
		assert.InDelta(t, 2.857143, next, 1e-6)
		assert.InDelta(t, next, v.AvailableTime(), 0)
	})

	t.Run("should accumulate consecutive trips exactly", func(t *testing.T) {
		v, _ := vehicle.NewVehicle(1, 200, 70)

		_, err := v.Depart(100)
		require.NoError(t, err)
		_, err = v.Depart(35)
		require.NoError(t, err)

		assert.InDelta(t, 200.0/70.0+70.0/70.0, v.AvailableTime(), 1e-12)
	})

	t.Run("should reject non-positive furthest distance", func(t *testing.T) {
		v, _ := vehicle.NewVehicle(1, 200, 70)

		_, err := v.Depart(0)

		require.ErrorIs(t, err, vehicle.ErrFurthestDistanceIsInvalid)
		assert.Zero(t, v.AvailableTime())
	})

	t.Run("arrival time starts from the available time", func(t *testing.T) {
		v, _ := vehicle.NewVehicle(1, 200, 70)
		_, _ = v.Depart(70) // back at 2.0

		assert.InDelta(t, 2+50.0/70.0, v.ArrivalTime(50), 1e-12)
	})
}

func TestVehicle_CanCarry(t *testing.T) {
	v, _ := vehicle.NewVehicle(1, 200, 70)

	assert.True(t, v.CanCarry(200))
	assert.True(t, v.CanCarry(0.5))
	assert.False(t, v.CanCarry(200.01))
}
