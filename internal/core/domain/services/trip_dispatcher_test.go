package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdelivery/internal/core/domain/model/parcel"
	"fleetdelivery/internal/core/domain/model/trip"
	"fleetdelivery/internal/core/domain/model/vehicle"
	"fleetdelivery/internal/core/domain/services"
)

func TestTripDispatcher_Dispatch(t *testing.T) {
	dispatcher := services.NewTripDispatcher()

	t.Run("should write rounded delivery times and advance the vehicle", func(t *testing.T) {
		fleet := newFleet(t, 1, 200, 70)
		near := newParcel(t, "NEAR", 50, 50)
		far := newParcel(t, "FAR", 100, 100)

		d, ok, err := dispatcher.Dispatch(trip.New([]*parcel.Parcel{near, far}), fleet)

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 1, d.VehicleID)
		assert.InDelta(t, 0, d.StartTime, 1e-12)
		assert.InDelta(t, 200.0/70, d.ReturnTime, 1e-12)
		assert.InDelta(t, 2.857143, fleet.Vehicles()[0].AvailableTime(), 1e-6)
		assert.InDelta(t, 150, d.Weight, 1e-12)
		assert.InDelta(t, 100, d.Furthest, 1e-12)
		assert.Equal(t, []string{"FAR", "NEAR"}, d.ParcelIDs)

		require.NotNil(t, near.DeliveryTime())
		require.NotNil(t, far.DeliveryTime())
		assert.InDelta(t, 0.71, *near.DeliveryTime(), 1e-12)
		assert.InDelta(t, 1.43, *far.DeliveryTime(), 1e-12)
	})

	t.Run("should pick the earliest vehicle and break ties by identity", func(t *testing.T) {
		fleet := newFleet(t, 3, 200, 70)

		first, _, err := dispatcher.Dispatch(trip.New([]*parcel.Parcel{newParcel(t, "A", 10, 140)}), fleet)
		require.NoError(t, err)
		second, _, err := dispatcher.Dispatch(trip.New([]*parcel.Parcel{newParcel(t, "B", 10, 70)}), fleet)
		require.NoError(t, err)
		third, _, err := dispatcher.Dispatch(trip.New([]*parcel.Parcel{newParcel(t, "C", 10, 35)}), fleet)
		require.NoError(t, err)

		assert.Equal(t, 1, first.VehicleID)
		assert.Equal(t, 2, second.VehicleID)
		assert.Equal(t, 3, third.VehicleID)

		// vehicle 3 is back first at 1h
		c := newParcel(t, "D", 10, 70)
		fourth, _, err := dispatcher.Dispatch(trip.New([]*parcel.Parcel{c}), fleet)
		require.NoError(t, err)
		assert.Equal(t, 3, fourth.VehicleID)
		assert.InDelta(t, 1, fourth.StartTime, 1e-12)
		assert.InDelta(t, 2, *c.DeliveryTime(), 1e-12)
		assert.Equal(t, []float64{4, 2, 3}, fleet.AvailableTimes())
	})

	t.Run("should do nothing for an empty trip", func(t *testing.T) {
		fleet := newFleet(t, 1, 200, 70)

		d, ok, err := dispatcher.Dispatch(trip.New(nil), fleet)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, services.Dispatch{}, d)
		assert.Equal(t, []float64{0}, fleet.AvailableTimes())
	})

	t.Run("should reject a parcel that was already dispatched", func(t *testing.T) {
		fleet := newFleet(t, 1, 200, 70)
		done := newParcel(t, "DONE", 10, 10)
		require.NoError(t, done.SetDeliveryTime(1))
		fresh := newParcel(t, "FRESH", 10, 10)

		_, ok, err := dispatcher.Dispatch(trip.New([]*parcel.Parcel{fresh, done}), fleet)

		assert.ErrorIs(t, err, services.ErrParcelAlreadyDispatched)
		assert.False(t, ok)
		assert.False(t, fresh.IsDispatched(), "no parcel is written on failure")
		assert.Equal(t, []float64{0}, fleet.AvailableTimes())
	})

	t.Run("should reject a trip over capacity", func(t *testing.T) {
		fleet := newFleet(t, 1, 100, 70)
		trp := trip.New(weightsOf(t, 60, 60))

		_, _, err := dispatcher.Dispatch(trp, fleet)

		assert.ErrorIs(t, err, services.ErrTripOverloaded)
	})

	t.Run("should reject a zero-value fleet", func(t *testing.T) {
		_, _, err := dispatcher.Dispatch(trip.New(weightsOf(t, 10)), &vehicle.Fleet{})
		assert.ErrorIs(t, err, vehicle.ErrFleetIsNotConstructed)
	})
}
