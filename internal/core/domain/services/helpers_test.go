package services_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"fleetdelivery/internal/core/domain/model/parcel"
	"fleetdelivery/internal/core/domain/model/vehicle"
)

type parcelSpec struct {
	id       string
	weight   float64
	distance float64
}

func newParcel(t testing.TB, id string, weight, distance float64) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(id, weight, distance, "")
	require.NoError(t, err)
	return p
}

func newParcels(t testing.TB, specs ...parcelSpec) []*parcel.Parcel {
	t.Helper()
	out := make([]*parcel.Parcel, len(specs))
	for i, s := range specs {
		out[i] = newParcel(t, s.id, s.weight, s.distance)
	}
	return out
}

// weightsOf builds parcels P1..Pn with the given weights and a distance of 50.
func weightsOf(t testing.TB, weights ...float64) []*parcel.Parcel {
	t.Helper()
	out := make([]*parcel.Parcel, len(weights))
	for i, w := range weights {
		out[i] = newParcel(t, fmt.Sprintf("P%d", i+1), w, 50)
	}
	return out
}

func sortedByWeight(parcels []*parcel.Parcel) []*parcel.Parcel {
	out := slices.Clone(parcels)
	slices.SortStableFunc(out, func(a, b *parcel.Parcel) int {
		switch {
		case a.Weight() < b.Weight():
			return -1
		case a.Weight() > b.Weight():
			return 1
		}
		return 0
	})
	return out
}

func weights(parcels []*parcel.Parcel) []float64 {
	out := make([]float64, len(parcels))
	for i, p := range parcels {
		out[i] = p.Weight()
	}
	return out
}

func newFleet(t testing.TB, count int, maxLoad, maxSpeed float64) *vehicle.Fleet {
	t.Helper()
	cfg, err := vehicle.NewFleetConfig(count, maxLoad, maxSpeed)
	require.NoError(t, err)
	fleet, err := vehicle.NewFleet(cfg)
	require.NoError(t, err)
	return fleet
}

func newFleetConfig(t testing.TB, count int, maxLoad, maxSpeed float64) vehicle.FleetConfig {
	t.Helper()
	cfg, err := vehicle.NewFleetConfig(count, maxLoad, maxSpeed)
	require.NoError(t, err)
	return cfg
}
