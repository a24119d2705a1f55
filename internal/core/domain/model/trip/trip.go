// Package trip models one vehicle load: the parcels a vehicle carries on a
// single round trip from the depot.
package trip

import (
	"slices"

	"fleetdelivery/internal/core/domain/model/parcel"
)

// Trip is an ordered, read-only group of parcels. It lives only for one
// iteration of the scheduling loop and is never persisted.
type Trip struct {
	parcels []*parcel.Parcel
}

// New returns a trip over a copy of parcels, keeping their order.
func New(parcels []*parcel.Parcel) Trip {
	return Trip{parcels: slices.Clone(parcels)}
}

// Parcels returns the trip's parcels in load order.
func (t Trip) Parcels() []*parcel.Parcel {
	return slices.Clone(t.parcels)
}

// Len returns the number of parcels.
func (t Trip) Len() int {
	return len(t.parcels)
}

// IsEmpty reports whether the trip carries nothing.
func (t Trip) IsEmpty() bool {
	return len(t.parcels) == 0
}

// TotalWeight returns the summed weight in load order.
func (t Trip) TotalWeight() float64 {
	return TotalWeight(t.parcels)
}

// FurthestDistance returns the largest parcel distance, which fixes the
// round-trip duration. Zero for an empty trip.
func (t Trip) FurthestDistance() float64 {
	return FurthestDistance(t.parcels)
}

// IDs returns the parcel identities sorted ascending.
func (t Trip) IDs() []string {
	return SortedIDs(t.parcels)
}

// TotalWeight sums parcel weights in slice order.
func TotalWeight(parcels []*parcel.Parcel) float64 {
	var total float64
	for _, p := range parcels {
		total += p.Weight()
	}
	return total
}

// FurthestDistance returns the maximum parcel distance, or 0 for none.
func FurthestDistance(parcels []*parcel.Parcel) float64 {
	var furthest float64
	for _, p := range parcels {
		furthest = max(furthest, p.Distance())
	}
	return furthest
}

// SortedIDs returns the parcel identities in ascending lexical order.
func SortedIDs(parcels []*parcel.Parcel) []string {
	ids := make([]string, len(parcels))
	for i, p := range parcels {
		ids[i] = p.ID()
	}
	slices.Sort(ids)
	return ids
}
