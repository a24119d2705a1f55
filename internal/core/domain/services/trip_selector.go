package services

import (
	"math"
	"slices"

	"fleetdelivery/internal/core/domain/model/parcel"
	"fleetdelivery/internal/core/domain/model/trip"
)

// weightTolerance is the margin within which two group weights count as
// equal. Decimal weights summed in different orders can differ in the last
// bits.
const weightTolerance = 1e-9

// TripSelector chooses one trip out of the pending parcels for a vehicle of
// the given capacity. It never modifies the parcels it reads.
//
// Every method that takes a parcel slice expects it sorted ascending by
// weight.
type TripSelector struct {
	maxLoad float64
}

// NewTripSelector returns a selector for vehicles that carry up to maxLoad kg.
func NewTripSelector(maxLoad float64) TripSelector {
	return TripSelector{maxLoad: maxLoad}
}

// MaxLoad returns the capacity the selector packs against.
func (s TripSelector) MaxLoad() float64 {
	return s.maxLoad
}

// Select returns the best trip: the largest parcel count, then the heaviest
// load for that count, then the nearest furthest stop. The trip is empty when
// nothing fits.
func (s TripSelector) Select(sorted []*parcel.Parcel) trip.Trip {
	count := s.MaxCount(sorted)
	if count == 0 {
		return trip.New(nil)
	}

	groups := s.MaxWeightGroups(sorted, count)
	return trip.New(s.SelectByFurthestDistance(groups))
}

// MaxCount returns how many of the lightest parcels fit together. Taking the
// lightest first gives the largest possible count.
func (s TripSelector) MaxCount(sorted []*parcel.Parcel) int {
	var load float64
	for i, p := range sorted {
		if load+p.Weight() > s.maxLoad {
			return i
		}
		load += p.Weight()
	}
	return len(sorted)
}

// selectorFrame is one level of the search: the next candidate index to try
// and the load carried by the parcels chosen above it.
type selectorFrame struct {
	next int
	load float64
}

// MaxWeightGroups returns every group of exactly count parcels that fits the
// capacity and has the largest total weight found. Groups keep the input
// order and are listed in lexicographic order of their indexes.
//
// The search is a depth-first walk over an explicit stack. A branch is cut
// when the next candidate would overflow the vehicle, since every later
// candidate is at least as heavy, or when too few candidates are left to
// complete the group.
func (s TripSelector) MaxWeightGroups(sorted []*parcel.Parcel, count int) [][]*parcel.Parcel {
	n := len(sorted)
	if count <= 0 || count > n {
		return nil
	}

	var (
		groups [][]*parcel.Parcel
		best   = math.Inf(-1)
		chosen = make([]int, 0, count)
		stack  = make([]selectorFrame, 1, count+1)
	)

	pop := func() {
		stack = stack[:len(stack)-1]
		if len(chosen) > 0 {
			chosen = chosen[:len(chosen)-1]
		}
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if len(chosen) == count {
			switch {
			case top.load > best+weightTolerance:
				best = top.load
				groups = append(groups[:0], s.collect(sorted, chosen))
			case top.load >= best-weightTolerance:
				groups = append(groups, s.collect(sorted, chosen))
			}
			pop()
			continue
		}

		i := top.next
		if i >= n || n-i < count-len(chosen) || top.load+sorted[i].Weight() > s.maxLoad {
			pop()
			continue
		}

		top.next = i + 1
		load := top.load + sorted[i].Weight()
		chosen = append(chosen, i)
		stack = append(stack, selectorFrame{next: i + 1, load: load})
	}

	return groups
}

// SelectByFurthestDistance returns the group whose furthest parcel is
// nearest. Groups with the same furthest distance are ordered by their
// sorted parcel identities and the smallest wins. Nil for no groups.
func (s TripSelector) SelectByFurthestDistance(groups [][]*parcel.Parcel) []*parcel.Parcel {
	var (
		best         []*parcel.Parcel
		bestFurthest float64
		bestIDs      []string
	)

	for _, g := range groups {
		furthest := trip.FurthestDistance(g)
		switch {
		case best == nil || furthest < bestFurthest:
		case furthest == bestFurthest:
			ids := trip.SortedIDs(g)
			if slices.Compare(ids, bestIDs) >= 0 {
				continue
			}
		default:
			continue
		}
		best, bestFurthest, bestIDs = g, furthest, trip.SortedIDs(g)
	}

	return best
}

func (s TripSelector) collect(sorted []*parcel.Parcel, indexes []int) []*parcel.Parcel {
	group := make([]*parcel.Parcel, len(indexes))
	for i, idx := range indexes {
		group[i] = sorted[idx]
	}
	return group
}
