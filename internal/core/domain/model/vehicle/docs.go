// Package vehicle models the delivery fleet.
//
// The package includes:
//   - FleetConfig: vehicle count, shared maximum load and maximum speed
//   - Vehicle: one fleet slot with its available-from time
//   - Fleet: the vehicles of one scheduling run and the earliest-free lookup
//
// A vehicle's available-from time starts at zero and only moves forward:
// each departure adds the round trip to the furthest stop of the trip.
package vehicle
