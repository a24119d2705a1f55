package kernel

import "math"

// hoursPrecision is the number of decimal places kept in reported times.
const hoursPrecision = 100

// RoundHours rounds a time in hours to two decimal places, half away from
// zero. It is applied once, when a delivery time is recorded, so rounding
// error never feeds back into vehicle availability.
func RoundHours(hours float64) float64 {
	return math.Round(hours*hoursPrecision) / hoursPrecision
}

// TravelHours returns the one-way travel time in hours for distanceKm at
// speedKmh. The caller guarantees speedKmh > 0.
func TravelHours(distanceKm, speedKmh float64) float64 {
	return distanceKm / speedKmh
}

// RoundTripHours returns the time to drive to distanceKm and back.
func RoundTripHours(distanceKm, speedKmh float64) float64 {
	return 2 * TravelHours(distanceKm, speedKmh)
}
