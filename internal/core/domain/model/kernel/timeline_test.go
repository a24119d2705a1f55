package kernel_test

import (
	"testing"

	"fleetdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestRoundHours(t *testing.T) {
	testCases := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"rounds down", 50.0 / 70.0, 0.71},
		{"rounds up", 100.0 / 70.0, 1.43},
		{"keeps exact values", 3.5, 3.5},
		{"zero", 0, 0},
		{"half rounds away from zero", 0.125, 0.13},
		{"whole hours with travel", 2.857142857 + 1.0, 3.86},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, kernel.RoundHours(tc.input), 1e-12)
		})
	}
}

func TestTravelHours(t *testing.T) {
	t.Run("one way", func(t *testing.T) {
		assert.InDelta(t, 100.0/70.0, kernel.TravelHours(100, 70), 1e-12)
	})

	t.Run("round trip doubles the one way time", func(t *testing.T) {
		assert.InDelta(t, (100.0/70.0)*2, kernel.RoundTripHours(100, 70), 1e-12)
		assert.InDelta(t, 2.857143, kernel.RoundTripHours(100, 70), 1e-6)
	})
}
