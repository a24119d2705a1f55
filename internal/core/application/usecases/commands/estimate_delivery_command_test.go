package commands_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/vehicle"
	"fleetdelivery/internal/core/domain/services"
	"fleetdelivery/internal/core/ports"
)

func newEstimateCommand(t *testing.T, parcels []batch.ParcelInput) commands.EstimateDeliveryCommand {
	t.Helper()
	cmd, err := commands.NewEstimateDeliveryCommand(100, testFleet(t), parcels, commands.DefaultMaxParcels)
	require.NoError(t, err)
	return cmd
}

func TestNewEstimateDeliveryCommand(t *testing.T) {
	_, err := commands.NewEstimateDeliveryCommand(100, vehicle.FleetConfig{}, nil, commands.DefaultMaxParcels)
	assert.ErrorIs(t, err, vehicle.ErrFleetConfigIsNotConstructed)
	assert.ErrorIs(t, err, commands.ErrParcelsAreRequired)

	_, err = commands.NewEstimateDeliveryCommand(100, testFleet(t), sampleParcels(), 4)
	assert.ErrorIs(t, err, commands.ErrTooManyParcels)

	_, err = commands.NewEstimateDeliveryCommand(100, testFleet(t), sampleParcels(), 5)
	assert.NoError(t, err)

	assert.ErrorIs(t,
		commands.EstimateDeliveryCommand{}.Validate(),
		commands.ErrEstimateDeliveryCommandIsNotConstructed,
	)
}

func TestEstimateDeliveryCommandHandler_Handle(t *testing.T) {
	const ttl = time.Minute

	newHandler := func(t *testing.T, cache ports.EstimateCache, recorder ports.ScheduleRecorder) commands.EstimateDeliveryCommandHandler {
		t.Helper()
		return commands.NewEstimateDeliveryCommandHandler(
			testCalculator(t), services.NewDeliveryScheduler(nil), cache, ttl, recorder, nil,
		)
	}

	t.Run("should price and schedule without a cache", func(t *testing.T) {
		result, err := newHandler(t, nil, nil).Handle(t.Context(), newEstimateCommand(t, sampleParcels()))

		require.NoError(t, err)
		assert.False(t, result.Cached)
		require.Len(t, result.Parcels, 5)

		want := []struct {
			id       string
			discount float64
			total    float64
			time     float64
		}{
			{"PKG1", 0, 750, 4.00},
			{"PKG2", 0, 1475, 1.79},
			{"PKG3", 0, 2350, 1.43},
			{"PKG4", 105, 1395, 0.86},
			{"PKG5", 0, 2125, 4.21},
		}
		for i, w := range want {
			got := result.Parcels[i]
			assert.Equal(t, w.id, got.ID)
			assert.InDelta(t, w.discount, got.Discount, 1e-9, w.id)
			assert.InDelta(t, w.total, got.TotalCost, 1e-9, w.id)
			require.NotNil(t, got.DeliveryTime, w.id)
			assert.InDelta(t, w.time, *got.DeliveryTime, 1e-9, w.id)
		}
		assert.Empty(t, result.OversizeIDs)
		assert.Len(t, result.VehicleAvailableTimes, 2)
	})

	t.Run("should store a miss and record the run", func(t *testing.T) {
		ctx := t.Context()
		cmd := newEstimateCommand(t, sampleParcels())
		key := commands.EstimateCacheKey(cmd)

		cache := new(MockEstimateCache)
		recorder := new(MockScheduleRecorder)
		cache.On("Get", ctx, key).Return(nil, ports.ErrCacheMiss).Once()
		cache.On("Set", ctx, key, mock.AnythingOfType("[]uint8"), ttl).Return(nil).Once()
		recorder.On("RecordSchedule", "estimate", mock.Anything, mock.Anything).Once()

		_, err := newHandler(t, cache, recorder).Handle(ctx, cmd)

		require.NoError(t, err)
		cache.AssertExpectations(t)
		recorder.AssertExpectations(t)
	})

	t.Run("should serve a hit without scheduling", func(t *testing.T) {
		ctx := t.Context()
		cmd := newEstimateCommand(t, sampleParcels())
		key := commands.EstimateCacheKey(cmd)

		delivery := 1.5
		cached := commands.EstimateDeliveryResult{
			Parcels: []commands.ParcelEstimate{{ID: "PKG1", TotalCost: 1, DeliveryTime: &delivery}},
		}
		raw, err := json.Marshal(cached)
		require.NoError(t, err)

		cache := new(MockEstimateCache)
		recorder := new(MockScheduleRecorder)
		cache.On("Get", ctx, key).Return(raw, nil).Once()

		result, err := newHandler(t, cache, recorder).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, result.Cached)
		require.Len(t, result.Parcels, 1)
		assert.InDelta(t, 1.5, *result.Parcels[0].DeliveryTime, 1e-12)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		recorder.AssertNotCalled(t, "RecordSchedule", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should bypass a failing cache", func(t *testing.T) {
		ctx := t.Context()
		cmd := newEstimateCommand(t, sampleParcels())

		cache := new(MockEstimateCache)
		cache.On("Get", ctx, mock.Anything).Return(nil, errors.New("connection reset")).Once()
		cache.On("Set", ctx, mock.Anything, mock.Anything, ttl).Return(errors.New("connection reset")).Once()

		result, err := newHandler(t, cache, nil).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Len(t, result.Parcels, 5)
	})

	t.Run("should report oversize and skipped parcels", func(t *testing.T) {
		cmd := newEstimateCommand(t, []batch.ParcelInput{
			{ID: "BIG", Weight: 250, Distance: 10},
			{ID: "NEG", Weight: -2, Distance: 10},
			{ID: "OK", Weight: 20, Distance: 70},
		})

		result, err := newHandler(t, nil, nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, []string{"BIG"}, result.OversizeIDs)
		require.Len(t, result.SkipMessages, 1)
		assert.Contains(t, result.SkipMessages[0], "Skipping package NEG")
		require.Len(t, result.Parcels, 2)
		assert.Nil(t, result.Parcels[0].DeliveryTime)
		assert.InDelta(t, 1, *result.Parcels[1].DeliveryTime, 1e-12)
	})
}

func TestEstimateCacheKey(t *testing.T) {
	base := newEstimateCommand(t, sampleParcels())
	same := newEstimateCommand(t, sampleParcels())
	assert.Equal(t, commands.EstimateCacheKey(base), commands.EstimateCacheKey(same))

	reversed := sampleParcels()
	reversed[0], reversed[1] = reversed[1], reversed[0]
	assert.NotEqual(t, commands.EstimateCacheKey(base), commands.EstimateCacheKey(newEstimateCommand(t, reversed)))

	changed := sampleParcels()
	changed[2].OfferCode = "OFR003"
	assert.NotEqual(t, commands.EstimateCacheKey(base), commands.EstimateCacheKey(newEstimateCommand(t, changed)))

	assert.Contains(t, commands.EstimateCacheKey(base), "estimate:")
}
