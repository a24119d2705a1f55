package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/services"
	"fleetdelivery/internal/core/ports"
)

const estimateKeyPrefix = "estimate:"

// ParcelEstimate is the priced and scheduled view of one parcel.
// DeliveryTime is nil for oversize parcels.
type ParcelEstimate struct {
	ID           string   `json:"id"`
	Discount     float64  `json:"discount"`
	TotalCost    float64  `json:"total_cost"`
	DeliveryTime *float64 `json:"delivery_time"`
}

// EstimateDeliveryResult is the outcome of an estimate. Parcels keep their
// input order.
type EstimateDeliveryResult struct {
	Parcels               []ParcelEstimate `json:"parcels"`
	OversizeIDs           []string         `json:"oversize_ids"`
	SkipMessages          []string         `json:"skip_messages"`
	VehicleAvailableTimes []float64        `json:"vehicle_available_times"`
	// Cached reports that the result was served from the estimate cache.
	Cached bool `json:"-"`
}

// EstimateDeliveryCommandHandler computes estimates synchronously. Results
// are memoized in an EstimateCache when one is configured; a failing cache
// is logged and bypassed.
type EstimateDeliveryCommandHandler struct {
	calculator services.CostCalculator
	scheduler  *services.DeliveryScheduler
	cache      ports.EstimateCache
	cacheTTL   time.Duration
	recorder   ports.ScheduleRecorder
	logger     *slog.Logger
}

// NewEstimateDeliveryCommandHandler creates the handler. cache and recorder
// may be nil.
func NewEstimateDeliveryCommandHandler(
	calculator services.CostCalculator,
	scheduler *services.DeliveryScheduler,
	cache ports.EstimateCache,
	cacheTTL time.Duration,
	recorder ports.ScheduleRecorder,
	logger *slog.Logger,
) EstimateDeliveryCommandHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return EstimateDeliveryCommandHandler{
		calculator: calculator,
		scheduler:  scheduler,
		cache:      cache,
		cacheTTL:   cacheTTL,
		recorder:   recorder,
		logger:     logger.With("component", "EstimateDeliveryCommandHandler"),
	}
}

func (h EstimateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd EstimateDeliveryCommand,
) (EstimateDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return EstimateDeliveryResult{}, err
	}

	key := EstimateCacheKey(cmd)
	if result, ok := h.lookup(ctx, key); ok {
		return result, nil
	}

	b, err := batch.NewBatch(kernel.NewUUID(), cmd.BaseCost(), cmd.Fleet(), cmd.Parcels())
	if err != nil {
		return EstimateDeliveryResult{}, err
	}

	started := time.Now()
	schedule, err := b.Schedule(h.calculator, h.scheduler)
	if err != nil {
		return EstimateDeliveryResult{}, err
	}
	if h.recorder != nil {
		h.recorder.RecordSchedule("estimate", schedule, time.Since(started))
	}

	result := ResultFromBatch(b)
	h.store(ctx, key, result)
	return result, nil
}

// ResultFromBatch renders a scheduled batch as an estimate result.
func ResultFromBatch(b *batch.Batch) EstimateDeliveryResult {
	parcels := b.Parcels()
	result := EstimateDeliveryResult{
		Parcels:               make([]ParcelEstimate, 0, len(parcels)),
		OversizeIDs:           b.OversizeIDs(),
		SkipMessages:          b.SkipMessages(),
		VehicleAvailableTimes: b.VehicleAvailableTimes(),
	}
	for _, p := range parcels {
		result.Parcels = append(result.Parcels, ParcelEstimate{
			ID:           p.ID(),
			Discount:     p.Discount(),
			TotalCost:    p.TotalCost(),
			DeliveryTime: p.DeliveryTime(),
		})
	}
	return result
}

// EstimateCacheKey fingerprints everything that affects an estimate.
// Parcel order is part of the key because it decides ties.
func EstimateCacheKey(cmd EstimateDeliveryCommand) string {
	d := xxhash.New()
	write := func(parts ...string) {
		for _, part := range parts {
			_, _ = d.WriteString(part)
			_, _ = d.Write([]byte{0})
		}
	}

	f := cmd.Fleet()
	write(
		formatFloat(cmd.BaseCost()),
		strconv.Itoa(f.Count()),
		formatFloat(f.MaxLoad()),
		formatFloat(f.MaxSpeed()),
	)
	for _, p := range cmd.Parcels() {
		write(p.ID, formatFloat(p.Weight), formatFloat(p.Distance), p.OfferCode)
	}

	return estimateKeyPrefix + strconv.FormatUint(d.Sum64(), 16)
}

func (h EstimateDeliveryCommandHandler) lookup(ctx context.Context, key string) (EstimateDeliveryResult, bool) {
	if h.cache == nil {
		return EstimateDeliveryResult{}, false
	}

	raw, err := h.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			h.logger.Warn("estimate cache read failed", "key", key, "error", err)
		}
		return EstimateDeliveryResult{}, false
	}

	var result EstimateDeliveryResult
	if err = json.Unmarshal(raw, &result); err != nil {
		h.logger.Warn("estimate cache entry is corrupt", "key", key, "error", err)
		return EstimateDeliveryResult{}, false
	}

	result.Cached = true
	return result, true
}

func (h EstimateDeliveryCommandHandler) store(ctx context.Context, key string, result EstimateDeliveryResult) {
	if h.cache == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		h.logger.Warn("estimate encoding failed", "key", key, "error", err)
		return
	}

	if err = h.cache.Set(ctx, key, raw, h.cacheTTL); err != nil {
		h.logger.Warn("estimate cache write failed", "key", key, "error", err)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
