package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/offer"
	"fleetdelivery/internal/core/domain/model/vehicle"
	"fleetdelivery/internal/core/domain/services"
	"fleetdelivery/internal/core/ports"
)

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) GetFirstInCreatedStatus(ctx context.Context) (*batch.Batch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

type MockBatchUoW struct{ mock.Mock }

func (m *MockBatchUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

type MockBatchUoWFactory struct{ mock.Mock }

func (m *MockBatchUoWFactory) Create() commands.BatchUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchUoW)
}

type MockEstimateCache struct{ mock.Mock }

func (m *MockEstimateCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEstimateCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

type MockScheduleRecorder struct{ mock.Mock }

func (m *MockScheduleRecorder) RecordSchedule(source string, schedule services.Schedule, elapsed time.Duration) {
	m.Called(source, schedule, elapsed)
}

func testFleet(t *testing.T) vehicle.FleetConfig {
	t.Helper()
	cfg, err := vehicle.NewFleetConfig(2, 200, 70)
	require.NoError(t, err)
	return cfg
}

func testCalculator(t *testing.T) services.CostCalculator {
	t.Helper()
	calc, err := services.NewCostCalculator(offer.DefaultCatalog())
	require.NoError(t, err)
	return calc
}

func sampleParcels() []batch.ParcelInput {
	return []batch.ParcelInput{
		{ID: "PKG1", Weight: 50, Distance: 30, OfferCode: "OFR001"},
		{ID: "PKG2", Weight: 75, Distance: 125, OfferCode: "OFFR0008"},
		{ID: "PKG3", Weight: 175, Distance: 100, OfferCode: "OFFR003"},
		{ID: "PKG4", Weight: 110, Distance: 60, OfferCode: "OFR002"},
		{ID: "PKG5", Weight: 155, Distance: 95, OfferCode: "NA"},
	}
}
