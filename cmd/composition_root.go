package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpin "fleetdelivery/internal/adapters/in/http"
	"fleetdelivery/internal/adapters/out/postgres"
	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/application/usecases/queries"
	"fleetdelivery/internal/core/domain/model/offer"
	"fleetdelivery/internal/core/domain/services"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/jobs"
	"fleetdelivery/internal/metrics"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	calculator services.CostCalculator
	scheduler  *services.DeliveryScheduler
	cache      ports.EstimateCache
	metrics    *metrics.Recorder
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. gormDB and cache may be nil for
// the command line, which only uses the estimate handler.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	catalog *offer.Catalog,
	cache ports.EstimateCache,
	logger *slog.Logger,
) (CompositionRoot, error) {
	calculator, err := services.NewCostCalculator(catalog)
	if err != nil {
		return CompositionRoot{}, err
	}

	root := CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		calculator: calculator,
		scheduler:  services.NewDeliveryScheduler(logger),
		cache:      cache,
		metrics:    metrics.NewRecorder(),
		logger:     logger,
	}
	if gormDB != nil {
		root.uowFactory = *postgres.NewGormUnitOfWorkFactory(gormDB)
	}
	return root, nil
}

func (c *CompositionRoot) Calculator() services.CostCalculator {
	return c.calculator
}

func (c *CompositionRoot) Metrics() *metrics.Recorder {
	return c.metrics
}

func (c *CompositionRoot) CreateEstimateDeliveryCommandHandler() commands.EstimateDeliveryCommandHandler {
	return commands.NewEstimateDeliveryCommandHandler(
		c.calculator, c.scheduler, c.cache, c.config.EstimateTTL, c.metrics, c.logger,
	)
}

func (c *CompositionRoot) CreateCreateBatchCommandHandler() commands.CreateBatchCommandHandler {
	return commands.NewCreateBatchCommandHandler(c.batchUoWFactory())
}

func (c *CompositionRoot) CreateScheduleBatchCommandHandler() commands.ScheduleBatchCommandHandler {
	return commands.NewScheduleBatchCommandHandler(c.batchUoWFactory(), c.calculator, c.scheduler, c.metrics)
}

func (c *CompositionRoot) CreateGetBatchQueryHandler() queries.GetBatchQueryHandler {
	return queries.NewGetBatchQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateEstimateDeliveryCommandHandler(),
		c.CreateCreateBatchCommandHandler(),
		c.CreateGetBatchQueryHandler(),
		c.config.MaxParcels,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouterConfig() httpin.RouterConfig {
	return httpin.RouterConfig{
		RateLimit:   c.config.RateLimit,
		RateBurst:   c.config.RateBurst,
		BodyLimit:   c.config.BodyLimit,
		ServiceName: c.config.ServiceName,
		Metrics:     c.metrics,
		Logger:      c.logger,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateScheduleBatchCommandHandler(), c.config.BatchSchedule, c.logger)
}

func (c *CompositionRoot) batchUoWFactory() commands.BatchUoWFactory {
	return FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
}

type FuncBatchUoWFactory func() commands.BatchUoW

func (f FuncBatchUoWFactory) Create() commands.BatchUoW {
	return f()
}
