package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	httpin "fleetdelivery/internal/adapters/in/http"
	"fleetdelivery/internal/adapters/out/offeryaml"
	"fleetdelivery/internal/adapters/out/postgres/batchrepo"
	"fleetdelivery/internal/adapters/out/redis/estimatecache"
	"fleetdelivery/internal/core/ports"
)

const shutdownTimeout = 10 * time.Second

// RunServer connects to PostgreSQL and Redis, starts the batch scheduling
// job and serves HTTP until ctx is cancelled.
func RunServer(ctx context.Context, config Config, logger *slog.Logger) error {
	gormDB, err := OpenDatabase(config)
	if err != nil {
		return err
	}

	catalog, err := offeryaml.LoadFile(config.OffersFile)
	if err != nil {
		return err
	}

	cache, closeCache := openCache(ctx, config, logger)
	defer closeCache()

	app, err := NewCompositionRoot(config, gormDB, catalog, cache, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := httpin.NewRouter(app.CreateHTTPServer(), app.CreateRouterConfig())

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", config.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("HTTP server shutting down")
	return e.Shutdown(shutdownCtx)
}

// OpenDatabase opens the PostgreSQL connection and migrates the schema.
func OpenDatabase(config Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = batchrepo.AutoMigrate(gormDB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return gormDB, nil
}

// openCache returns a nil cache when Redis is not configured or unreachable;
// estimates are then computed on every request.
func openCache(ctx context.Context, config Config, logger *slog.Logger) (ports.EstimateCache, func()) {
	if config.RedisAddr == "" {
		return nil, func() {}
	}

	cache, err := estimatecache.New(ctx, estimatecache.Config{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err != nil {
		logger.Warn("Redis cache unavailable, running without caching", "error", err)
		return nil, func() {}
	}

	logger.Info("Redis cache initialized", "addr", config.RedisAddr)
	return cache, func() { _ = cache.Close() }
}

// NewLogger returns the JSON slog logger used by the server.
func NewLogger(config Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
}
