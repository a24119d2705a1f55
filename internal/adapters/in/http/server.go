package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/application/usecases/queries"
	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/vehicle"
	"fleetdelivery/internal/pkg/errs"
)

type estimator interface {
	Handle(ctx context.Context, cmd commands.EstimateDeliveryCommand) (commands.EstimateDeliveryResult, error)
}

type batchCreator interface {
	Handle(ctx context.Context, cmd commands.CreateBatchCommand) ([]string, error)
}

type batchReader interface {
	Handle(ctx context.Context, query queries.GetBatchQuery) (*queries.GetBatchQueryResponse, error)
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	// Command handlers
	estimateHandler    estimator
	createBatchHandler batchCreator

	// Query handlers
	getBatchHandler batchReader

	maxParcels int
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query
// handlers. maxParcels bounds the parcels of one request; zero means
// commands.DefaultMaxParcels.
func NewServer(
	estimateHandler estimator,
	createBatchHandler batchCreator,
	getBatchHandler batchReader,
	maxParcels int,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		estimateHandler:    estimateHandler,
		createBatchHandler: createBatchHandler,
		getBatchHandler:    getBatchHandler,
		maxParcels:         maxParcels,
		logger:             logger.With("component", "http_server"),
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// Estimate handles POST /api/v1/estimates - prices and schedules parcels
// synchronously.
func (s *Server) Estimate(ctx echo.Context) error {
	var req DeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid request body", err)
	}

	fleet, err := vehicle.NewFleetConfig(req.Fleet.Count, req.Fleet.MaxLoad, req.Fleet.MaxSpeed)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid fleet: "+err.Error(), err)
	}

	cmd, err := commands.NewEstimateDeliveryCommand(req.BaseCost, fleet, req.parcelInputs(), s.maxParcels)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid estimate request: "+err.Error(), err)
	}

	result, err := s.estimateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, statusFor(err), "Failed to estimate delivery: "+err.Error(), err)
	}

	if result.Cached {
		ctx.Response().Header().Set("X-Cache", "HIT")
	}
	return ctx.JSON(http.StatusOK, estimateBody(result))
}

// CreateBatch handles POST /api/v1/batches - queues parcels for the
// scheduling job.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var req DeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid request body", err)
	}

	fleet, err := vehicle.NewFleetConfig(req.Fleet.Count, req.Fleet.MaxLoad, req.Fleet.MaxSpeed)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid fleet: "+err.Error(), err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateBatchCommand(id, req.BaseCost, fleet, req.parcelInputs(), s.maxParcels)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid batch: "+err.Error(), err)
	}

	skipped, err := s.createBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, statusFor(err), "Failed to create batch", err)
	}

	return ctx.JSON(http.StatusAccepted, CreatedBatch{
		ID:           id.String(),
		SkipMessages: nonNil(skipped),
	})
}

// GetBatch handles GET /api/v1/batches/:id.
func (s *Server) GetBatch(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid batch id", err)
	}

	query, err := queries.NewGetBatchQuery(id)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid batch id", err)
	}

	resp, err := s.getBatchHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, statusFor(err), "Failed to retrieve batch", err)
	}

	return ctx.JSON(http.StatusOK, batchStateFromQuery(resp))
}

func (s *Server) fail(ctx echo.Context, status int, message string, err error) error {
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), message,
			"path", ctx.Path(), "error", err)
	}
	return ctx.JSON(status, Error{Code: status, Message: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, batch.ErrBatchAlreadyScheduled):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrParcelsAreRequired),
		errors.Is(err, commands.ErrTooManyParcels):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
