package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"fleetdelivery/internal/metrics"
)

// RouterConfig tunes the middleware chain. A zero RateLimit disables rate
// limiting; a nil Metrics disables /metrics and request metrics. BodyLimit
// uses echo's size format ("256K", "1M") and is unlimited when empty.
type RouterConfig struct {
	RateLimit   float64
	RateBurst   int
	BodyLimit   string
	ServiceName string
	Metrics     *metrics.Recorder
	Logger      *slog.Logger
}

// NewRouter registers the API routes and middleware on a fresh echo instance.
func NewRouter(server *Server, cfg RouterConfig) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	if cfg.ServiceName != "" {
		e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(cfg.ServiceName)))
	}
	if cfg.Metrics != nil {
		e.Use(requestMetrics(cfg.Metrics))
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}

	e.GET("/health", server.Health)

	api := e.Group("/api/v1")
	if cfg.BodyLimit != "" {
		api.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
	if cfg.RateLimit > 0 {
		api.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     cfg.RateBurst,
				ExpiresIn: 3 * time.Minute,
			},
		)))
	}
	api.POST("/estimates", server.Estimate)
	api.POST("/batches", server.CreateBatch)
	api.GET("/batches/:id", server.GetBatch)

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.DebugContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}

func requestMetrics(recorder *metrics.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}

			labels := []string{c.Request().Method, c.Path(), strconv.Itoa(status)}
			recorder.HTTPRequests.WithLabelValues(labels...).Inc()
			recorder.HTTPDuration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
			return err
		}
	}
}
