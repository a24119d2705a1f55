// Package metrics exposes Prometheus collectors for scheduling runs and HTTP
// traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleetdelivery/internal/core/domain/services"
	"fleetdelivery/internal/core/ports"
)

// Recorder implements ports.ScheduleRecorder on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	runs         *prometheus.CounterVec
	trips        *prometheus.CounterVec
	parcels      *prometheus.CounterVec
	oversize     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

var _ ports.ScheduleRecorder = (*Recorder)(nil)

// NewRecorder builds a registry holding the scheduling, HTTP, Go runtime and
// process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "schedule_runs_total", Help: "Completed scheduling runs."},
			[]string{"source"},
		),
		trips: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "schedule_trips_total", Help: "Trips dispatched."},
			[]string{"source"},
		),
		parcels: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "schedule_parcels_delivered_total", Help: "Parcels given a delivery time."},
			[]string{"source"},
		),
		oversize: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "schedule_parcels_oversize_total", Help: "Parcels heavier than the vehicle max load."},
			[]string{"source"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schedule_run_duration_seconds",
				Help:    "Scheduling run duration in seconds.",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"source"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
			[]string{"method", "path", "status"},
		),
	}

	r.registry.MustRegister(
		r.runs, r.trips, r.parcels, r.oversize, r.duration,
		r.HTTPRequests, r.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) RecordSchedule(source string, schedule services.Schedule, elapsed time.Duration) {
	delivered := 0
	for _, d := range schedule.Dispatches {
		delivered += len(d.ParcelIDs)
	}

	r.runs.WithLabelValues(source).Inc()
	r.trips.WithLabelValues(source).Add(float64(len(schedule.Dispatches)))
	r.parcels.WithLabelValues(source).Add(float64(delivered))
	r.oversize.WithLabelValues(source).Add(float64(len(schedule.Oversize)))
	r.duration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Registry returns the registry backing the recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
