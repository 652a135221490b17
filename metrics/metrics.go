// Package metrics holds the Prometheus collectors for HTTP traffic and
// population projections.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the service metrics. All recording methods are safe to
// call on a nil *Collector.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	ProjectedVillages *prometheus.CounterVec
	ProjectionErrors  *prometheus.CounterVec
}

// New registers the collectors against reg, defaulting to the global
// Prometheus registry when nil. Registering twice against the same registry
// reuses the existing collectors.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "census_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by route, method and status code.",
	}, []string{"route", "method", "code"}), "census_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "census_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"route", "method"}), "census_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	villages, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "census_projected_villages_total",
		Help: "Villages projected, labeled by projection mode.",
	}, []string{"mode"}), "census_projected_villages_total")
	if err != nil {
		return nil, err
	}

	projectionErrors, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "census_projection_errors_total",
		Help: "Rejected or failed projection requests, labeled by error code.",
	}, []string{"code"}), "census_projection_errors_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		HTTPRequests:      requests,
		HTTPDurations:     durations,
		ProjectedVillages: villages,
		ProjectionErrors:  projectionErrors,
	}, nil
}

// ObserveRequest records one handled HTTP request.
func (c *Collector) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.HTTPRequests != nil {
		c.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	}
	if c.HTTPDurations != nil {
		c.HTTPDurations.WithLabelValues(route, method).Observe(elapsed.Seconds())
	}
}

// ObserveProjection counts the villages of a successful projection.
func (c *Collector) ObserveProjection(mode string, villages int) {
	if c == nil || c.ProjectedVillages == nil {
		return
	}
	c.ProjectedVillages.WithLabelValues(mode).Add(float64(villages))
}

// ObserveProjectionError counts a projection request that ended in an error.
func (c *Collector) ObserveProjectionError(code string) {
	if c == nil || c.ProjectionErrors == nil {
		return
	}
	c.ProjectionErrors.WithLabelValues(code).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
