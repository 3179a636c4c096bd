// Package observability provides Prometheus metrics for the launchpad service.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	// Domain metrics
	ProjectsCreated      prometheus.Counter
	ContributionsTotal   *prometheus.CounterVec
	ContributedAmount    *prometheus.CounterVec
	ValidationFailures   *prometheus.CounterVec
	StatusTransitions    *prometheus.CounterVec
	StoreOperationErrors *prometheus.CounterVec

	// Latency metrics
	StoreLatency    *prometheus.HistogramVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a Metrics instance on its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "launchpad"
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ProjectsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projects_created_total",
			Help:      "Total number of projects created",
		}),
		ContributionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contributions_total",
			Help:      "Total number of confirmed contributions",
		}, []string{"currency"}),
		ContributedAmount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contributed_amount_total",
			Help:      "Sum of confirmed contribution amounts",
		}, []string{"currency"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected form fields by form and error code",
		}, []string{"form", "code"}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Project status transitions applied by the scheduler",
		}, []string{"from", "to"}),
		StoreOperationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operation_errors_total",
			Help:      "Failed store operations",
		}, []string{"operation"}),

		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_seconds",
			Help:      "Store operation latency including simulated delays",
			Buckets:   []float64{.001, .01, .1, .5, 1, 2, 3, 5, 10},
		}, []string{"operation"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveStore records the latency of a store operation and counts it as failed when err is non-nil.
func (m *Metrics) ObserveStore(operation string, start time.Time, err error) {
	m.StoreLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		m.StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
