// Package monitoring exposes Prometheus metrics for the desktop backend.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// File-system metrics
	FSOperations *prometheus.CounterVec
	FSErrors     *prometheus.CounterVec
	FSEntities   prometheus.Gauge

	// Window metrics
	WindowOperations *prometheus.CounterVec
	WindowsOpen      prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSEvents      prometheus.Counter

	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates a collector on a custom registry.
// Tests use a fresh registry so parallel packages do not collide.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		FSOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_fs_operations_total",
				Help: "Total number of file-system operations",
			},
			[]string{"operation"},
		),
		FSErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_fs_errors_total",
				Help: "Total number of file-system operation failures",
			},
			[]string{"operation", "code"},
		),
		FSEntities: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_fs_entities",
				Help: "Number of entities in the virtual file system",
			},
		),

		WindowOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_window_operations_total",
				Help: "Total number of window manager operations",
			},
			[]string{"operation"},
		),
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_windows_open",
				Help: "Number of currently open windows",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSEvents: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_ws_events_total",
				Help: "Total number of change events pushed over WebSocket",
			},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordFSOperation records a file-system operation outcome
func (m *Metrics) RecordFSOperation(operation string, code string) {
	m.FSOperations.WithLabelValues(operation).Inc()
	if code != "" {
		m.FSErrors.WithLabelValues(operation, code).Inc()
	}
}

// RecordWindowOperation records a window manager operation
func (m *Metrics) RecordWindowOperation(operation string) {
	m.WindowOperations.WithLabelValues(operation).Inc()
}

// Uptime returns time elapsed since the collector was created
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
