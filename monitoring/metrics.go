package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the kernel and its HTTP runner.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Kernel lifecycle metrics
	BootDuration       prometheus.Gauge
	ExtensionDuration  *prometheus.HistogramVec
	ServicesRegistered prometheus.Gauge
	EventsDispatched   *prometheus.CounterVec
	PanicsRecovered    prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry
}

// New creates a metrics collector backed by its own registry, so multiple
// kernels in one process (tests, embedded use) do not collide.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		startTime: time.Now(),
		registry:  registry,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hearth_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hearth_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hearth_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hearth_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		BootDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hearth_boot_duration_seconds",
				Help: "Duration of the last kernel boot",
			},
		),
		ExtensionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hearth_extension_hook_duration_seconds",
				Help:    "Extension hook execution duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"extension", "hook"},
		),
		ServicesRegistered: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hearth_services_registered",
				Help: "Number of service definitions in the container",
			},
		),
		EventsDispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hearth_events_dispatched_total",
				Help: "Total number of lifecycle events dispatched",
			},
			[]string{"event"},
		),
		PanicsRecovered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hearth_panics_recovered_total",
				Help: "Total number of panics recovered by the error handler",
			},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hearth_uptime_seconds",
				Help: "Process uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric.
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// Handler returns the Prometheus scrape handler for this collector.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordBoot records the duration of a completed kernel boot.
func (m *Metrics) RecordBoot(duration time.Duration) {
	m.BootDuration.Set(duration.Seconds())
}

// RecordEvent records a dispatched lifecycle event.
func (m *Metrics) RecordEvent(name string) {
	m.EventsDispatched.WithLabelValues(name).Inc()
}

// RecordPanic records a panic recovered during request handling.
func (m *Metrics) RecordPanic() {
	m.PanicsRecovered.Inc()
}

// SetServicesRegistered sets the number of container definitions.
func (m *Metrics) SetServicesRegistered(count int) {
	m.ServicesRegistered.Set(float64(count))
}

// HookTimer measures extension hook duration.
type HookTimer struct {
	start     time.Time
	metrics   *Metrics
	extension string
	hook      string
}

// NewHookTimer creates a timer for one extension hook invocation.
func NewHookTimer(metrics *Metrics, extension, hook string) *HookTimer {
	return &HookTimer{
		start:     time.Now(),
		metrics:   metrics,
		extension: extension,
		hook:      hook,
	}
}

// Stop stops the timer and records the duration.
func (t *HookTimer) Stop() {
	t.metrics.ExtensionDuration.WithLabelValues(t.extension, t.hook).Observe(time.Since(t.start).Seconds())
}
