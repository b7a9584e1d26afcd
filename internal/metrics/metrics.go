// Package metrics provides Prometheus metrics for the API and the engines.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine names used as label values.
const (
	EngineConversion = "conversion"
	EngineWaterfall  = "waterfall"
	EngineCurve      = "curve"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds all Prometheus collectors. A nil *Metrics is valid and
// records nothing, so engines and tests can run without a registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	engineRuns         *prometheus.CounterVec
	engineDuration     *prometheus.HistogramVec
	instrumentsConvert prometheus.Counter
	tiersConverted     prometheus.Counter
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "equitylens_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "equitylens_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		engineRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "equitylens_engine_runs_total",
				Help: "Total number of engine runs by engine and outcome",
			},
			[]string{"engine", "outcome"},
		),
		engineDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "equitylens_engine_duration_seconds",
				Help:    "Engine run duration in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"engine"},
		),
		instrumentsConvert: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "equitylens_instruments_converted_total",
				Help: "Total number of SAFEs and notes converted into equity",
			},
		),
		tiersConverted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "equitylens_tiers_electing_conversion_total",
				Help: "Total number of preference tiers that elected to convert to common",
			},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records metrics for an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	status := strconv.Itoa(statusCode)
	m.requestsTotal.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordEngineRun records one engine invocation.
func (m *Metrics) RecordEngineRun(engine string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.engineRuns.WithLabelValues(engine, outcome).Inc()
	m.engineDuration.WithLabelValues(engine).Observe(duration.Seconds())
}

// AddInstrumentsConverted counts converted instruments.
func (m *Metrics) AddInstrumentsConverted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.instrumentsConvert.Add(float64(n))
}

// AddTiersConverted counts tiers that elected conversion.
func (m *Metrics) AddTiersConverted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.tiersConverted.Add(float64(n))
}
