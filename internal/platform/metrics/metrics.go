// Package metrics owns the prometheus registry and the case lifecycle counters.
// A nil *Metrics is valid and records nothing
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "caseline"

// Metrics holds the registered collectors
type Metrics struct {
	reg *prometheus.Registry

	minted    *prometheus.CounterVec
	destroyed *prometheus.CounterVec
	units     prometheus.Counter
	sweepErrs prometheus.Counter
	requests  *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, including the go and process collectors
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		minted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_minted_total",
			Help:      "Cases created with a freshly minted identifier.",
		}, []string{"source"}),
		destroyed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_destroyed_total",
			Help:      "Empty cases deleted.",
		}, []string{"source"}),
		units: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_recorded_total",
			Help:      "Unit values recorded into cases.",
		}),
		sweepErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_errors_total",
			Help:      "Sweeper passes that failed for an organization.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.minted, m.destroyed, m.units, m.sweepErrs, m.requests,
	)
	return m
}

// Registry exposes the registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

type sourceKey struct{}

// WithSource tags ctx with what triggered the lifecycle changes made under it
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// Source returns the tag set by WithSource, or "api"
func Source(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok && s != "" {
		return s
	}
	return "api"
}

// CaseMinted counts one new case; source is "api", "auto", "cli" or "sweeper"
func (m *Metrics) CaseMinted(source string) {
	if m != nil {
		m.minted.WithLabelValues(source).Inc()
	}
}

// CasesDestroyed counts n deleted cases
func (m *Metrics) CasesDestroyed(source string, n int) {
	if m != nil && n > 0 {
		m.destroyed.WithLabelValues(source).Add(float64(n))
	}
}

// UnitRecorded counts one stored unit value
func (m *Metrics) UnitRecorded() {
	if m != nil {
		m.units.Inc()
	}
}

// SweepFailed counts one failed sweep for an organization
func (m *Metrics) SweepFailed() {
	if m != nil {
		m.sweepErrs.Inc()
	}
}

// ObserveRequest matches middleware.Observer
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m != nil {
		m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
	}
}
