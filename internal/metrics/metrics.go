// Package metrics holds the Prometheus collectors for the SmartTravel API.
// Every recording method is safe on a nil *Metrics, so services and tests
// can run without a registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smarttravel"

// Deal sources recorded by DealSource.
const (
	SourceProvider  = "provider"
	SourceGenerator = "generator"
	SourceFallback  = "fallback"
)

// Metrics holds all prometheus collectors.
type Metrics struct {
	reg *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	TripsPlanned   prometheus.Counter
	DealSources    *prometheus.CounterVec
	ProviderErrors prometheus.Counter
	EmailsSent     *prometheus.CounterVec
	SheetsRows     prometheus.Counter
	StatsRefreshes *prometheus.CounterVec
}

// New registers all collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		TripsPlanned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_planned_total",
			Help:      "Trips that completed the planning flow.",
		}),
		DealSources: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deal_candidates_total",
			Help:      "Candidate offers evaluated, by where they came from.",
		}, []string{"source"}),
		ProviderErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Failed calls to the remote deal provider.",
		}),
		EmailsSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Emails attempted, by kind and result.",
		}, []string{"kind", "result"}),
		SheetsRows: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheets_rows_pushed_total",
			Help:      "Agent-log rows pushed to Google Sheets.",
		}),
		StatsRefreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_stats_refresh_total",
			Help:      "Agent statistics refresh runs, by result.",
		}, []string{"result"}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TripPlanned counts one completed planning run.
func (m *Metrics) TripPlanned() {
	if m == nil {
		return
	}
	m.TripsPlanned.Inc()
}

// DealSource records n candidates obtained from source.
func (m *Metrics) DealSource(source string, n int) {
	if m == nil {
		return
	}
	m.DealSources.WithLabelValues(source).Add(float64(n))
}

// ProviderError counts one failed provider call.
func (m *Metrics) ProviderError() {
	if m == nil {
		return
	}
	m.ProviderErrors.Inc()
}

// EmailResult records one email attempt of the given kind.
func (m *Metrics) EmailResult(kind string, err error) {
	if m == nil {
		return
	}
	m.EmailsSent.WithLabelValues(kind, result(err)).Inc()
}

// SheetsPushed records rows sent to Google Sheets.
func (m *Metrics) SheetsPushed(rows int) {
	if m == nil {
		return
	}
	m.SheetsRows.Add(float64(rows))
}

// StatsRefreshed records one agent statistics refresh.
func (m *Metrics) StatsRefreshed(err error) {
	if m == nil {
		return
	}
	m.StatsRefreshes.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
