// Package metrics exposes Prometheus collectors for lookups and upstream provider calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup kinds and results used as label values.
const (
	KindWhois = "whois"
	KindCerts = "certs"

	ResultOK          = "ok"
	ResultNotFound    = "not_found"
	ResultInvalid     = "invalid"
	ResultUnavailable = "unavailable"
)

// Metrics holds the collectors registered on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	LookupsTotal          *prometheus.CounterVec
	LookupDuration        *prometheus.HistogramVec
	ProviderRequestsTotal *prometheus.CounterVec
	ProviderResultItems   *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lookup_requests_total",
				Help: "Lookups handled, by kind and result",
			},
			[]string{"kind", "result"},
		),
		LookupDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lookup_duration_seconds",
				Help:    "Time spent serving a lookup, including the upstream call",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"kind"},
		),
		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_requests_total",
				Help: "Calls to upstream WHOIS and certificate-transparency providers",
			},
			[]string{"provider", "result"},
		),
		ProviderResultItems: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "provider_result_items",
				Help:    "Number of sections or certificates returned per provider call",
				Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 500, 1000, 5000},
			},
			[]string{"provider"},
		),
	}
}

// ObserveLookup records the outcome and latency of one lookup.
func (m *Metrics) ObserveLookup(kind, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(kind, result).Inc()
	m.LookupDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveProvider records one upstream call and, on success, how many items it returned.
func (m *Metrics) ObserveProvider(provider string, items int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.ProviderRequestsTotal.WithLabelValues(provider, "error").Inc()
		return
	}
	m.ProviderRequestsTotal.WithLabelValues(provider, "ok").Inc()
	m.ProviderResultItems.WithLabelValues(provider).Observe(float64(items))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
