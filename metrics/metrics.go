package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the portal's collectors. Each instance owns its registry so
// tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	FilterQueries    *prometheus.CounterVec
	FilterResults    *prometheus.HistogramVec
	Mutations        *prometheus.CounterVec
	PermissionErrors *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
}

func New(prefix string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		FilterQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_filter_queries_total",
				Help: "Listing filter evaluations by surface",
			},
			[]string{"surface"},
		),
		FilterResults: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_filter_result_size",
				Help:    "Number of listings returned per filter evaluation",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
			[]string{"surface"},
		),
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_mutations_total",
				Help: "Admin and public writes by entity, operation and outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),
		PermissionErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_permission_errors_total",
				Help: "Writes rejected by the store's access control",
			},
			[]string{"operation"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_listing_cache_lookups_total",
				Help: "Listing cache lookups by result",
			},
			[]string{"result"},
		),
	}
	m.Registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.FilterQueries,
		m.FilterResults,
		m.Mutations,
		m.PermissionErrors,
		m.CacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Mutation(entity, operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Mutations.WithLabelValues(entity, operation, outcome).Inc()
}
