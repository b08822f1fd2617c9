// Package metrics exposes Prometheus metrics on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "hitung"

// Collector holds the application metrics. Each Collector owns its registry,
// so several can coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Conversions  *prometheus.CounterVec
	Calculations *prometheus.CounterVec
	Searches     *prometheus.CounterVec

	Lookups        *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
}

// NewCollector creates and registers the metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "conversions_total",
			Help:      "Unit conversions by category and outcome",
		}, []string{"category", "outcome"}),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "calculations_total",
			Help:      "Formula evaluations by calculator and outcome",
		}, []string{"calculator", "outcome"}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "searches_total",
			Help:      "Catalog searches by mode",
		}, []string{"mode"}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "lookups_total",
			Help:      "External lookups by service and outcome",
		}, []string{"service", "outcome"}),
		LookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "lookup_duration_seconds",
			Help:      "External lookup duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service"}),
	}
	c.registry.MustRegister(
		c.HTTPRequests, c.HTTPDuration,
		c.Conversions, c.Calculations, c.Searches,
		c.Lookups, c.LookupDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveLookup records one lookup against service.
func (c *Collector) ObserveLookup(service, outcome string, elapsed time.Duration) {
	c.Lookups.WithLabelValues(service, outcome).Inc()
	c.LookupDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

// Middleware records request counts and latency by chi route pattern.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
