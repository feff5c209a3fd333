// Package metrics holds the Prometheus collectors exported on /metrics.
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

const namespace = "companyql"

// Collection groups the service collectors, all registered on one registry.
type Collection struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	DBUp            prometheus.Gauge
}

// NewCollection registers the service collectors together with the Go
// runtime and process collectors on a fresh registry.
func NewCollection() *Collection {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collection{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Number of HTTP requests by route, method and status code.",
			},
			[]string{"route", "method", "code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		DBUp: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "database_up",
				Help:      "1 if the last health check reached the database.",
			},
		),
	}
}

// ObserveRequest records one finished request.
func (c *Collection) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	c.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	c.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// SetDBUp records the outcome of a database health check.
func (c *Collection) SetDBUp(up bool) {
	var v float64
	if up {
		v = 1
	}
	c.DBUp.Set(v)
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collection) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
