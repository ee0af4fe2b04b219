package devserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the dev server's Prometheus collectors. Each server owns its
// registry so several can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	WSConnections prometheus.Gauge
	WSMessages    prometheus.Counter

	CSSUpdates    prometheus.Counter
	CSSBytes      prometheus.Gauge
	ClassesTotal  prometheus.Gauge
	Unresolved    prometheus.Gauge
	InjectedPages prometheus.Counter
}

// NewMetrics registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "las_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "las_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route"},
		),

		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "las_ws_connections",
			Help: "Number of connected hot-update clients",
		}),
		WSMessages: factory.NewCounter(prometheus.CounterOpts{
			Name: "las_ws_messages_total",
			Help: "Total number of hot-update messages sent",
		}),

		CSSUpdates: factory.NewCounter(prometheus.CounterOpts{
			Name: "las_css_updates_total",
			Help: "Total number of stylesheet regenerations pushed to clients",
		}),
		CSSBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "las_css_bytes",
			Help: "Size of the current stylesheet in bytes",
		}),
		ClassesTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "las_classes",
			Help: "Number of distinct class tokens seen",
		}),
		Unresolved: factory.NewGauge(prometheus.GaugeOpts{
			Name: "las_unresolved_classes",
			Help: "Number of class tokens that produced no CSS",
		}),
		InjectedPages: factory.NewCounter(prometheus.CounterOpts{
			Name: "las_injected_pages_total",
			Help: "Total number of HTML pages served with the stylesheet injected",
		}),
	}
}

// Middleware records request count and duration per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "static"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
