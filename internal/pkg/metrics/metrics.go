// internal/pkg/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the storefront collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	themeResolutions *prometheus.CounterVec
	cartMutations    *prometheus.CounterVec
	requestCounter   *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		themeResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_theme_resolutions_total",
				Help: "Effective theme resolutions by the level that produced the theme",
			},
			[]string{"source"},
		),
		cartMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_cart_mutations_total",
				Help: "Cart mutations by operation and result",
			},
			[]string{"operation", "result"},
		),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storefront_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(m.themeResolutions, m.cartMutations, m.requestCounter, m.requestLatency)
	return m
}

// ThemeResolved counts one resolution served from source
func (m *Metrics) ThemeResolved(source string) {
	if m == nil {
		return
	}
	m.themeResolutions.WithLabelValues(source).Inc()
}

// CartMutation counts one cart operation and whether it was applied
func (m *Metrics) CartMutation(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	m.cartMutations.WithLabelValues(operation, result).Inc()
}

// Middleware records request count and latency per route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestCounter.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
