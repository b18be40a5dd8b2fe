package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP and business collectors of one registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	recipesCreated   prometheus.Counter
	reviewsCreated   prometheus.Counter
	usersRegistered  prometheus.Counter
	cookingFinished  *prometheus.CounterVec
	rateLimitDenials *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		}),
		recipesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "recipes_created_total",
			Help: "Total number of recipes created",
		}),
		reviewsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "reviews_created_total",
			Help: "Total number of reviews submitted",
		}),
		usersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of registered users",
		}),
		cookingFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cooking_sessions_finished_total",
			Help: "Cooking sessions finished, by completion",
		}, []string{"completed"}),
		rateLimitDenials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limit_denials_total",
			Help: "Requests rejected by a rate limiter",
		}, []string{"route"}),
	}
}

// Middleware records request counts, latency and in-flight requests.
// Unmatched routes are grouped under one label to bound cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		if status == http.StatusTooManyRequests {
			m.rateLimitDenials.WithLabelValues(route).Inc()
		}
	}
}

// The business counters below are no-ops on a nil *Metrics

func (m *Metrics) RecipeCreated() {
	if m != nil {
		m.recipesCreated.Inc()
	}
}

func (m *Metrics) ReviewCreated() {
	if m != nil {
		m.reviewsCreated.Inc()
	}
}

func (m *Metrics) UserRegistered() {
	if m != nil {
		m.usersRegistered.Inc()
	}
}

func (m *Metrics) CookingFinished(completed bool) {
	if m != nil {
		m.cookingFinished.WithLabelValues(strconv.FormatBool(completed)).Inc()
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
