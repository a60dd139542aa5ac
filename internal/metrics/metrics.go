// Package metrics provides Prometheus metrics collection for the cargo loader.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// LoadPlansTotal counts load calculations by outcome.
	LoadPlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "load_plans_total",
			Help: "Total number of load plan calculations",
		},
		[]string{"status"},
	)

	// LoadPlanDuration tracks how long the placement engine runs.
	LoadPlanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "load_plan_duration_seconds",
			Help:    "Load plan calculation duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// ContainersPerPlan tracks how many containers a plan needs.
	ContainersPerPlan = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "load_plan_containers",
			Help:    "Number of containers per load plan",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	// ContainerVolumeShare tracks the loaded volume share of each filled container.
	ContainerVolumeShare = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "load_plan_container_volume_share",
			Help:    "Loaded fraction of container volume",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	// LeftoverShipmentsTotal counts shipments that could not be placed.
	LeftoverShipmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "load_plan_leftover_shipments_total",
			Help: "Total number of shipments left unplaced",
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState exposes breaker state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordLoadPlan records the outcome of one load calculation.
func RecordLoadPlan(duration time.Duration, status string, containers int, shares []float64, leftover int) {
	LoadPlanDuration.Observe(duration.Seconds())
	LoadPlansTotal.WithLabelValues(status).Inc()
	if status == "error" {
		return
	}
	ContainersPerPlan.Observe(float64(containers))
	for _, s := range shares {
		ContainerVolumeShare.Observe(s)
	}
	if leftover > 0 {
		LeftoverShipmentsTotal.Add(float64(leftover))
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState publishes the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
