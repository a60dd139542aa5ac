package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware_LabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/api/load-plans/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		target string
		path   string
		status string
	}{
		{name: "found plan", target: "/api/load-plans/abc", path: "/api/load-plans/:id", status: "200"},
		{name: "missing plan", target: "/api/load-plans/missing", path: "/api/load-plans/:id", status: "404"},
		{name: "unrouted path keeps raw URL", target: "/nowhere", path: "/nowhere", status: "404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.path, tt.status)
			before := testutil.ToFloat64(counter)

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordLoadPlan(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		leftover     int
		wantLeftover float64
	}{
		{name: "success with leftovers", status: "success", leftover: 3, wantLeftover: 3},
		{name: "complete plan", status: "success", leftover: 0, wantLeftover: 0},
		{name: "failed calculation ignores leftovers", status: "error", leftover: 7, wantLeftover: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := LoadPlansTotal.WithLabelValues(tt.status)
			before := testutil.ToFloat64(plans)
			leftoverBefore := testutil.ToFloat64(LeftoverShipmentsTotal)

			RecordLoadPlan(20*time.Millisecond, tt.status, 2, []float64{0.9, 0.35}, tt.leftover)

			assert.Equal(t, before+1, testutil.ToFloat64(plans))
			assert.Equal(t, leftoverBefore+tt.wantLeftover, testutil.ToFloat64(LeftoverShipmentsTotal))
		})
	}
}

func TestCacheMetrics(t *testing.T) {
	hits := CacheOperationsTotal.WithLabelValues("get", "hit")
	misses := CacheOperationsTotal.WithLabelValues("get", "miss")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheOperation("get", "hit")
	RecordCacheOperation("get", "miss")
	RecordCacheOperation("get", "miss")
	UpdateCacheMetrics(12, 64)

	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(hits))
	assert.Equal(t, missesBefore+2, testutil.ToFloat64(misses))
	assert.Equal(t, 12.0, testutil.ToFloat64(CacheSize))
	assert.Equal(t, 64.0, testutil.ToFloat64(CacheCapacity))
}

func TestSetCircuitBreakerState_Transitions(t *testing.T) {
	gauge := CircuitBreakerState.WithLabelValues("mongodb_load_plans")

	for _, state := range []int{0, 1, 2, 0} {
		SetCircuitBreakerState("mongodb_load_plans", state)
		assert.Equal(t, float64(state), testutil.ToFloat64(gauge))
	}
}
