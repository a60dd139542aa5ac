//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cargo-loader/internal/domain/model"
	"github.com/guttosm/cargo-loader/internal/mocks"
)

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   string
	}{
		{statusCode: 200, expected: "info"},
		{statusCode: 301, expected: "info"},
		{statusCode: 400, expected: "warn"},
		{statusCode: 422, expected: "warn"},
		{statusCode: 500, expected: "error"},
		{statusCode: 503, expected: "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			assert.Equal(t, tt.expected, getLogLevel(tt.statusCode))
		})
	}
}

func TestRequestLogger_StoresEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	StopAsyncLogger()

	stored := make(chan *model.LogEntry, 1)
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLog", mock.Anything, mock.AnythingOfType("*model.LogEntry")).
		Run(func(args mock.Arguments) { stored <- args.Get(1).(*model.LogEntry) }).
		Return(nil)

	router := gin.New()
	router.Use(RequestID(), RequestLogger(svc))
	router.POST("/api/load-plans/:id", func(c *gin.Context) {
		c.Set(SubjectKey, "planner")
		SetPlanID(c, "plan-42")
		_ = c.Error(errors.New("partial plan"))
		c.Status(http.StatusUnprocessableEntity)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/load-plans/abc", nil))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	select {
	case entry := <-stored:
		assert.Equal(t, "warn", entry.Level)
		assert.Equal(t, "/api/load-plans/:id", entry.Path, "route pattern keeps log paths bounded")
		assert.Equal(t, "plan-42", entry.PlanID)
		assert.Equal(t, "planner", entry.Subject)
		assert.Equal(t, "partial plan", entry.Error)
		assert.NotEmpty(t, entry.RequestID)
	case <-time.After(2 * time.Second):
		t.Fatal("log entry was not stored")
	}
}

func TestRequestLogger_WithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestLogger(nil))
	router.GET("/unrouted-ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unrouted-ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
