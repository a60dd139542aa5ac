//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/cargo-loader/internal/domain/model"
	"github.com/guttosm/cargo-loader/internal/mocks"
)

func TestAuditLog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var (
		mu      sync.Mutex
		entries []*model.LogEntry
	)
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLogs", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		defer mu.Unlock()
		entries = append(entries, args.Get(1).([]*model.LogEntry)...)
	}).Return(nil)

	InitAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 1, FlushInterval: time.Hour})
	defer StopAsyncLogger()

	router := gin.New()
	router.Use(RequestID())
	router.PUT("/api/containers", func(c *gin.Context) {
		c.Set(SubjectKey, "ops")
		AuditLog(c, "replace_catalog", "container catalog replaced", map[string]interface{}{"version": 3})
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/containers", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(entries) == 1
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	entry := entries[0]
	assert.Equal(t, "container catalog replaced", entry.Message)
	assert.Equal(t, "ops", entry.Subject)
	assert.Equal(t, "replace_catalog", entry.Fields["action"])
	assert.Equal(t, 3, entry.Fields["version"])
}

func TestAuditLog_NoLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	StopAsyncLogger()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPut, "/api/containers", nil)
	assert.NotPanics(t, func() { AuditLog(c, "replace_catalog", "noop", nil) })
}
