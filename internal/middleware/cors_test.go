//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		origins        []string
		method         string
		origin         string
		expectedStatus int
		expectedOrigin string
	}{
		{
			name:           "preflight from allowed origin",
			origins:        []string{"https://dispatch.example.com"},
			method:         http.MethodOptions,
			origin:         "https://dispatch.example.com",
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "https://dispatch.example.com",
		},
		{
			name:           "request from default development origin",
			method:         http.MethodGet,
			origin:         "http://localhost:3000",
			expectedStatus: http.StatusOK,
			expectedOrigin: "http://localhost:3000",
		},
		{
			name:           "request from unknown origin is rejected",
			origins:        []string{"https://dispatch.example.com"},
			method:         http.MethodGet,
			origin:         "https://evil.example.com",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "same-origin request without origin header",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.origins))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_PlannerHeaders(t *testing.T) {
	router := gin.New()
	router.Use(CORS(nil))
	router.POST("/api/load-plans", func(c *gin.Context) { c.Status(http.StatusCreated) })

	preflight := httptest.NewRequest(http.MethodOptions, "/api/load-plans", nil)
	preflight.Header.Set("Origin", "http://127.0.0.1:3000")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight.Header.Set("Access-Control-Request-Headers", "Idempotency-Key, X-API-Key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, preflight)

	assert.Equal(t, http.StatusNoContent, w.Code)
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, allowed, strings.ToLower(IdempotencyKeyHeader))
	assert.Contains(t, allowed, strings.ToLower(APIKeyHeader))

	req := httptest.NewRequest(http.MethodPost, "/api/load-plans", nil)
	req.Header.Set("Origin", "http://127.0.0.1:3000")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Expose-Headers")), "x-ratelimit-remaining")
}
