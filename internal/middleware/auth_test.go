//go:build !integration

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subjectRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), mw)
	router.GET("/api/containers", func(c *gin.Context) {
		c.String(http.StatusOK, GetSubject(c))
	})
	return router
}

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]bool{"yard-key": true, "dock-key": true}

	tests := []struct {
		name        string
		keys        map[string]bool
		header      string
		query       string
		wantStatus  int
		wantSubject string
		wantMessage string
	}{
		{name: "header key", keys: keys, header: "yard-key", wantStatus: http.StatusOK, wantSubject: keySubject("yard-key")},
		{name: "query key", keys: keys, query: "dock-key", wantStatus: http.StatusOK, wantSubject: keySubject("dock-key")},
		{name: "header wins over query", keys: keys, header: "dock-key", query: "bogus", wantStatus: http.StatusOK, wantSubject: keySubject("dock-key")},
		{name: "missing key", keys: keys, wantStatus: http.StatusUnauthorized, wantMessage: "API key is required"},
		{name: "unknown key", keys: keys, header: "stolen", wantStatus: http.StatusUnauthorized, wantMessage: "Invalid API key"},
		{name: "auth disabled without keys", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/containers", nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			if tt.query != "" {
				req.URL.RawQuery = APIKeyQuery + "=" + tt.query
			}
			req.Header.Set(RequestIDHeader, "auth-req")
			w := httptest.NewRecorder()

			subjectRouter(APIKeyAuth(tt.keys)).ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantSubject, w.Body.String())
				return
			}

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, dto.ErrCodeUnauthorized, body.Error)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, "auth-req", body.RequestID)
		})
	}
}

func TestKeySubject(t *testing.T) {
	subject := keySubject("yard-key")

	assert.Equal(t, subject, keySubject("yard-key"))
	assert.NotEqual(t, subject, keySubject("dock-key"))
	assert.Regexp(t, `^api-key:[0-9a-f]{8}$`, subject)
	assert.NotContains(t, subject, "yard")
}
