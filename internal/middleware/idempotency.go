package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-loader/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the HTTP header carrying the client's idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a captured response can be replayed.
	IdempotencyKeyTTL = 5 * time.Minute

	defaultIdempotencyCapacity = 10000
)

// cachedResponse is a captured response body with its status and headers.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Body        []byte
}

// IdempotencyConfig holds configuration for the idempotency middleware.
type IdempotencyConfig struct {
	Cache   cache.Cache[cachedResponse]
	Enabled bool
}

// DefaultIdempotencyConfig returns an enabled config backed by a TTL cache.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   cache.NewTTL[cachedResponse](defaultIdempotencyCapacity, IdempotencyKeyTTL),
		Enabled: true,
	}
}

// Idempotency replays the stored response for a repeated POST, PUT or PATCH
// carrying the same Idempotency-Key, method, path, subject and body.
// Only 2xx responses are stored.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, err := idempotencyCacheKey(key, GetSubject(c), c.Request)
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}

		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			for k, v := range cached.Headers {
				c.Header(k, v)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode < 200 || writer.statusCode >= 300 {
			return
		}
		headers := make(map[string]string)
		for _, name := range []string{RequestIDHeader, "Location"} {
			if v := writer.Header().Get(name); v != "" {
				headers[name] = v
			}
		}
		cfg.Cache.Set(cacheKey, cachedResponse{
			StatusCode:  writer.statusCode,
			ContentType: writer.Header().Get("Content-Type"),
			Headers:     headers,
			Body:        bytes.Clone(writer.body.Bytes()),
		})
	}
}

// idempotencyCacheKey hashes the request identity. The body is restored for
// downstream handlers.
func idempotencyCacheKey(key, subject string, req *http.Request) (string, error) {
	d := xxhash.New()
	for _, part := range []string{key, req.Method, req.URL.Path, subject} {
		_, _ = d.WriteString(part)
		_, _ = d.Write([]byte{0})
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		_, _ = d.Write(body)
	}

	return strconv.FormatUint(d.Sum64(), 16), nil
}

// responseWriter tees the response body for caching.
type responseWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
