package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cargo-loader/internal/domain/model"
	"github.com/guttosm/cargo-loader/internal/logger"
	"github.com/guttosm/cargo-loader/internal/service"
)

// PlanIDKey is the context key handlers set to link a request to its plan.
const PlanIDKey = "plan_id"

// SetPlanID records the plan produced or read by the current request.
func SetPlanID(c *gin.Context, id string) {
	c.Set(PlanIDKey, id)
}

// RequestLogger returns a middleware that logs every request to the console
// and, when loggingService is set, persists it through the async logger.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := &model.LogEntry{
			Timestamp:  start,
			Level:      getLogLevel(c.Writer.Status()),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.FullPath(),
			StatusCode: c.Writer.Status(),
			Duration:   time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			PlanID:     c.GetString(PlanIDKey),
			Subject:    GetSubject(c),
		}
		if entry.Path == "" {
			entry.Path = c.Request.URL.Path
		}
		if last := c.Errors.Last(); last != nil {
			entry.Error = last.Error()
		}

		log := logger.Logger()
		event := log.Info()
		switch entry.Level {
		case "error":
			event = log.Error()
		case "warn":
			event = log.Warn()
		}
		event.
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", entry.StatusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("plan_id", entry.PlanID).
			Str("error", entry.Error).
			Msg(entry.Message)

		if loggingService == nil {
			return
		}
		if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
			asyncLogger.Log(entry)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := loggingService.CreateLog(ctx, entry); err != nil {
				log.Warn().Err(err).Msg("failed to store request log")
			}
		}()
	}
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
