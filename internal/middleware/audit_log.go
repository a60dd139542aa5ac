package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// AuditLog records a state-changing action, such as a catalog replacement,
// through the async logger. It is a no-op when request logs are not stored.
func AuditLog(c *gin.Context, action, message string, fields map[string]interface{}) {
	asyncLogger := GetAsyncLogger()
	if asyncLogger == nil {
		return
	}

	entry := &model.LogEntry{
		Timestamp: time.Now(),
		Level:     "info",
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		PlanID:    c.GetString(PlanIDKey),
		Subject:   GetSubject(c),
	}
	entry.WithFields(fields).WithField("action", action)
	asyncLogger.Log(entry)
}
