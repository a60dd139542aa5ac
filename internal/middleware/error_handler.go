package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-loader/internal/circuitbreaker"
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/i18n"
	"github.com/guttosm/cargo-loader/internal/logger"
	"github.com/guttosm/cargo-loader/internal/service"
)

// ErrorHandler renders the last error attached with c.Error when the handler
// did not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := StatusForError(err)

		log := logger.Logger()
		event := log.Warn()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("request_id", GetRequestID(c)).
			Err(err).
			Int("status", status).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, ErrorResponseFor(c, err))
	}
}

// StatusForError maps service errors to HTTP status codes.
func StatusForError(err error) int {
	var verrs dto.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrPlanNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrRepositoryNotConfigured), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponseFor builds the localized error body for err. Validation
// errors carry their per-field details; internal errors never leak the
// underlying message.
func ErrorResponseFor(c *gin.Context, err error) dto.ErrorResponse {
	status := StatusForError(err)
	translator := i18n.GetTranslator()
	locale := i18n.GetLocale(c)

	var key string
	switch status {
	case http.StatusUnprocessableEntity:
		key = i18n.ErrKeyValidationFailed
	case http.StatusNotFound:
		key = i18n.ErrKeyPlanNotFound
	case http.StatusUnauthorized:
		key = i18n.ErrKeyInvalidToken
	case http.StatusServiceUnavailable:
		key = i18n.ErrKeyStorageUnavailable
	case http.StatusGatewayTimeout:
		key = i18n.ErrKeyTimeout
	default:
		key = i18n.ErrKeyInternalError
	}

	resp := dto.NewError(dto.ErrCodeFromStatus(status), translator.Translate(key, locale)).
		WithRequestID(GetRequestID(c))

	var verrs dto.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Details = verrs.Details()
	}
	return resp
}
