package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency such as storage is down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data is the endpoint payload, e.g. a LoadPlan.
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"cargo[0].count: must be a positive integer"`
	// Details contains additional error details (optional)
	// Example: {"field": "error message"}
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnprocessableEntity:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// LoadPlanListResponse is one page of stored plan summaries.
//
// @Description Page of stored load plans, newest first
type LoadPlanListResponse struct {
	Items []model.LoadPlanSummary `json:"items"`
	Total int64                   `json:"total" example:"42"`
	Limit int                     `json:"limit" example:"20"`
	Skip  int                     `json:"skip" example:"0"`
} // @name LoadPlanListResponse

// PlanLogsResponse is one page of request logs recorded for a plan.
//
// @Description Request logs linked to a load plan, newest first
type PlanLogsResponse struct {
	PlanID string           `json:"plan_id" example:"6f1c2d0e-8a57-4d3b-9b3a-2f0f3a6b1e42"`
	Items  []model.LogEntry `json:"items"`
	Total  int64            `json:"total" example:"3"`
	Limit  int              `json:"limit" example:"20"`
	Skip   int              `json:"skip" example:"0"`
} // @name PlanLogsResponse

// CatalogResponse is the container catalog in effect.
//
// @Description Active container catalog and where it comes from
type CatalogResponse struct {
	model.ContainerCatalog
	// Source is "database" for a stored catalog, "builtin" for the ISO defaults.
	Source string `json:"source" example:"database"`
} // @name CatalogResponse

// ImportedPlanResponse is a load plan computed from an uploaded shipment
// list, with the rows the importer skipped or adjusted.
//
// @Description Load plan plus import warnings
type ImportedPlanResponse struct {
	*model.LoadPlan
	Warnings []string `json:"warnings,omitempty"`
} // @name ImportedPlanResponse
