// Package i18n provides internationalization support for the cargo loader.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyValidationFailed indicates field errors, listed in the response details.
	ErrKeyValidationFailed = "error.validation_failed"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyPlanNotFound indicates an unknown load plan id.
	ErrKeyPlanNotFound = "error.plan_not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyStorageUnavailable indicates the operation needs the database.
	ErrKeyStorageUnavailable = "error.storage_unavailable"
	// ErrKeyFileRequired indicates a missing upload.
	ErrKeyFileRequired = "error.file_required"
	// ErrKeyFileTooLarge indicates an upload over the size limit.
	ErrKeyFileTooLarge = "error.file_too_large"
	// ErrKeyUnsupportedFile indicates an upload that is not csv or xlsx.
	ErrKeyUnsupportedFile = "error.unsupported_file"
	// ErrKeyNoCargoRows indicates an upload without cargo rows.
	ErrKeyNoCargoRows = "error.no_cargo_rows"
)
