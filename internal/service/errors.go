// Package service contains the business logic of the cargo loader: load
// planning, the container catalog, request logs and token validation.
package service

import "errors"

var (
	// ErrRepositoryNotConfigured is returned when an operation needs MongoDB
	// and none is configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrPlanNotFound is returned for an unknown load plan id.
	ErrPlanNotFound = errors.New("load plan not found")
	// ErrInvalidToken is returned for a bearer token that fails validation.
	ErrInvalidToken = errors.New("invalid token")
)
