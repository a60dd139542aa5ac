// Package middleware provides the HTTP middleware of the cargo loading API:
// request IDs, authentication, rate limiting, idempotent replays, request
// logging and error rendering.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that accept it. Load plans with
// many load points compress well; /metrics is left to the scraper.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"}))
}
