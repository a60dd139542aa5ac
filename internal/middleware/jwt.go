package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cargo-loader/internal/i18n"
	"github.com/guttosm/cargo-loader/internal/service"
)

const bearerPrefix = "Bearer "

// JWTAuth returns a middleware that requires a valid bearer token.
func JWTAuth(validator service.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}
		if !authenticateToken(c, validator, token) {
			return
		}
		c.Next()
	}
}

// Authenticate accepts either an API key from validKeys or a bearer token.
// With no keys and no validator every request passes.
func Authenticate(validKeys map[string]bool, validator service.TokenValidator) gin.HandlerFunc {
	byKey := APIKeyAuth(validKeys)
	var byToken gin.HandlerFunc
	if validator != nil {
		byToken = JWTAuth(validator)
	}

	return func(c *gin.Context) {
		switch {
		case len(validKeys) > 0 && apiKey(c) != "":
			byKey(c)
		case byToken != nil:
			byToken(c)
		default:
			byKey(c)
		}
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

func authenticateToken(c *gin.Context, validator service.TokenValidator, token string) bool {
	claims, err := validator.Validate(token)
	if err != nil {
		_ = c.Error(err)
		abortUnauthorized(c, i18n.ErrKeyInvalidToken)
		return false
	}
	c.Set(SubjectKey, claims.Subject)
	return true
}
