package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims accepted by the API. Subject names the caller
// and is recorded as the author of catalog changes.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenValidator checks bearer tokens signed with a shared HS256 secret.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
	Issue(subject string, ttl time.Duration) (string, error)
}

// HMACTokenValidator implements TokenValidator.
type HMACTokenValidator struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenValidator creates a validator for secret. A non-empty issuer must
// match the iss claim.
func NewTokenValidator(secret, issuer string) *HMACTokenValidator {
	return &HMACTokenValidator{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Validate parses token and checks its signature, expiry and issuer.
func (v *HMACTokenValidator) Validate(token string) (*Claims, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: no signing secret configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// Issue signs a token for subject valid for ttl.
func (v *HMACTokenValidator) Issue(subject string, ttl time.Duration) (string, error) {
	if len(v.secret) == 0 {
		return "", errors.New("no signing secret configured")
	}
	now := v.now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    v.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
