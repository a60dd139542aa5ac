//go:build ignore

// generate_keys prints a JWT secret, an API key and a bearer token signed
// with that secret, ready for a .env file.
// Run with: go run scripts/generate_keys.go -subject ops -ttl 720h
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/guttosm/cargo-loader/internal/service"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
	os.Exit(1)
}

func main() {
	subject := flag.String("subject", "cargo-loader-client", "token subject")
	issuer := flag.String("issuer", "cargo-loader", "token issuer; must match JWT_ISSUER")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fail("JWT secret", err)
	}
	apiKey, err := generateSecureKey(24)
	if err != nil {
		fail("API key", err)
	}
	token, err := service.NewTokenValidator(jwtSecret, *issuer).Issue(*subject, *ttl)
	if err != nil {
		fail("bearer token", err)
	}

	fmt.Println("# Add to .env")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Printf("JWT_ISSUER=%s\n", *issuer)
	fmt.Printf("API_KEYS=%s\n", apiKey)
	fmt.Println()
	fmt.Printf("# Bearer token for %q, valid %s\n", *subject, *ttl)
	fmt.Printf("Authorization: Bearer %s\n", token)
}
