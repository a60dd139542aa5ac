// Package main is the entry point for the cargo loader service.
//
// @title           Cargo Loader API
// @version         1.0.0
// @description     Plans how shipments are loaded into containers.
//
//	The engine packs box and cylinder cargo into ISO or custom containers in
//	greedy rounds and returns every placement as a load point.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/cargo-loader
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 HS256 JWT as "Bearer <token>". Accepted when a JWT secret is configured.
//
// @tag.name        Load Plans
// @tag.description Load plan calculation and retrieval
//
// @tag.name        Containers
// @tag.description Container catalog management
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/cargo-loader/config"
	_ "github.com/guttosm/cargo-loader/docs" // swagger docs
	"github.com/guttosm/cargo-loader/internal/app"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to read .env")
	}
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		application.Close(ctx)
	}()

	server := app.NewServer(application.Router, cfg.Server)
	if err := server.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server error")
	}
}
