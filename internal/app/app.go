// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/cargo-loader/config"
	"github.com/guttosm/cargo-loader/internal/http"
	"github.com/guttosm/cargo-loader/internal/middleware"
)

// App is the wired application.
type App struct {
	Router   *gin.Engine
	services *ServiceComponents
	db       *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	// Logger first: everything below logs.
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)
	if dbComponents != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	services := InitializeServices(cfg, dbComponents)
	routerComponents := InitializeRouter(services, dbComponents, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.Routes, routerComponents.HealthHandler, routerComponents.Config),
		services: services,
		db:       dbComponents,
	}
}

// Close flushes pending request logs and releases the cache and database.
func (a *App) Close(ctx context.Context) {
	middleware.StopAsyncLogger()
	a.services.Close()
	if err := a.db.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close MongoDB connection")
	}
}
