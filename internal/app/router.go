// Package app provides router configuration.
package app

import (
	"github.com/guttosm/cargo-loader/config"
	"github.com/guttosm/cargo-loader/internal/http"
	"github.com/guttosm/cargo-loader/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Routes        *http.APIRoutes
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the HTTP handlers and router configuration.
// dbComponents may be nil.
func InitializeRouter(services *ServiceComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	planOpts := []http.LoadPlanHandlerOption{
		http.WithRequestDefaults(services.Defaults),
		http.WithMaxUploadBytes(cfg.Server.MaxUploadBytes),
	}
	healthHandler := http.NewHealthHandler()

	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
		planOpts = append(planOpts, http.WithPlanLogs(loggingService))
		if dbComponents.DB != nil {
			healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(dbComponents.DB.HealthCheck))
		}
		for name, cb := range dbComponents.CircuitBreakers {
			healthHandler.RegisterCircuitBreaker(name, cb)
		}
	}

	plans := http.NewLoadPlanHandler(services.Planner, planOpts...)
	catalogs := http.NewCatalogHandler(services.Catalogs, services.Planner, services.Defaults.UnitScale)

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
	}
	if cfg.Auth.JWTSecretKey != "" {
		routerCfg.TokenValidator = service.NewTokenValidator(cfg.Auth.JWTSecretKey, cfg.Auth.JWTIssuer)
	}

	return &RouterComponents{
		Routes:        http.NewAPIRoutes(plans, catalogs),
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
