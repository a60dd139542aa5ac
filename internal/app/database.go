// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/cargo-loader/config"
	"github.com/guttosm/cargo-loader/internal/circuitbreaker"
	"github.com/guttosm/cargo-loader/internal/metrics"
	"github.com/guttosm/cargo-loader/internal/repository"
	"github.com/guttosm/cargo-loader/internal/service"
)

const ttlSetupTimeout = 10 * time.Second

// Breaker names as reported by /readyz and the circuit_breaker_state gauge.
const (
	breakerCatalogs = "mongodb_container_catalogs"
	breakerPlans    = "mongodb_load_plans"
	breakerLogs     = "mongodb_logs"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB              *repository.MongoDB
	CatalogRepo     repository.ContainerCatalogRepositoryInterface
	PlanRepo        repository.LoadPlanRepositoryInterface
	LoggingService  service.LoggingService
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories, each
// behind its own circuit breaker. It returns nil when the database is
// disabled or unreachable; the service then plans without storage.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	return newDatabaseComponents(db, cfg)
}

func newDatabaseComponents(db *repository.MongoDB, cfg config.DatabaseConfig) *DatabaseComponents {
	ctx, cancel := context.WithTimeout(context.Background(), ttlSetupTimeout)
	defer cancel()
	if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index")
	}
	if err := db.SetPlansTTL(ctx, cfg.PlansTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set load plans TTL index")
	}

	breakers := map[string]*circuitbreaker.CircuitBreaker{
		breakerCatalogs: newCircuitBreaker(cfg, breakerCatalogs),
		breakerPlans:    newCircuitBreaker(cfg, breakerPlans),
		breakerLogs:     newCircuitBreaker(cfg, breakerLogs),
	}

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), breakers[breakerLogs])

	return &DatabaseComponents{
		DB:              db,
		CatalogRepo:     repository.NewContainerCatalogRepositoryWithCircuitBreaker(repository.NewContainerCatalogRepository(db), breakers[breakerCatalogs]),
		PlanRepo:        repository.NewLoadPlanRepositoryWithCircuitBreaker(repository.NewLoadPlanRepository(db), breakers[breakerPlans]),
		LoggingService:  service.NewLoggingService(logsRepo),
		CircuitBreakers: breakers,
	}
}

// newCircuitBreaker builds a breaker from the database settings that
// publishes its state to Prometheus.
func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			log.Warn().
				Str("circuit_breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
