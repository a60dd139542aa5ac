// Package app provides service initialization.
package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/cargo-loader/config"
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/domain/model"
	"github.com/guttosm/cargo-loader/internal/loading"
	"github.com/guttosm/cargo-loader/internal/logger"
	"github.com/guttosm/cargo-loader/internal/metrics"
	"github.com/guttosm/cargo-loader/internal/repository"
	"github.com/guttosm/cargo-loader/internal/service"
	"github.com/guttosm/cargo-loader/internal/service/cache"
)

const (
	planCacheShards      = 16
	cacheMetricsInterval = 15 * time.Second
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalogs service.ContainerCatalogService
	Planner  *service.LoadPlannerService
	Defaults dto.Defaults

	planCache *cache.Sharded[model.LoadPlan]
	stop      chan struct{}
	closeOnce sync.Once
}

// InitializeServices builds the placement engine, the catalog service and
// the load planner. db may be nil.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	var catalogRepo repository.ContainerCatalogRepositoryInterface
	var planRepo repository.LoadPlanRepositoryInterface
	if db != nil {
		catalogRepo = db.CatalogRepo
		planRepo = db.PlanRepo
	}

	components := &ServiceComponents{
		Catalogs: service.NewContainerCatalogService(catalogRepo),
		Defaults: requestDefaults(cfg.Loading),
		stop:     make(chan struct{}),
	}

	opts := []service.PlannerOption{service.WithTimeout(cfg.Loading.Timeout)}
	if planRepo != nil {
		opts = append(opts, service.WithPlanRepository(planRepo))
	}
	if cfg.Cache.Size > 0 {
		components.planCache = cache.NewSharded[model.LoadPlan](cfg.Cache.Size, cfg.Cache.TTL, planCacheShards)
		opts = append(opts, service.WithPlanCache(components.planCache))
		go components.reportCacheMetrics(cacheMetricsInterval)
	}

	components.Planner = service.NewLoadPlanner(newLoader(cfg.Loading), components.Catalogs, opts...)
	return components
}

func newLoader(cfg config.LoadingConfig) *loading.Loader {
	selector := loading.NewContainerSelector()
	if cfg.VolumeThreshold > 0 {
		selector.VolumeThreshold = cfg.VolumeThreshold
	}
	if cfg.WeightThreshold > 0 {
		selector.WeightThreshold = cfg.WeightThreshold
	}
	return loading.NewLoader(
		loading.WithSelector(selector),
		loading.WithParallelism(cfg.Parallelism),
		loading.WithLogger(logger.Component("loading")),
	)
}

func requestDefaults(cfg config.LoadingConfig) dto.Defaults {
	loadingType, ok := model.ParseLoadingType(cfg.DefaultLoadingType)
	if !ok {
		log.Warn().Str("loading_type", cfg.DefaultLoadingType).Msg("Unknown default loading type, using stable")
		loadingType = model.LoadingStable
	}
	return dto.Defaults{
		UnitScale:    cfg.UnitScale,
		LoadingType:  loadingType,
		MaxShipments: cfg.MaxShipments,
	}
}

func (s *ServiceComponents) reportCacheMetrics(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			m := s.planCache.Metrics()
			metrics.UpdateCacheMetrics(m.Size, m.Capacity)
		}
	}
}

// Close stops the plan cache and its metrics reporter.
func (s *ServiceComponents) Close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		close(s.stop)
		if s.planCache != nil {
			s.planCache.Stop()
		}
	})
}
