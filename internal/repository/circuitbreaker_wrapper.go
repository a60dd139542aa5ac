package repository

import (
	"context"
	"errors"

	"github.com/guttosm/cargo-loader/internal/circuitbreaker"
	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// ContainerCatalogRepositoryWithCircuitBreaker guards catalog storage.
type ContainerCatalogRepositoryWithCircuitBreaker struct {
	repo           ContainerCatalogRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewContainerCatalogRepositoryWithCircuitBreaker wraps repo with cb.
func NewContainerCatalogRepositoryWithCircuitBreaker(repo ContainerCatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ContainerCatalogRepositoryWithCircuitBreaker {
	return &ContainerCatalogRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetActive returns the active catalog. An open circuit reads as no catalog,
// so callers fall back to the built-in one.
func (r *ContainerCatalogRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*model.ContainerCatalog, error) {
	result, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.ContainerCatalog, error) {
		return r.repo.GetActive(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return result, err
}

func (r *ContainerCatalogRepositoryWithCircuitBreaker) Create(ctx context.Context, entries []model.CatalogEntry, updatedBy string) (*model.ContainerCatalog, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.ContainerCatalog, error) {
		return r.repo.Create(ctx, entries, updatedBy)
	})
}

func (r *ContainerCatalogRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]model.ContainerCatalog, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]model.ContainerCatalog, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ContainerCatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LoadPlanRepositoryWithCircuitBreaker guards load plan storage.
type LoadPlanRepositoryWithCircuitBreaker struct {
	repo           LoadPlanRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLoadPlanRepositoryWithCircuitBreaker wraps repo with cb.
func NewLoadPlanRepositoryWithCircuitBreaker(repo LoadPlanRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LoadPlanRepositoryWithCircuitBreaker {
	return &LoadPlanRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *LoadPlanRepositoryWithCircuitBreaker) Save(ctx context.Context, plan *model.LoadPlan) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Save(ctx, plan)
	})
}

func (r *LoadPlanRepositoryWithCircuitBreaker) Get(ctx context.Context, id string) (*model.LoadPlan, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.LoadPlan, error) {
		return r.repo.Get(ctx, id)
	})
}

// FindByRequestHash treats an open circuit as a miss; the plan is then
// recomputed instead of failing the request.
func (r *LoadPlanRepositoryWithCircuitBreaker) FindByRequestHash(ctx context.Context, hash string) (*model.LoadPlan, error) {
	result, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.LoadPlan, error) {
		return r.repo.FindByRequestHash(ctx, hash)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return result, err
}

func (r *LoadPlanRepositoryWithCircuitBreaker) List(ctx context.Context, limit, skip int) ([]model.LoadPlanSummary, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]model.LoadPlanSummary, error) {
		return r.repo.List(ctx, limit, skip)
	})
}

func (r *LoadPlanRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LoadPlanRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker guards request log storage. Writes are
// dropped silently while the circuit is open.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]model.LogEntry, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

var (
	_ ContainerCatalogRepositoryInterface = (*ContainerCatalogRepositoryWithCircuitBreaker)(nil)
	_ LoadPlanRepositoryInterface         = (*LoadPlanRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface             = (*LogsRepositoryWithCircuitBreaker)(nil)
)
