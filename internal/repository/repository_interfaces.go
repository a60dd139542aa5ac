package repository

import (
	"context"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// ContainerCatalogRepositoryInterface defines container catalog storage.
type ContainerCatalogRepositoryInterface interface {
	GetActive(ctx context.Context) (*model.ContainerCatalog, error)
	Create(ctx context.Context, entries []model.CatalogEntry, updatedBy string) (*model.ContainerCatalog, error)
	List(ctx context.Context, limit int) ([]model.ContainerCatalog, error)
}

// LoadPlanRepositoryInterface defines load plan storage.
type LoadPlanRepositoryInterface interface {
	Save(ctx context.Context, plan *model.LoadPlan) error
	Get(ctx context.Context, id string) (*model.LoadPlan, error)
	FindByRequestHash(ctx context.Context, hash string) (*model.LoadPlan, error)
	List(ctx context.Context, limit, skip int) ([]model.LoadPlanSummary, error)
	Count(ctx context.Context) (int64, error)
}

// LogsRepositoryInterface defines request log storage.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

var (
	_ ContainerCatalogRepositoryInterface = (*ContainerCatalogRepository)(nil)
	_ LoadPlanRepositoryInterface         = (*LoadPlanRepository)(nil)
	_ LogsRepositoryInterface             = (*LogsRepository)(nil)
)
