package service

import (
	"context"

	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/domain/model"
	"github.com/guttosm/cargo-loader/internal/repository"
)

const (
	// CatalogSourceDatabase marks a catalog read from MongoDB.
	CatalogSourceDatabase = "database"
	// CatalogSourceBuiltin marks the ISO defaults used without a stored catalog.
	CatalogSourceBuiltin = "builtin"
)

// ContainerCatalogService manages the container types planners may use.
type ContainerCatalogService interface {
	// Active returns the stored catalog, or the built-in one when none is
	// stored or the database is unavailable.
	Active(ctx context.Context) (dto.CatalogResponse, error)
	Replace(ctx context.Context, entries []model.CatalogEntry, updatedBy string) (*model.ContainerCatalog, error)
	History(ctx context.Context, limit int) ([]model.ContainerCatalog, error)
}

// ContainerCatalogServiceImpl implements ContainerCatalogService.
type ContainerCatalogServiceImpl struct {
	repo repository.ContainerCatalogRepositoryInterface
}

// NewContainerCatalogService creates a catalog service. repo may be nil.
func NewContainerCatalogService(repo repository.ContainerCatalogRepositoryInterface) ContainerCatalogService {
	return &ContainerCatalogServiceImpl{repo: repo}
}

// BuiltinCatalog returns model.AutoContainers as an unlimited catalog.
func BuiltinCatalog() model.ContainerCatalog {
	entries := make([]model.CatalogEntry, len(model.AutoContainers))
	for i, spec := range model.AutoContainers {
		entries[i] = model.CatalogEntry{ContainerSpec: spec}
	}
	return model.ContainerCatalog{Containers: entries, Active: true}
}

func (s *ContainerCatalogServiceImpl) Active(ctx context.Context) (dto.CatalogResponse, error) {
	builtin := dto.CatalogResponse{ContainerCatalog: BuiltinCatalog(), Source: CatalogSourceBuiltin}
	if s.repo == nil {
		return builtin, nil
	}

	catalog, err := s.repo.GetActive(ctx)
	if err != nil {
		return dto.CatalogResponse{}, err
	}
	if catalog == nil || len(catalog.Containers) == 0 {
		return builtin, nil
	}
	return dto.CatalogResponse{ContainerCatalog: *catalog, Source: CatalogSourceDatabase}, nil
}

func (s *ContainerCatalogServiceImpl) Replace(ctx context.Context, entries []model.CatalogEntry, updatedBy string) (*model.ContainerCatalog, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.Create(ctx, entries, updatedBy)
}

func (s *ContainerCatalogServiceImpl) History(ctx context.Context, limit int) ([]model.ContainerCatalog, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}
