// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

type MockContainerCatalogRepository struct {
	mock.Mock
}

func (m *MockContainerCatalogRepository) GetActive(ctx context.Context) (*model.ContainerCatalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContainerCatalog), args.Error(1)
}

func (m *MockContainerCatalogRepository) Create(ctx context.Context, entries []model.CatalogEntry, updatedBy string) (*model.ContainerCatalog, error) {
	args := m.Called(ctx, entries, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContainerCatalog), args.Error(1)
}

func (m *MockContainerCatalogRepository) List(ctx context.Context, limit int) ([]model.ContainerCatalog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContainerCatalog), args.Error(1)
}

type MockLoadPlanRepository struct {
	mock.Mock
}

func (m *MockLoadPlanRepository) Save(ctx context.Context, plan *model.LoadPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockLoadPlanRepository) Get(ctx context.Context, id string) (*model.LoadPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoadPlan), args.Error(1)
}

func (m *MockLoadPlanRepository) FindByRequestHash(ctx context.Context, hash string) (*model.LoadPlan, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoadPlan), args.Error(1)
}

func (m *MockLoadPlanRepository) List(ctx context.Context, limit, skip int) ([]model.LoadPlanSummary, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LoadPlanSummary), args.Error(1)
}

func (m *MockLoadPlanRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLogsRepository struct {
	mock.Mock
}

func (m *MockLogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLogsRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLogsRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
