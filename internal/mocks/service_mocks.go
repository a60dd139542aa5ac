package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/domain/model"
)

type MockLoggingService struct {
	mock.Mock
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

type MockLoadPlanner struct {
	mock.Mock
}

func (m *MockLoadPlanner) Plan(ctx context.Context, in dto.LoadPlanInput) (*model.LoadPlan, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoadPlan), args.Error(1)
}

func (m *MockLoadPlanner) Get(ctx context.Context, id string) (*model.LoadPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoadPlan), args.Error(1)
}

func (m *MockLoadPlanner) List(ctx context.Context, limit, skip int) ([]model.LoadPlanSummary, int64, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.LoadPlanSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockLoadPlanner) InvalidateCache() {
	m.Called()
}

type MockContainerCatalogService struct {
	mock.Mock
}

func (m *MockContainerCatalogService) Active(ctx context.Context) (dto.CatalogResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(dto.CatalogResponse), args.Error(1)
}

func (m *MockContainerCatalogService) Replace(ctx context.Context, entries []model.CatalogEntry, updatedBy string) (*model.ContainerCatalog, error) {
	args := m.Called(ctx, entries, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContainerCatalog), args.Error(1)
}

func (m *MockContainerCatalogService) History(ctx context.Context, limit int) ([]model.ContainerCatalog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContainerCatalog), args.Error(1)
}
