package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplan/backend/internal/model"
	"github.com/pageza/mealplan/backend/internal/service"
)

// MockPlanService is a mock implementation of service.IPlanService
type MockPlanService struct {
	mock.Mock
}

// BuildPlan mocks the BuildPlan method
func (m *MockPlanService) BuildPlan(ctx context.Context, req service.PlanRequest) (*service.PlanResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PlanResult), args.Error(1)
}

// RefreshCategory mocks the RefreshCategory method
func (m *MockPlanService) RefreshCategory(ctx context.Context, req service.RefreshRequest) (*service.RefreshResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RefreshResult), args.Error(1)
}

// MockSearchService is a mock implementation of service.ISearchService
type MockSearchService struct {
	mock.Mock
}

// Search mocks the Search method
func (m *MockSearchService) Search(ctx context.Context, query string) ([]model.RecipeCandidate, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecipeCandidate), args.Error(1)
}

// Browse mocks the Browse method
func (m *MockSearchService) Browse(ctx context.Context) (*service.BrowseResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BrowseResult), args.Error(1)
}

// MockFetchLogService is a mock implementation of service.IFetchLogService
type MockFetchLogService struct {
	mock.Mock
}

// Record mocks the Record method
func (m *MockFetchLogService) Record(ctx context.Context, entry *model.FetchLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Recent mocks the Recent method
func (m *MockFetchLogService) Recent(ctx context.Context, limit int) ([]model.FetchLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FetchLog), args.Error(1)
}

var (
	_ service.IPlanService     = (*MockPlanService)(nil)
	_ service.ISearchService   = (*MockSearchService)(nil)
	_ service.IFetchLogService = (*MockFetchLogService)(nil)
)
