package service

import (
	"context"

	"github.com/pageza/mealplan/backend/internal/model"
)

// RecipeProvider returns candidate recipes for one meal category
type RecipeProvider interface {
	Name() string
	FetchCandidates(ctx context.Context, category model.MealCategory, constraint model.DietConstraint) ([]model.RecipeCandidate, error)
}

// RecipeSearcher runs free-text recipe searches
type RecipeSearcher interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.RecipeCandidate, error)
}

// CandidateCache stores candidate lists by key. A miss is (nil, false, nil).
type CandidateCache interface {
	Get(ctx context.Context, key string) ([]model.RecipeCandidate, bool, error)
	Set(ctx context.Context, key string, candidates []model.RecipeCandidate) error
}

// FetchRecorder persists one row per upstream call
type FetchRecorder interface {
	Record(ctx context.Context, entry *model.FetchLog) error
}

// IPlanService defines the interface for plan assembly and refresh
type IPlanService interface {
	BuildPlan(ctx context.Context, req PlanRequest) (*PlanResult, error)
	RefreshCategory(ctx context.Context, req RefreshRequest) (*RefreshResult, error)
}

// ISearchService defines the interface for recipe search
type ISearchService interface {
	Search(ctx context.Context, query string) ([]model.RecipeCandidate, error)
	Browse(ctx context.Context) (*BrowseResult, error)
}

// IFetchLogService defines the interface for reading the fetch log
type IFetchLogService interface {
	FetchRecorder
	Recent(ctx context.Context, limit int) ([]model.FetchLog, error)
}
