package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/logger"
	"github.com/pageza/mealplan/backend/internal/model"
)

// BrowseResult holds one search per meal category
type BrowseResult struct {
	Recipes  model.MealPlan                           `json:"recipes"`
	Outcomes map[model.MealCategory]model.SlotOutcome `json:"outcomes"`
}

// SearchService runs free-text recipe searches
type SearchService struct {
	searcher    RecipeSearcher
	concurrency int
}

// NewSearchService creates a new SearchService instance
func NewSearchService(searcher RecipeSearcher, concurrency int) *SearchService {
	if concurrency <= 0 {
		concurrency = len(model.Categories)
	}
	return &SearchService{searcher: searcher, concurrency: concurrency}
}

// Search returns every hit for query, unfiltered
func (s *SearchService) Search(ctx context.Context, query string) ([]model.RecipeCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	return s.searcher.Search(ctx, query)
}

// Browse searches once per category name. Failed searches leave their
// category empty and are reported in Outcomes.
func (s *SearchService) Browse(ctx context.Context) (*BrowseResult, error) {
	results := make([]fetchResult, len(model.Categories))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, category := range model.Categories {
		g.Go(func() error {
			candidates, err := s.searcher.Search(ctx, string(category))
			results[i] = fetchResult{candidates: candidates, err: err}
			return nil
		})
	}
	_ = g.Wait()

	out := &BrowseResult{
		Recipes:  model.NewMealPlan(),
		Outcomes: make(map[model.MealCategory]model.SlotOutcome, len(model.Categories)),
	}
	for i, category := range model.Categories {
		res := results[i]
		if res.err != nil {
			logger.Warn("recipe search failed",
				"searcher", s.searcher.Name(),
				"category", category,
				"error_type", apperrors.TypeOf(res.err),
				"error", res.err,
			)
			out.Outcomes[category] = failedOutcome(res.err)
			continue
		}
		if res.candidates != nil {
			out.Recipes[category] = res.candidates
		}
		out.Outcomes[category] = slotOutcome(len(res.candidates), res.candidates)
	}
	return out, nil
}
