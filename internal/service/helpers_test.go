package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pageza/mealplan/backend/internal/model"
)

// fastRetries shortens the backoff between upstream attempts for one test
func fastRetries(t *testing.T) {
	t.Helper()
	prev := retryInitialInterval
	retryInitialInterval = time.Millisecond
	t.Cleanup(func() { retryInitialInterval = prev })
}

func carbRecipe(title string, carbs float64) model.RecipeCandidate {
	return model.RecipeCandidate{
		Title: title,
		Nutrients: map[string]model.Nutrient{
			model.NutrientCarbs: {Label: "Carbs", Quantity: carbs, Unit: "g"},
		},
	}
}

func titled(prefix string, n int) []model.RecipeCandidate {
	out := make([]model.RecipeCandidate, n)
	for i := range out {
		out[i] = carbRecipe(fmt.Sprintf("%s %d", prefix, i+1), 1)
	}
	return out
}

func titles(recipes []model.RecipeCandidate) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

type providerCall struct {
	Category   model.MealCategory
	Constraint model.DietConstraint
}

// stubProvider returns canned candidates and errors per category
type stubProvider struct {
	results map[model.MealCategory][]model.RecipeCandidate
	errs    map[model.MealCategory]error

	mu    sync.Mutex
	calls []providerCall
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchCandidates(_ context.Context, category model.MealCategory, constraint model.DietConstraint) ([]model.RecipeCandidate, error) {
	p.mu.Lock()
	p.calls = append(p.calls, providerCall{Category: category, Constraint: constraint})
	p.mu.Unlock()

	if err := p.errs[category]; err != nil {
		return nil, err
	}
	return p.results[category], nil
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type stubSearcher struct {
	results map[string][]model.RecipeCandidate
	errs    map[string]error

	mu      sync.Mutex
	queries []string
}

func (s *stubSearcher) Name() string { return "stub" }

func (s *stubSearcher) Search(_ context.Context, query string) ([]model.RecipeCandidate, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	if err := s.errs[query]; err != nil {
		return nil, err
	}
	return s.results[query], nil
}
