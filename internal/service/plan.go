package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/logger"
	"github.com/pageza/mealplan/backend/internal/model"
)

const defaultMaxPerCategory = 2

// PlanOptions configures a PlanService
type PlanOptions struct {
	DefaultDiet    string
	DefaultPolicy  Policy
	MaxPerCategory int
	Concurrency    int
	// Rand drives the random policy. Seeded from the runtime when nil.
	Rand *rand.Rand
	Now  func() time.Time
}

// PlanRequest asks for a full day's plan
type PlanRequest struct {
	Constraint model.DietConstraint
	Policy     Policy
}

// PlanResult is an assembled plan with a per-category report
type PlanResult struct {
	ID          string                                   `json:"id"`
	GeneratedAt time.Time                                `json:"generated_at"`
	Diet        string                                   `json:"diet"`
	Policy      Policy                                   `json:"policy"`
	Plan        model.MealPlan                           `json:"plan"`
	Outcomes    map[model.MealCategory]model.SlotOutcome `json:"outcomes"`
}

// RefreshRequest asks for one category of an existing plan to be refilled
type RefreshRequest struct {
	Plan       model.MealPlan
	Category   model.MealCategory
	Constraint model.DietConstraint
}

// RefreshResult carries the new plan. Replaced is false when the existing
// slot was kept because the provider failed or returned nothing.
type RefreshResult struct {
	Plan     model.MealPlan     `json:"plan"`
	Category model.MealCategory `json:"category"`
	Outcome  model.SlotOutcome  `json:"outcome"`
	Replaced bool               `json:"replaced"`
}

// PlanService assembles meal plans from a RecipeProvider
type PlanService struct {
	provider RecipeProvider
	opts     PlanOptions

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlanService creates a new PlanService instance
func NewPlanService(provider RecipeProvider, opts PlanOptions) *PlanService {
	if opts.DefaultPolicy == "" {
		opts.DefaultPolicy = PolicyTopN
	}
	if opts.MaxPerCategory <= 0 {
		opts.MaxPerCategory = defaultMaxPerCategory
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = len(model.Categories)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &PlanService{
		provider: provider,
		opts:     opts,
		rng:      rng,
	}
}

type fetchResult struct {
	candidates []model.RecipeCandidate
	err        error
}

// BuildPlan fetches every category concurrently, then selects in display
// order so lunch is settled before dinner. A failed category leaves its
// slot empty and never affects the others.
func (s *PlanService) BuildPlan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	policy := req.Policy
	if policy == "" {
		policy = s.opts.DefaultPolicy
	}
	if _, err := ParsePolicy(string(policy)); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	constraint, err := s.withDefaults(req.Constraint)
	if err != nil {
		return nil, err
	}

	results := make([]fetchResult, len(model.Categories))
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, category := range model.Categories {
		g.Go(func() error {
			candidates, err := s.provider.FetchCandidates(ctx, category, constraint)
			results[i] = fetchResult{candidates: candidates, err: err}
			return nil
		})
	}
	_ = g.Wait()

	plan := model.NewMealPlan()
	outcomes := make(map[model.MealCategory]model.SlotOutcome, len(model.Categories))
	var lunchTitle string

	for i, category := range model.Categories {
		res := results[i]
		if res.err != nil {
			s.warnProviderFailure(category, constraint, res.err)
			outcomes[category] = failedOutcome(res.err)
			continue
		}

		var selected []model.RecipeCandidate
		switch policy {
		case PolicyRandom:
			exclude := ""
			if category == model.Dinner {
				exclude = lunchTitle
			}
			selected = s.pickRandom(res.candidates, exclude)
		default:
			ceiling, ok := constraint.Ceiling(category)
			selected = SelectTopN(res.candidates, ceiling, ok, s.opts.MaxPerCategory)
		}

		if category == model.Lunch && len(selected) > 0 {
			lunchTitle = selected[0].Title
		}
		plan[category] = selected
		outcomes[category] = slotOutcome(len(res.candidates), selected)
	}

	return &PlanResult{
		ID:          uuid.NewString(),
		GeneratedAt: s.opts.Now().UTC(),
		Diet:        constraint.Diet,
		Policy:      policy,
		Plan:        plan,
		Outcomes:    outcomes,
	}, nil
}

// RefreshCategory refills one category with top-N selection and returns a
// new plan. Every other slot is carried over unchanged.
func (s *PlanService) RefreshCategory(ctx context.Context, req RefreshRequest) (*RefreshResult, error) {
	if !req.Category.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown meal category %q", req.Category))
	}

	constraint, err := s.withDefaults(req.Constraint)
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{
		Plan:     req.Plan.Normalize(),
		Category: req.Category,
	}

	candidates, err := s.provider.FetchCandidates(ctx, req.Category, constraint)
	if err != nil {
		s.warnProviderFailure(req.Category, constraint, err)
		result.Outcome = failedOutcome(err)
		return result, nil
	}
	if len(candidates) == 0 {
		result.Outcome = model.SlotOutcome{Status: model.SlotNoResults}
		return result, nil
	}

	ceiling, ok := constraint.Ceiling(req.Category)
	selected := SelectTopN(candidates, ceiling, ok, s.opts.MaxPerCategory)

	result.Plan = req.Plan.WithSlot(req.Category, selected)
	result.Outcome = slotOutcome(len(candidates), selected)
	result.Replaced = true
	return result, nil
}

// withDefaults fills in the diet and ceilings. A nil ceiling map means
// "use the defaults", an empty one means "no ceilings".
func (s *PlanService) withDefaults(c model.DietConstraint) (model.DietConstraint, error) {
	out := model.DietConstraint{
		Diet:         c.Diet,
		HealthLabels: append([]string{}, c.HealthLabels...),
	}
	if out.Diet == "" {
		out.Diet = s.opts.DefaultDiet
	}
	if out.Diet == "" {
		return out, apperrors.NewValidationError("diet is required")
	}

	if c.Ceilings == nil {
		out.Ceilings = model.DefaultCeilings()
		return out, nil
	}

	out.Ceilings = make(map[model.MealCategory]float64, len(c.Ceilings))
	for category, v := range c.Ceilings {
		if !category.Valid() {
			return out, apperrors.NewValidationError(fmt.Sprintf("unknown meal category %q in ceilings", category))
		}
		if v < 0 {
			return out, apperrors.NewValidationError(fmt.Sprintf("ceiling for %s must not be negative", category))
		}
		out.Ceilings[category] = v
	}
	return out, nil
}

func (s *PlanService) pickRandom(candidates []model.RecipeCandidate, exclude string) []model.RecipeCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SelectRandom(candidates, exclude, s.rng)
}

func (s *PlanService) warnProviderFailure(category model.MealCategory, constraint model.DietConstraint, err error) {
	fields := []any{
		"provider", s.provider.Name(),
		"category", category,
		"diet", constraint.Diet,
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fields = append(fields, appErr.LogFields()...)
	} else {
		fields = append(fields, "error", err)
	}
	logger.Warn("recipe provider failed, leaving slot empty", fields...)
}

func slotOutcome(candidates int, selected []model.RecipeCandidate) model.SlotOutcome {
	status := model.SlotOK
	switch {
	case candidates == 0:
		status = model.SlotNoResults
	case len(selected) == 0:
		status = model.SlotNoMatch
	}
	return model.SlotOutcome{Status: status, Candidates: candidates, Selected: len(selected)}
}

func failedOutcome(err error) model.SlotOutcome {
	return model.SlotOutcome{Status: model.SlotFailed, Error: publicMessage(err)}
}

// publicMessage is the part of an error that is safe to return to clients
func publicMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
