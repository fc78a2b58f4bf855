package types

import (
	"github.com/pageza/mealplan/backend/internal/model"
)

// PlanRequest is the body of POST /plans. Omitted ceilings use the defaults,
// an empty object disables them.
type PlanRequest struct {
	Diet         string                         `json:"diet"`
	Ceilings     map[model.MealCategory]float64 `json:"ceilings"`
	HealthLabels []string                       `json:"health_labels"`
	Policy       string                         `json:"policy"`
}

// Constraint converts the request into a model.DietConstraint
func (r PlanRequest) Constraint() model.DietConstraint {
	return model.DietConstraint{Diet: r.Diet, Ceilings: r.Ceilings, HealthLabels: r.HealthLabels}
}

// RefreshRequest is the body of POST /plans/refresh
type RefreshRequest struct {
	Plan         model.MealPlan                 `json:"plan"`
	Category     string                         `json:"category" binding:"required"`
	Diet         string                         `json:"diet"`
	Ceilings     map[model.MealCategory]float64 `json:"ceilings"`
	HealthLabels []string                       `json:"health_labels"`
}

// Constraint converts the request into a model.DietConstraint
func (r RefreshRequest) Constraint() model.DietConstraint {
	return model.DietConstraint{Diet: r.Diet, Ceilings: r.Ceilings, HealthLabels: r.HealthLabels}
}

// SummaryRequest is the body of POST /plans/summary
type SummaryRequest struct {
	Plan  model.MealPlan   `json:"plan"`
	Eaten model.EatenFlags `json:"eaten"`
}
