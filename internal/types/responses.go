package types

import (
	"github.com/pageza/mealplan/backend/internal/model"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DietsResponse lists the options a client can put in a plan request
type DietsResponse struct {
	Diets           []string                       `json:"diets"`
	HealthLabels    []string                       `json:"health_labels"`
	DefaultDiet     string                         `json:"default_diet"`
	DefaultCeilings map[model.MealCategory]float64 `json:"default_ceilings"`
	Policies        []string                       `json:"policies"`
	DefaultPolicy   string                         `json:"default_policy"`
	Categories      []model.MealCategory           `json:"categories"`
}

// SearchResponse wraps the hits of a free-text search
type SearchResponse struct {
	Query   string                  `json:"query"`
	Count   int                     `json:"count"`
	Recipes []model.RecipeCandidate `json:"recipes"`
}

// FetchesResponse lists recent upstream calls
type FetchesResponse struct {
	Count   int              `json:"count"`
	Fetches []model.FetchLog `json:"fetches"`
}
