package types

import (
	"math"

	"github.com/pageza/mealplan/backend/internal/model"
)

// RecipeDetail is the flattened view of one recipe shown on the detail screen.
// Nutrient values are rounded to one decimal.
type RecipeDetail struct {
	Title           string   `json:"title"`
	Image           string   `json:"image"`
	Servings        float64  `json:"servings"`
	Calories        float64  `json:"calories"`
	Protein         float64  `json:"protein"`
	Fat             float64  `json:"fat"`
	Carb            float64  `json:"carb"`
	Cholesterol     float64  `json:"cholesterol"`
	Sodium          float64  `json:"sodium"`
	Calcium         float64  `json:"calcium"`
	Magnesium       float64  `json:"magnesium"`
	Potassium       float64  `json:"potassium"`
	Iron            float64  `json:"iron"`
	DietLabels      []string `json:"diet_labels"`
	HealthLabels    []string `json:"health_labels"`
	Source          string   `json:"source,omitempty"`
	URL             string   `json:"url,omitempty"`
	IngredientLines []string `json:"ingredient_lines"`
}

// NewRecipeDetail flattens a candidate into its detail view
func NewRecipeDetail(r model.RecipeCandidate) RecipeDetail {
	return RecipeDetail{
		Title:           r.Title,
		Image:           r.Image,
		Servings:        r.Servings,
		Calories:        round1(r.Calories),
		Protein:         round1(r.Quantity(model.NutrientProtein)),
		Fat:             round1(r.Quantity(model.NutrientFat)),
		Carb:            round1(r.Quantity(model.NutrientCarbs)),
		Cholesterol:     round1(r.Quantity(model.NutrientCholesterol)),
		Sodium:          round1(r.Quantity(model.NutrientSodium)),
		Calcium:         round1(r.Quantity(model.NutrientCalcium)),
		Magnesium:       round1(r.Quantity(model.NutrientMagnesium)),
		Potassium:       round1(r.Quantity(model.NutrientPotassium)),
		Iron:            round1(r.Quantity(model.NutrientIron)),
		DietLabels:      orEmpty(r.DietLabels),
		HealthLabels:    orEmpty(r.HealthLabels),
		Source:          r.Source,
		URL:             r.URL,
		IngredientLines: orEmpty(r.IngredientLines),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
