package service

import (
	"github.com/pageza/mealplan/backend/internal/model"
)

// SummarizeEaten totals calories and tracked nutrients over every recipe in
// the categories flagged as eaten.
func SummarizeEaten(plan model.MealPlan, eaten model.EatenFlags) model.NutrientTotals {
	totals := model.NutrientTotals{Nutrients: make(map[string]model.Nutrient, len(model.TrackedNutrients))}

	for _, category := range model.Categories {
		if !eaten[category] {
			continue
		}
		for _, recipe := range plan[category] {
			totals.Recipes++
			totals.Calories += recipe.Calories
			for _, key := range model.TrackedNutrients {
				n, ok := recipe.Nutrients[key]
				if !ok {
					continue
				}
				sum := totals.Nutrients[key]
				if sum.Label == "" {
					sum.Label = n.Label
				}
				if sum.Unit == "" {
					sum.Unit = n.Unit
				}
				sum.Quantity += n.Quantity
				totals.Nutrients[key] = sum
			}
		}
	}
	return totals
}
