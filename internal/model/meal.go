package model

import (
	"fmt"
	"strings"
)

// MealCategory is one slot of a day's meal plan
type MealCategory string

const (
	Breakfast MealCategory = "breakfast"
	Lunch     MealCategory = "lunch"
	Dinner    MealCategory = "dinner"
	Snack     MealCategory = "snack"
)

// Categories lists every meal category in display order
var Categories = []MealCategory{Breakfast, Lunch, Dinner, Snack}

// Valid reports whether c is one of the four known categories
func (c MealCategory) Valid() bool {
	switch c {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// ParseMealCategory parses a category name, ignoring case and surrounding space
func ParseMealCategory(s string) (MealCategory, error) {
	c := MealCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown meal category %q", s)
	}
	return c, nil
}

// Diet types offered by the upstream recipe API
var DietTypes = []string{
	"balanced",
	"high-fiber",
	"high-protein",
	"low-carb",
	"low-fat",
	"low-sodium",
}

// Health labels accepted as additional upstream filters
var HealthLabels = []string{
	"alcohol-free",
	"dairy-free",
	"egg-free",
	"gluten-free",
	"keto-friendly",
	"kosher",
	"low-sugar",
	"paleo",
	"peanut-free",
	"pescatarian",
	"pork-free",
	"soy-free",
	"tree-nut-free",
	"vegan",
	"vegetarian",
}

// DefaultCeilings are the per-category carbohydrate limits (grams) used
// when a plan request does not carry its own.
func DefaultCeilings() map[MealCategory]float64 {
	return map[MealCategory]float64{
		Breakfast: 10,
		Lunch:     20,
		Dinner:    20,
		Snack:     5,
	}
}

// DietConstraint is the immutable input of a plan or refresh request
type DietConstraint struct {
	Diet         string                   `json:"diet"`
	Ceilings     map[MealCategory]float64 `json:"ceilings,omitempty"`
	HealthLabels []string                 `json:"health_labels,omitempty"`
}

// Ceiling returns the carbohydrate ceiling for a category, if one is set
func (d DietConstraint) Ceiling(c MealCategory) (float64, bool) {
	v, ok := d.Ceilings[c]
	return v, ok
}
