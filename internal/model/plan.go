package model

// MealPlan maps every meal category to its selected recipes
type MealPlan map[MealCategory][]RecipeCandidate

// NewMealPlan returns a plan with an empty slot for every category
func NewMealPlan() MealPlan {
	p := make(MealPlan, len(Categories))
	for _, c := range Categories {
		p[c] = []RecipeCandidate{}
	}
	return p
}

// Normalize returns a copy holding exactly the four known categories.
// Missing slots become empty, unknown keys are dropped.
func (p MealPlan) Normalize() MealPlan {
	out := NewMealPlan()
	for _, c := range Categories {
		if recipes, ok := p[c]; ok && recipes != nil {
			out[c] = append([]RecipeCandidate{}, recipes...)
		}
	}
	return out
}

// WithSlot returns a copy of the plan with one category replaced
func (p MealPlan) WithSlot(c MealCategory, recipes []RecipeCandidate) MealPlan {
	out := p.Normalize()
	if recipes == nil {
		recipes = []RecipeCandidate{}
	}
	out[c] = append([]RecipeCandidate{}, recipes...)
	return out
}

// SlotStatus describes how a category's slot was filled
type SlotStatus string

const (
	// SlotOK means at least one recipe was selected
	SlotOK SlotStatus = "ok"
	// SlotNoMatch means the provider returned candidates but none passed selection
	SlotNoMatch SlotStatus = "no_match"
	// SlotNoResults means the provider returned zero candidates
	SlotNoResults SlotStatus = "no_results"
	// SlotFailed means the provider call failed
	SlotFailed SlotStatus = "failed"
)

// SlotOutcome reports what happened while filling one category
type SlotOutcome struct {
	Status     SlotStatus `json:"status"`
	Candidates int        `json:"candidates"`
	Selected   int        `json:"selected"`
	Error      string     `json:"error,omitempty"`
}

// EatenFlags marks the categories the user has eaten
type EatenFlags map[MealCategory]bool

// NutrientTotals is the running sum over eaten categories
type NutrientTotals struct {
	Recipes   int                 `json:"recipes"`
	Calories  float64             `json:"calories"`
	Nutrients map[string]Nutrient `json:"nutrients"`
}
