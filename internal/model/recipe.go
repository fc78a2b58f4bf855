package model

// Nutrient keys used by the upstream totalNutrients map
const (
	NutrientProtein     = "PROCNT"
	NutrientFat         = "FAT"
	NutrientCarbs       = "CHOCDF"
	NutrientCholesterol = "CHOLE"
	NutrientSodium      = "NA"
	NutrientCalcium     = "CA"
	NutrientMagnesium   = "MG"
	NutrientPotassium   = "K"
	NutrientIron        = "FE"
)

// TrackedNutrients are the nutrients surfaced in plans, details and totals
var TrackedNutrients = []string{
	NutrientProtein,
	NutrientFat,
	NutrientCarbs,
	NutrientCholesterol,
	NutrientSodium,
	NutrientCalcium,
	NutrientMagnesium,
	NutrientPotassium,
	NutrientIron,
}

// Nutrient is one entry of a recipe's nutrient map
type Nutrient struct {
	Label    string  `json:"label,omitempty"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// RecipeCandidate is a recipe returned by a provider before selection
type RecipeCandidate struct {
	Title           string              `json:"title"`
	Image           string              `json:"image"`
	URL             string              `json:"url,omitempty"`
	Source          string              `json:"source,omitempty"`
	Servings        float64             `json:"servings"`
	Calories        float64             `json:"calories"`
	Nutrients       map[string]Nutrient `json:"nutrients"`
	DietLabels      []string            `json:"diet_labels"`
	HealthLabels    []string            `json:"health_labels"`
	IngredientLines []string            `json:"ingredient_lines,omitempty"`
}

// Quantity returns the amount of a nutrient, zero when the recipe does not report it
func (r RecipeCandidate) Quantity(key string) float64 {
	return r.Nutrients[key].Quantity
}

// Carbs returns the carbohydrate grams, zero when not reported
func (r RecipeCandidate) Carbs() float64 {
	return r.Quantity(NutrientCarbs)
}

// CarbGrams returns the carbohydrate grams and whether the recipe reports them
func (r RecipeCandidate) CarbGrams() (float64, bool) {
	n, ok := r.Nutrients[NutrientCarbs]
	return n.Quantity, ok
}
