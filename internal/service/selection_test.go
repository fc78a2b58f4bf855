package service

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplan/backend/internal/model"
)

func TestSelectTopN(t *testing.T) {
	candidates := []model.RecipeCandidate{
		carbRecipe("eight", 8),
		carbRecipe("fifteen", 15),
		carbRecipe("five", 5),
	}

	tests := []struct {
		name       string
		ceiling    float64
		hasCeiling bool
		n          int
		want       []string
	}{
		{"filters and keeps order", 10, true, 2, []string{"eight", "five"}},
		{"ceiling is inclusive", 15, true, 3, []string{"eight", "fifteen", "five"}},
		{"truncates", 20, true, 2, []string{"eight", "fifteen"}},
		{"nothing passes", 4, true, 2, []string{}},
		{"no ceiling keeps everything", 0, false, 2, []string{"eight", "fifteen"}},
		{"zero ceiling", 0, true, 2, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectTopN(candidates, tt.ceiling, tt.hasCeiling, tt.n)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSelectTopNSkipsUnreportedCarbs(t *testing.T) {
	candidates := []model.RecipeCandidate{
		{Title: "no carb data"},
		{Title: "protein only", Nutrients: map[string]model.Nutrient{model.NutrientProtein: {Quantity: 30, Unit: "g"}}},
		carbRecipe("eight", 8),
		carbRecipe("three", 3),
	}

	assert.Equal(t, []string{"three"}, titles(SelectTopN(candidates, 5, true, 2)))
	assert.Equal(t, []string{"no carb data", "protein only"}, titles(SelectTopN(candidates, 0, false, 2)))
}

func TestSelectTopNEmptyInput(t *testing.T) {
	got := SelectTopN(nil, 10, true, 2)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelectRandomPicksOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	candidates := titled("Recipe", 5)

	seen := map[string]bool{}
	for range 200 {
		got := SelectRandom(candidates, "", rng)
		require.Len(t, got, 1)
		seen[got[0].Title] = true
	}
	assert.Len(t, seen, 5)
}

func TestSelectRandomExcludesTitle(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	candidates := []model.RecipeCandidate{carbRecipe("Stew", 1), carbRecipe("Curry", 1), carbRecipe("Stew", 2)}

	for range 100 {
		got := SelectRandom(candidates, "Stew", rng)
		require.Len(t, got, 1)
		assert.Equal(t, "Curry", got[0].Title)
	}
}

func TestSelectRandomFallsBackWhenExclusionEmptiesPool(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	candidates := []model.RecipeCandidate{carbRecipe("Stew", 1), carbRecipe("Stew", 2)}

	got := SelectRandom(candidates, "Stew", rng)
	require.Len(t, got, 1)
	assert.Equal(t, "Stew", got[0].Title)
}

func TestSelectRandomEmpty(t *testing.T) {
	got := SelectRandom(nil, "Stew", rand.New(rand.NewPCG(1, 1)))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy(" RANDOM ")
	require.NoError(t, err)
	assert.Equal(t, PolicyRandom, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Policy(""), p)

	_, err = ParsePolicy("best")
	assert.EqualError(t, err, `unknown selection policy "best"`)
}
