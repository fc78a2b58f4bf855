package service

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/pageza/mealplan/backend/internal/model"
)

// Policy selects which candidates fill a plan slot
type Policy string

const (
	// PolicyTopN keeps candidates under the carb ceiling, in upstream order, truncated
	PolicyTopN Policy = "top_n"
	// PolicyRandom picks one candidate uniformly, dinner avoiding lunch's title
	PolicyRandom Policy = "random"
)

// Policies lists the accepted selection policies
var Policies = []Policy{PolicyTopN, PolicyRandom}

// ParsePolicy parses a policy name. An empty name is returned as is so the
// caller can apply its default.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "", PolicyTopN, PolicyRandom:
		return p, nil
	}
	return "", fmt.Errorf("unknown selection policy %q", s)
}

// SelectTopN keeps the candidates whose carbohydrates do not exceed ceiling,
// preserving order, and truncates to n. Candidates that do not report
// carbohydrates never pass a ceiling. Without a ceiling nothing is filtered.
func SelectTopN(candidates []model.RecipeCandidate, ceiling float64, hasCeiling bool, n int) []model.RecipeCandidate {
	selected := make([]model.RecipeCandidate, 0, n)
	for _, c := range candidates {
		if len(selected) >= n {
			break
		}
		if hasCeiling {
			if carbs, ok := c.CarbGrams(); !ok || carbs > ceiling {
				continue
			}
		}
		selected = append(selected, c)
	}
	return selected
}

// SelectRandom picks one candidate. Candidates titled excludeTitle are
// skipped unless that leaves nothing, in which case the full list is used.
func SelectRandom(candidates []model.RecipeCandidate, excludeTitle string, rng *rand.Rand) []model.RecipeCandidate {
	if len(candidates) == 0 {
		return []model.RecipeCandidate{}
	}

	pool := candidates
	if excludeTitle != "" {
		filtered := make([]model.RecipeCandidate, 0, len(candidates))
		for _, c := range candidates {
			if c.Title != excludeTitle {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	return []model.RecipeCandidate{pool[rng.IntN(len(pool))]}
}
