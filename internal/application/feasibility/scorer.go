package feasibility

import (
	"strconv"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/recipe"
)

const (
	// absentEpsilon is the threshold below which a pantry quantity
	// counts as "none at all" for the vital-ingredient check.
	absentEpsilon = 1e-9

	// shortageTolerance allows a recipe ingredient to count as
	// satisfied with up to 20% less than the required amount.
	shortageTolerance = 0.8

	// coverageFloor is the minimum coverage for a recipe to stay
	// eligible; anything below collapses to a zero score.
	coverageFloor = 0.5
)

// DefaultVitalIngredients is the fixed set of canonical names whose
// total absence disqualifies a recipe outright, no matter how well the
// rest of the pantry covers it.
func DefaultVitalIngredients() map[string]struct{} {
	return map[string]struct{}{
		"egg":          {},
		"flour":        {},
		"milk":         {},
		"pasta":        {},
		"ramen noodle": {},
		"chicken":      {},
		"sugar":        {},
	}
}

// Scorer decides recipe feasibility against a pantry snapshot.
type Scorer struct {
	normalizer Normalizer
	vital      map[string]struct{}
}

// NewScorer creates a scorer using the given normalizer and vital set.
func NewScorer(normalizer Normalizer, vital map[string]struct{}) *Scorer {
	return &Scorer{normalizer: normalizer, vital: vital}
}

// Score evaluates one recipe against the pantry. The result's score is
// exactly 0.0 (excluded) or in [0.5, 1.0]: a missing vital ingredient
// short-circuits to 0.0 with a single-entry missing list, and coverage
// below the floor forces 0.0 while retaining the full missing list.
// Numeric parsing failures are absorbed by the normalizer and never
// propagate; the method has no error return by design.
func (s *Scorer) Score(r recipe.Recipe, snapshot pantry.Snapshot) recipe.ScoredRecipe {
	// Pantry map keyed by canonical name, grams-equivalent summed so
	// duplicate entries accumulate rather than overwrite.
	available := make(map[string]float64, len(snapshot))
	for _, item := range snapshot {
		key := s.normalizer.Canonicalize(item.Name)
		grams := s.normalizer.ParseQuantity(formatItemQuantity(item))
		available[key] += grams
	}

	satisfied := 0
	missing := []recipe.Shortfall{}

	for _, ing := range r.Ingredients {
		key := s.normalizer.Canonicalize(ing.Item)
		required := s.normalizer.ParseQuantity(ing.Quantity)
		has := available[key]

		if _, isVital := s.vital[key]; isVital && has < absentEpsilon {
			// Immediate no: only the vital shortfall is reported,
			// remaining ingredients are not evaluated.
			return recipe.ScoredRecipe{
				Recipe:  r,
				Score:   0.0,
				Missing: []recipe.Shortfall{{Name: key, Grams: required}},
			}
		}

		if has >= required*shortageTolerance {
			satisfied++
		} else {
			shortfall := required - has
			if shortfall < 0 {
				shortfall = 0
			}
			missing = append(missing, recipe.Shortfall{Name: key, Grams: shortfall})
		}
	}

	// A recipe with no ingredients is satisfiable by vacuous truth.
	score := 1.0
	if len(r.Ingredients) > 0 {
		score = float64(satisfied) / float64(len(r.Ingredients))
	}
	if score < coverageFloor {
		score = 0.0
	}

	return recipe.ScoredRecipe{Recipe: r, Score: score, Missing: missing}
}

// formatItemQuantity renders a pantry item as the combined "quantity
// unit" string the normalizer parses, e.g. {6, number} -> "6number".
func formatItemQuantity(item pantry.Item) string {
	return strconv.FormatFloat(item.Quantity, 'f', -1, 64) + string(item.Unit)
}
