package feasibility

import (
	"sort"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/recipe"
)

// maxRanked caps how many scored recipes the ranker returns.
const maxRanked = 3

// Ranker scores a recipe catalog against a pantry and keeps the best
// candidates. Taste pre-filtering is the recipe source's job; by the
// time recipes reach the ranker the catalog is already filtered.
type Ranker struct {
	scorer *Scorer
}

// NewRanker creates a ranker on top of the given scorer.
func NewRanker(scorer *Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank scores every candidate, discards zero scores, sorts by score
// descending and returns at most three entries. The sort is stable so
// equal scores keep the catalog's original relative order. An empty
// result is a valid terminal outcome ("no feasible recipe"), not an
// error.
func (rk *Ranker) Rank(recipes []recipe.Recipe, snapshot pantry.Snapshot) []recipe.ScoredRecipe {
	scored := make([]recipe.ScoredRecipe, 0, len(recipes))
	for _, r := range recipes {
		sr := rk.scorer.Score(r, snapshot)
		if sr.Score > 0.0 {
			scored = append(scored, sr)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxRanked {
		scored = scored[:maxRanked]
	}
	return scored
}
