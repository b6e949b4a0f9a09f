package memory

import (
	"context"
	"sync"

	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/ports/outbound"
)

// RecipeRepository is an in-memory recipe catalog
type RecipeRepository struct {
	mu      sync.RWMutex
	recipes []recipe.Recipe
}

// NewRecipeRepository creates an empty in-memory catalog
func NewRecipeRepository() outbound.RecipeRepository {
	return &RecipeRepository{}
}

// FindAll returns the catalog, filtered by taste when one is given
func (r *RecipeRepository) FindAll(ctx context.Context, taste string) ([]recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]recipe.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		if taste != "" && rec.Taste != taste {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// BulkCreate appends recipes to the catalog
func (r *RecipeRepository) BulkCreate(ctx context.Context, recipes []recipe.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recipes = append(r.recipes, recipes...)
	return nil
}
