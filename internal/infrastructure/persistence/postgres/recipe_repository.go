package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// RecipeRepository implements the recipe repository interface
type RecipeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *pgxpool.Pool, logger *zap.Logger) outbound.RecipeRepository {
	return &RecipeRepository{
		db:     db,
		logger: logger,
	}
}

// FindAll returns the recipe catalog with ingredients attached. An
// empty taste returns everything; otherwise the match is exact.
func (r *RecipeRepository) FindAll(ctx context.Context, taste string) ([]recipe.Recipe, error) {
	query := `
		SELECT id, title, taste, cuisine, prep_time, description, instructions
		FROM recipes
		WHERE $1 = '' OR taste = $1
		ORDER BY title`

	rows, err := r.db.Query(ctx, query, taste)
	if err != nil {
		r.logger.Error("Failed to load recipe catalog", zap.Error(err))
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []recipe.Recipe
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var rec recipe.Recipe
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Taste, &rec.Cuisine,
			&rec.PrepTime, &rec.Description, &rec.Instructions); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		index[rec.ID] = len(recipes)
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	if len(recipes) == 0 {
		return recipes, nil
	}

	if err := r.attachIngredients(ctx, recipes, index); err != nil {
		return nil, err
	}

	return recipes, nil
}

func (r *RecipeRepository) attachIngredients(ctx context.Context, recipes []recipe.Recipe, index map[uuid.UUID]int) error {
	ids := make([]uuid.UUID, 0, len(recipes))
	for _, rec := range recipes {
		ids = append(ids, rec.ID)
	}

	query := `
		SELECT recipe_id, item, quantity
		FROM recipe_ingredients
		WHERE recipe_id = ANY($1)
		ORDER BY recipe_id, position`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID uuid.UUID
		var ing recipe.Ingredient
		if err := rows.Scan(&recipeID, &ing.Item, &ing.Quantity); err != nil {
			return fmt.Errorf("scan recipe ingredient: %w", err)
		}
		if i, ok := index[recipeID]; ok {
			recipes[i].Ingredients = append(recipes[i].Ingredients, ing)
		}
	}

	return rows.Err()
}

// BulkCreate inserts a batch of recipes and their ingredients in one
// transaction, so a partial import never leaves orphan ingredient rows.
func (r *RecipeRepository) BulkCreate(ctx context.Context, recipes []recipe.Recipe) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	recipeQuery := `
		INSERT INTO recipes (id, title, taste, cuisine, prep_time, description, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	ingredientQuery := `
		INSERT INTO recipe_ingredients (recipe_id, position, item, quantity)
		VALUES ($1, $2, $3, $4)`

	for _, rec := range recipes {
		if _, err := tx.Exec(ctx, recipeQuery,
			rec.ID, rec.Title, rec.Taste, rec.Cuisine,
			rec.PrepTime, rec.Description, rec.Instructions); err != nil {
			return fmt.Errorf("insert recipe %q: %w", rec.Title, err)
		}

		for i, ing := range rec.Ingredients {
			if _, err := tx.Exec(ctx, ingredientQuery,
				rec.ID, i, ing.Item, ing.Quantity); err != nil {
				return fmt.Errorf("insert ingredient %q of %q: %w", ing.Item, rec.Title, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.Info("Recipes stored", zap.Int("count", len(recipes)))
	return nil
}
