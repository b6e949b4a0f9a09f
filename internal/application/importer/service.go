// Package importer loads structured recipe records into the catalog.
// The records are the output of the external free-text extraction step
// (a JSON file of title/taste/cuisine/prep_time/description/ingredients/
// instructions objects); that extraction is a black box this service
// only consumes.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// Service imports structured recipe files into the recipe repository.
type Service struct {
	recipeRepo outbound.RecipeRepository
	logger     *zap.Logger
}

// NewService creates an importer service.
func NewService(recipeRepo outbound.RecipeRepository, logger *zap.Logger) *Service {
	return &Service{
		recipeRepo: recipeRepo,
		logger:     logger.Named("importer"),
	}
}

// looseRecord tolerates the shape drift the extraction step produces:
// instructions may be a string or an array of steps, ingredients may
// be objects or bare strings.
type looseRecord struct {
	Title        string          `json:"title"`
	Taste        string          `json:"taste"`
	Cuisine      string          `json:"cuisine"`
	PrepTime     int             `json:"prep_time"`
	Description  string          `json:"description"`
	Ingredients  json.RawMessage `json:"ingredients"`
	Instructions json.RawMessage `json:"instructions"`
}

type looseIngredient struct {
	Item     string `json:"item"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// ImportFile reads a structured-recipes JSON file and bulk-inserts the
// catalog. Records whose ingredients cannot be interpreted are skipped
// with a warning rather than failing the whole import.
func (s *Service) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read recipes file: %w", err)
	}

	var records []looseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parse recipes file: %w", err)
	}

	recipes := make([]recipe.Recipe, 0, len(records))
	for _, rec := range records {
		ingredients, err := parseIngredients(rec.Ingredients)
		if err != nil {
			s.logger.Warn("Skipping recipe with unreadable ingredients",
				zap.String("title", rec.Title),
				zap.Error(err),
			)
			continue
		}

		recipes = append(recipes, recipe.Recipe{
			ID:           uuid.New(),
			Title:        rec.Title,
			Taste:        rec.Taste,
			Cuisine:      rec.Cuisine,
			PrepTime:     rec.PrepTime,
			Description:  rec.Description,
			Ingredients:  ingredients,
			Instructions: parseInstructions(rec.Instructions),
		})
	}

	if len(recipes) == 0 {
		return 0, nil
	}

	if err := s.recipeRepo.BulkCreate(ctx, recipes); err != nil {
		return 0, fmt.Errorf("store recipes: %w", err)
	}

	s.logger.Info("Recipe import finished",
		zap.Int("imported", len(recipes)),
		zap.Int("skipped", len(records)-len(recipes)),
	)
	return len(recipes), nil
}

// parseIngredients accepts a list of {item|name, quantity} objects or
// bare strings (unnamed quantity).
func parseIngredients(raw json.RawMessage) ([]recipe.Ingredient, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var objects []looseIngredient
	if err := json.Unmarshal(raw, &objects); err == nil {
		out := make([]recipe.Ingredient, 0, len(objects))
		for _, obj := range objects {
			item := obj.Item
			if item == "" {
				item = obj.Name
			}
			if item == "" {
				item = "Unnamed"
			}
			out = append(out, recipe.Ingredient{Item: item, Quantity: obj.Quantity})
		}
		return out, nil
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		out := make([]recipe.Ingredient, 0, len(names))
		for _, name := range names {
			out = append(out, recipe.Ingredient{Item: name})
		}
		return out, nil
	}

	return nil, fmt.Errorf("ingredients are neither objects nor strings")
}

// parseInstructions unifies a string or an array of steps into a
// single newline-joined string.
func parseInstructions(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	var steps []string
	if err := json.Unmarshal(raw, &steps); err == nil {
		return strings.Join(steps, "\n")
	}

	return string(raw)
}
