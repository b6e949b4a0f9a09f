// Package recipe contains the core domain model for the recipe catalog.
package recipe

import "github.com/google/uuid"

// Ingredient is one line of a recipe's ingredient list. Quantity is
// free-form text ("2 cups", "100g", "2") exactly as extracted from the
// source recipe; interpretation happens in the feasibility engine.
type Ingredient struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
}

// Recipe is a structured recipe record as produced by the external
// extraction step and stored in the catalog. Immutable input to the
// feasibility engine.
type Recipe struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Taste        string       `json:"taste"`
	Cuisine      string       `json:"cuisine"`
	PrepTime     int          `json:"prep_time"`
	Description  string       `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions"`
}

// Shortfall records how many grams-equivalent of an ingredient the
// pantry is short for a given recipe. Name is the canonical key, not
// the raw ingredient text.
type Shortfall struct {
	Name  string
	Grams float64
}

// ScoredRecipe is the scorer's verdict on one recipe against one
// pantry snapshot. Score is either exactly 0.0 (excluded) or in
// [0.5, 1.0] (eligible); the scorer never emits a value in (0, 0.5).
// Produced fresh per scoring call and never mutated afterwards.
type ScoredRecipe struct {
	Recipe  Recipe
	Score   float64
	Missing []Shortfall
}
