package feasibility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/recipe"
)

// PromptBuilder renders pantry state and the top-ranked recipes into a
// single grounded prompt for the generation call. Pure string
// formatting: no I/O and no failure mode.
type PromptBuilder struct{}

// NewPromptBuilder creates a prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build assembles the full prompt: instructional preamble, the user's
// raw request verbatim, the pantry as supplied (human-facing units, no
// normalization at this stage) and one annotated block per top-ranked
// recipe, followed by the closing guidance for the model.
func (b *PromptBuilder) Build(userRequest string, snapshot pantry.Snapshot, topScored []recipe.ScoredRecipe) string {
	pantryLines := make([]string, 0, len(snapshot))
	for _, item := range snapshot {
		pantryLines = append(pantryLines, fmt.Sprintf("- %s: %s %s",
			item.Name,
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			item.Unit,
		))
	}

	blocks := make([]string, 0, len(topScored))
	for _, sr := range topScored {
		blocks = append(blocks, b.recipeBlock(sr))
	}

	var sb strings.Builder
	sb.WriteString("You are an AI assistant that suggests recipes based on user preferences and available ingredients.\n\n")
	sb.WriteString("User's request: " + userRequest + "\n\n")
	sb.WriteString("User currently has these ingredients (approx in grams):\n")
	sb.WriteString(strings.Join(pantryLines, "\n"))
	sb.WriteString("\n\nHere are some recipes that partly or fully match the user's ingredients:\n")
	sb.WriteString(strings.Join(blocks, "\n\n"))
	sb.WriteString("\n\nOnly recommend recipes with a good fitness score (above ~0.5) and ")
	sb.WriteString("avoid those missing vital ingredients entirely. Suggest how to handle small shortages.\n")
	sb.WriteString("Respond in a friendly and concise way.")
	return sb.String()
}

// recipeBlock renders a single scored recipe with its own ingredient
// list, the score to two decimals and, when present, the shortfall
// line with grams rounded to one decimal.
func (b *PromptBuilder) recipeBlock(sr recipe.ScoredRecipe) string {
	ingredients := make([]string, 0, len(sr.Recipe.Ingredients))
	for _, ing := range sr.Recipe.Ingredients {
		ingredients = append(ingredients, fmt.Sprintf("%s (%s)", ing.Item, ing.Quantity))
	}

	var sb strings.Builder
	sb.WriteString("Recipe: " + sr.Recipe.Title + "\n")
	sb.WriteString(" - Taste: " + sr.Recipe.Taste + "\n")
	sb.WriteString(" - Cuisine: " + sr.Recipe.Cuisine + "\n")
	sb.WriteString(fmt.Sprintf(" - Prep Time: %d minutes\n", sr.Recipe.PrepTime))
	sb.WriteString(" - Description: " + sr.Recipe.Description + "\n")
	sb.WriteString(" - Ingredients: " + strings.Join(ingredients, ", ") + "\n")
	sb.WriteString(" - Instructions: " + sr.Recipe.Instructions + "\n")
	sb.WriteString(fmt.Sprintf(" - Fitness Score: %.2f", sr.Score))

	if len(sr.Missing) > 0 {
		shortfalls := make([]string, 0, len(sr.Missing))
		for _, m := range sr.Missing {
			shortfalls = append(shortfalls, fmt.Sprintf("%s (~%.1fg short)", m.Name, m.Grams))
		}
		sb.WriteString("\n - Missing or short ingredients: " + strings.Join(shortfalls, ", "))
	}
	return sb.String()
}
