// Package feasibility implements the recipe feasibility engine: it
// normalizes heterogeneous ingredient quantities and names, scores
// recipes against a pantry snapshot, ranks the candidates and renders
// the evidence into a prompt for the generation call.
//
// Everything in this package is a pure function of its inputs plus the
// constructed configuration tables. No I/O, no shared mutable state;
// concurrent calls are safe.
package feasibility

import (
	"regexp"
	"strconv"
	"strings"
)

// Normalizer converts free-form quantity strings into grams-equivalent
// and collapses ingredient name variants to a canonical key. The
// substring-matching implementation below is a known fragile heuristic;
// the interface exists so a token-boundary-aware implementation can
// replace it without touching the scorer or ranker.
type Normalizer interface {
	// ParseQuantity never fails: it always returns a finite,
	// non-negative grams-equivalent value.
	ParseQuantity(text string) float64

	// Canonicalize returns the matching key for an ingredient name.
	// Two names refer to the same ingredient iff their keys are equal.
	Canonicalize(name string) string
}

// UnitFactor maps a unit keyword to its grams-equivalent factor.
// Keywords are matched in declaration order, first match wins, so the
// table is an ordered slice rather than a map.
type UnitFactor struct {
	Keyword string
	Grams   float64
}

// Config carries the fixed tables the normalizer works from. Tests may
// substitute alternate tables; production code uses DefaultConfig.
type Config struct {
	Units       []UnitFactor
	Descriptors []string
}

// DefaultConfig returns the standard conversion table and descriptor
// list. Volume units assume water-like density; the "number" unit
// approximates one piece as one gram, which is a deliberate rough
// heuristic for count-based items, not a physical conversion.
func DefaultConfig() Config {
	return Config{
		Units: []UnitFactor{
			{"g", 1.0},
			{"gram", 1.0},
			{"grams", 1.0},
			{"tbsp", 15.0},
			{"tablespoon", 15.0},
			{"tsp", 5.0},
			{"teaspoon", 5.0},
			{"cup", 240.0},
			{"cups", 240.0},
			{"ml", 1.0},
			{"ltr", 1000.0},
			{"litre", 1000.0},
			{"liter", 1000.0},
			{"number", 1.0},
		},
		Descriptors: []string{
			"boiled", "minced", "chopped", "powder", "ground",
			"fresh", "dried", "sliced", "shredded", "optional",
		},
	}
}

// SubstringNormalizer implements Normalizer with first-matching-substring
// lookups against the configured tables.
type SubstringNormalizer struct {
	cfg Config
}

// NewNormalizer creates a normalizer from the given tables.
func NewNormalizer(cfg Config) *SubstringNormalizer {
	return &SubstringNormalizer{cfg: cfg}
}

var numberPattern = regexp.MustCompile(`[\d.]+`)

// ParseQuantity converts a string like "250g", "2 tbsp" or "1 cup"
// into approximate grams. The first contiguous numeric substring is
// the amount (1.0 when absent or unparsable); the first unit keyword
// contained in the string supplies the factor. Unknown units leave the
// amount unconverted, implicitly treating it as grams already.
func (n *SubstringNormalizer) ParseQuantity(text string) float64 {
	text = strings.ToLower(strings.TrimSpace(text))

	amount := 1.0
	if match := numberPattern.FindString(text); match != "" {
		if v, err := strconv.ParseFloat(match, 64); err == nil {
			amount = v
		}
	}

	for _, u := range n.cfg.Units {
		if strings.Contains(text, u.Keyword) {
			return amount * u.Grams
		}
	}
	return amount
}

// Canonicalize lowercases the name, deletes every descriptor occurrence
// as a literal substring, strips a single trailing plural "s" and trims.
// Descriptor deletion is intentionally not word-boundary aware; partial
// overlaps with other words are an accepted limitation of the matching
// scheme. Empty input yields an empty key.
func (n *SubstringNormalizer) Canonicalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, desc := range n.cfg.Descriptors {
		name = strings.ReplaceAll(name, desc, "")
	}
	name = strings.TrimSuffix(name, "s")
	return strings.TrimSpace(name)
}
