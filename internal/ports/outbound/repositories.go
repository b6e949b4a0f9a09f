// Package outbound defines the interfaces for outbound ports (driven
// adapters): the collaborators the application talks to but does not
// own. The feasibility engine consumes their data and never writes
// back through them except where a contract says so explicitly.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/recipe"
)

// ErrCacheMiss is returned by CacheRepository.Get when no entry exists.
var ErrCacheMiss = errors.New("cache: key not found")

// PantryRepository supplies pantry snapshots and supports the shopping
// and cooking flows. Snapshot is the collaborator contract the engine
// depends on; Add and Consume exist for the stock-keeping surface only.
type PantryRepository interface {
	// Snapshot returns the current pantry state. The engine treats
	// the result as immutable.
	Snapshot(ctx context.Context) (pantry.Snapshot, error)

	// Add upserts an item: existing quantities accumulate, new names
	// create a row.
	Add(ctx context.Context, item pantry.Item) error

	// Consume decrements an item's quantity, flooring at zero.
	Consume(ctx context.Context, name string, quantity float64) error
}

// RecipeRepository supplies the recipe catalog, optionally pre-filtered
// by a taste tag (case-sensitive exact match, applied in the data
// source per the collaborator contract — never in the engine).
type RecipeRepository interface {
	// FindAll returns catalog recipes in stable storage order. An
	// empty taste means no filter.
	FindAll(ctx context.Context, taste string) ([]recipe.Recipe, error)

	// BulkCreate inserts imported recipes with their ingredient lists.
	BulkCreate(ctx context.Context, recipes []recipe.Recipe) error
}

// CacheRepository caches assistant replies keyed by prompt digest.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// AIService is the generation-call collaborator: prompt string in,
// reply string out. The application performs no retries and no
// validation of the reply content.
type AIService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
