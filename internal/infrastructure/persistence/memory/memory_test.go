package memory

import (
	"context"
	"testing"
	"time"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPantryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Add_AccumulatesSameNameAndUnit", func(t *testing.T) {
		repo := NewPantryRepository()
		require.NoError(t, repo.Add(ctx, pantry.Item{Name: "flour", Quantity: 300, Unit: pantry.UnitGram}))
		require.NoError(t, repo.Add(ctx, pantry.Item{Name: "flour", Quantity: 200, Unit: pantry.UnitGram}))

		snapshot, err := repo.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, snapshot, 1)
		assert.Equal(t, 500.0, snapshot[0].Quantity)
	})

	t.Run("Add_KeepsDistinctUnitsSeparate", func(t *testing.T) {
		repo := NewPantryRepository()
		require.NoError(t, repo.Add(ctx, pantry.Item{Name: "milk", Quantity: 1, Unit: pantry.UnitLitre}))
		require.NoError(t, repo.Add(ctx, pantry.Item{Name: "milk", Quantity: 200, Unit: pantry.UnitGram}))

		snapshot, err := repo.Snapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, snapshot, 2)
	})

	t.Run("Consume_FloorsAtZero", func(t *testing.T) {
		repo := NewPantryRepository()
		require.NoError(t, repo.Add(ctx, pantry.Item{Name: "sugar", Quantity: 50, Unit: pantry.UnitGram}))
		require.NoError(t, repo.Consume(ctx, "sugar", 80))

		snapshot, err := repo.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0.0, snapshot[0].Quantity)
	})

	t.Run("Consume_UnknownItemErrors", func(t *testing.T) {
		repo := NewPantryRepository()
		assert.Error(t, repo.Consume(ctx, "saffron", 1))
	})
}

func TestRecipeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("FindAll_FiltersByTaste", func(t *testing.T) {
		repo := NewRecipeRepository()
		require.NoError(t, repo.BulkCreate(ctx, []recipe.Recipe{
			{Title: "Pancakes", Taste: "Sweet"},
			{Title: "Omelette", Taste: "Savory"},
		}))

		sweet, err := repo.FindAll(ctx, "Sweet")
		require.NoError(t, err)
		require.Len(t, sweet, 1)
		assert.Equal(t, "Pancakes", sweet[0].Title)

		all, err := repo.FindAll(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestCacheRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Get_MissReturnsErrCacheMiss", func(t *testing.T) {
		cache := NewCacheRepository()
		_, err := cache.Get(ctx, "absent")
		assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	})

	t.Run("SetThenGet_RoundTrips", func(t *testing.T) {
		cache := NewCacheRepository()
		require.NoError(t, cache.Set(ctx, "k", []byte("reply"), time.Minute))

		value, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("reply"), value)
	})

	t.Run("Get_ExpiredEntryMisses", func(t *testing.T) {
		cache := NewCacheRepository()
		require.NoError(t, cache.Set(ctx, "k", []byte("reply"), -time.Second))

		_, err := cache.Get(ctx, "k")
		assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	})
}
