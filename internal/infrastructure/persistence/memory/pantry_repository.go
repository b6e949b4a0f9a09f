// Package memory provides in-memory repository implementations for
// development and testing
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/ports/outbound"
)

type pantryKey struct {
	name string
	unit pantry.Unit
}

// PantryRepository is an in-memory pantry store
type PantryRepository struct {
	mu    sync.RWMutex
	items map[pantryKey]float64
	order []pantryKey
}

// NewPantryRepository creates an empty in-memory pantry
func NewPantryRepository() outbound.PantryRepository {
	return &PantryRepository{
		items: make(map[pantryKey]float64),
	}
}

// Snapshot returns items in insertion order
func (r *PantryRepository) Snapshot(ctx context.Context) (pantry.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(pantry.Snapshot, 0, len(r.order))
	for _, key := range r.order {
		snapshot = append(snapshot, pantry.Item{
			Name:     key.name,
			Quantity: r.items[key],
			Unit:     key.unit,
		})
	}
	return snapshot, nil
}

// Add accumulates quantity for an existing name/unit pair
func (r *PantryRepository) Add(ctx context.Context, item pantry.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pantryKey{name: item.Name, unit: item.Unit}
	if _, ok := r.items[key]; !ok {
		r.order = append(r.order, key)
	}
	r.items[key] += item.Quantity
	return nil
}

// Consume decrements every row matching the name, flooring at zero
func (r *PantryRepository) Consume(ctx context.Context, name string, quantity float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for _, key := range r.order {
		if key.name != name {
			continue
		}
		found = true
		remaining := r.items[key] - quantity
		if remaining < 0 {
			remaining = 0
		}
		r.items[key] = remaining
	}

	if !found {
		return fmt.Errorf("pantry item not found: %s", name)
	}
	return nil
}
