package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// PantryRepository implements the pantry repository interface
type PantryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPantryRepository creates a new pantry repository
func NewPantryRepository(db *pgxpool.Pool, logger *zap.Logger) outbound.PantryRepository {
	return &PantryRepository{
		db:     db,
		logger: logger,
	}
}

// Snapshot returns every pantry row as stored, raw units included.
// Canonicalization is the scorer's job, not the store's.
func (r *PantryRepository) Snapshot(ctx context.Context) (pantry.Snapshot, error) {
	query := `SELECT name, quantity, unit FROM pantry_items ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load pantry snapshot", zap.Error(err))
		return nil, fmt.Errorf("query pantry items: %w", err)
	}
	defer rows.Close()

	var snapshot pantry.Snapshot
	for rows.Next() {
		var item pantry.Item
		var unit string
		if err := rows.Scan(&item.Name, &item.Quantity, &unit); err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		item.Unit = pantry.Unit(unit)
		snapshot = append(snapshot, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pantry items: %w", err)
	}

	return snapshot, nil
}

// Add upserts a pantry item: an existing row with the same name and
// unit accumulates quantity, otherwise a new row is created.
func (r *PantryRepository) Add(ctx context.Context, item pantry.Item) error {
	query := `
		INSERT INTO pantry_items (name, quantity, unit)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, unit)
		DO UPDATE SET quantity = pantry_items.quantity + EXCLUDED.quantity, updated_at = NOW()`

	_, err := r.db.Exec(ctx, query, item.Name, item.Quantity, string(item.Unit))
	if err != nil {
		r.logger.Error("Failed to add pantry item",
			zap.String("name", item.Name),
			zap.Error(err),
		)
		return fmt.Errorf("add pantry item: %w", err)
	}

	r.logger.Info("Pantry item added",
		zap.String("name", item.Name),
		zap.Float64("quantity", item.Quantity),
		zap.String("unit", string(item.Unit)),
	)

	return nil
}

// Consume decrements a pantry item by name, flooring at zero so a
// generous recipe never drives stock negative.
func (r *PantryRepository) Consume(ctx context.Context, name string, quantity float64) error {
	query := `
		UPDATE pantry_items
		SET quantity = GREATEST(quantity - $2, 0), updated_at = NOW()
		WHERE name = $1`

	tag, err := r.db.Exec(ctx, query, name, quantity)
	if err != nil {
		r.logger.Error("Failed to consume pantry item",
			zap.String("name", name),
			zap.Error(err),
		)
		return fmt.Errorf("consume pantry item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pantry item not found: %s", name)
	}

	return nil
}
