// Package pantry contains the core domain model for pantry stock.
// A pantry snapshot is an immutable input to the feasibility engine;
// nothing in this package mutates state.
package pantry

// Unit is the storage unit an item quantity is recorded in.
// The set mirrors the ingredient table's unit enum.
type Unit string

const (
	UnitGram   Unit = "gram"
	UnitLitre  Unit = "litre"
	UnitNumber Unit = "number" // count-based items (eggs, onions)
)

// Item is a single pantry entry as supplied by the pantry source.
type Item struct {
	Name     string
	Quantity float64
	Unit     Unit
}

// Snapshot is the pantry state at a point in time. Callers hand the
// engine a snapshot per invocation and it is never written back.
type Snapshot []Item
