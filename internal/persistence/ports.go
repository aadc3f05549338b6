package persistence

import (
	"context"

	"gastos/internal/core"
)

// Ports for outbound storage adapters.
type (
	// Gateway loads and saves the whole ordered collection at once.
	Gateway interface {
		// Load returns every stored record in insertion order. Missing state
		// yields an empty slice and no error.
		Load(ctx context.Context) ([]core.Expense, error)
		// Save replaces all stored state with records.
		Save(ctx context.Context, records []core.Expense) error
	}
)
