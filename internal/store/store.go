// Package store holds the ordered in-memory expense collection and writes it
// through a persistence gateway after every mutation.
package store

import (
	"context"
	"fmt"
	"sync"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/persistence"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store owns the ledger records. Update and Remove act on the first record
// whose description matches; descriptions are not unique.
type Store struct {
	mu      sync.Mutex
	items   []core.Expense
	gateway persistence.Gateway
	logger  *log.Logger
}

// Open loads the collection through gateway. A load failure is logged and
// the store starts empty.
func Open(ctx context.Context, gateway persistence.Gateway, logger *log.Logger) *Store {
	logger = logger.WithComponent(log.ComponentStore)
	items, err := gateway.Load(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load ledger, starting empty",
			log.NewFields().
				WithOperation(log.OpLoad).
				WithErrorType(log.ErrorTypePersistence).
				WithError(err).
				ToSlice()...)
		items = nil
	}
	logger.InfoContext(ctx, "Ledger loaded", log.FieldRecords, len(items))
	return &Store{
		items:   core.Clone(items),
		gateway: gateway,
		logger:  logger,
	}
}

// All returns a copy of the records in stored order.
func (s *Store) All() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Clone(s.items)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Add appends e and saves. A save failure is returned wrapped in
// core.ErrPersistence; the record stays in memory.
//
// Records are not unique by content, so e gets a fresh ID when its ID is
// nil or already held by a stored record.
func (s *Store) Add(ctx context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil || s.hasID(e.ID) {
		e.ID = uuid.New()
	}
	s.items = append(s.items, e)
	return s.save(ctx)
}

// FindFirstByDescription returns the index and a copy of the first record
// whose description equals desc exactly.
func (s *Store) FindFirstByDescription(desc string) (int, core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(desc)
	if i < 0 {
		return -1, core.Expense{}, false
	}
	return i, s.items[i], true
}

// Update replaces category, date and amount of the first record matching
// desc. Description and position are unchanged.
func (s *Store) Update(ctx context.Context, desc, category, date string, amount decimal.Decimal) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(desc)
	if i < 0 {
		return core.Expense{}, fmt.Errorf("%w: %q", core.ErrNotFound, desc)
	}
	s.items[i].Category = category
	s.items[i].Date = date
	s.items[i].Amount = amount
	return s.items[i], s.save(ctx)
}

// Remove deletes the first record matching desc, keeping the order of the rest.
func (s *Store) Remove(ctx context.Context, desc string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(desc)
	if i < 0 {
		return core.Expense{}, fmt.Errorf("%w: %q", core.ErrNotFound, desc)
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return removed, s.save(ctx)
}

func (s *Store) indexOf(desc string) int {
	for i, e := range s.items {
		if e.Description == desc {
			return i
		}
	}
	return -1
}

func (s *Store) hasID(id uuid.UUID) bool {
	for _, e := range s.items {
		if e.ID == id {
			return true
		}
	}
	return false
}

// save must be called with mu held.
func (s *Store) save(ctx context.Context) error {
	if err := s.gateway.Save(ctx, core.Clone(s.items)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save ledger",
			log.NewFields().
				WithOperation(log.OpSave).
				WithErrorType(log.ErrorTypePersistence).
				WithError(err).
				ToSlice()...)
		return fmt.Errorf("%w: %w", core.ErrPersistence, err)
	}
	s.logger.DebugContext(ctx, "Ledger saved", log.FieldRecords, len(s.items))
	return nil
}
