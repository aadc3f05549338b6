package memory

import (
	"context"
	"sync"

	"gastos/internal/core"
)

// Store keeps the last saved collection in memory. Nothing survives the process.
type Store struct {
	mu      sync.Mutex
	items   []core.Expense
	saves   int
	saveErr error
}

func New(seed ...core.Expense) *Store {
	return &Store{items: core.Clone(seed)}
}

// Load returns a copy of the stored collection.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Clone(s.items), nil
}

// Save replaces the stored collection unless a failure was injected.
func (s *Store) Save(_ context.Context, records []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.items = core.Clone(records)
	return nil
}

// FailSaves makes every following Save return err. Pass nil to recover.
func (s *Store) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves reports how many times Save was called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
