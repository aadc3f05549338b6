// Package services provides business logic and orchestration services.
//
// LedgerService turns raw user input into store operations, logs the
// outcome and announces committed changes.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/store"
)

// EventPublisher announces committed record changes. Implemented by amqp.Client.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, operation string, e core.Expense) error
}

// Clock returns the current time. Statistics use it for the elapsed-days count.
type Clock func() time.Time

// LedgerService orchestrates expense operations over a single store
type LedgerService struct {
	store     *store.Store
	publisher EventPublisher
	logger    *log.Logger
	now       Clock
}

// Option configures a LedgerService
type Option func(*LedgerService)

// WithPublisher enables change events.
func WithPublisher(p EventPublisher) Option {
	return func(s *LedgerService) { s.publisher = p }
}

// WithClock overrides time.Now.
func WithClock(c Clock) Option {
	return func(s *LedgerService) { s.now = c }
}

func NewLedgerService(st *store.Store, logger *log.Logger, opts ...Option) *LedgerService {
	if logger == nil {
		logger = log.Discard()
	}
	s := &LedgerService{
		store:  st,
		logger: logger.WithComponent(log.ComponentLedger),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates the raw fields and appends a new record.
func (s *LedgerService) Register(ctx context.Context, description, category, date, amount string) (core.Expense, error) {
	value, err := core.ParseAmount(amount)
	if err != nil {
		return core.Expense{}, s.fail(ctx, log.OpCreate, fmt.Errorf("amount %q: %w", amount, err))
	}
	e, err := core.NewExpense(description, category, date, value)
	if err != nil {
		return core.Expense{}, s.fail(ctx, log.OpCreate, err)
	}

	if err := s.store.Add(ctx, e); err != nil {
		return e, s.fail(ctx, log.OpCreate, err)
	}

	s.logger.InfoContext(ctx, "Expense registered", s.fields(log.OpCreate, e).ToSlice()...)
	s.publish(ctx, log.OpCreate, e)
	return e, nil
}

// Query filters the ledger. criterion is "c" for category or "f" for date range.
func (s *LedgerService) Query(ctx context.Context, criterion, category, start, end string) ([]core.Expense, error) {
	c, err := core.ParseCriterion(criterion)
	if err != nil {
		return nil, s.fail(ctx, log.OpQuery, err)
	}
	results, err := core.Query{Criterion: c, Category: category, Start: start, End: end}.Run(s.store.All())
	if err != nil {
		return nil, s.fail(ctx, log.OpQuery, err)
	}
	s.logger.DebugContext(ctx, "Query executed", log.FieldCriterion, string(c), log.FieldResults, len(results))
	return results, nil
}

// Statistics summarizes the whole ledger as of the service clock.
func (s *LedgerService) Statistics(ctx context.Context) (core.Summary, error) {
	summary, err := core.Summarize(s.store.All(), s.now())
	if err != nil {
		return core.Summary{}, s.fail(ctx, log.OpStats, err)
	}
	return summary, nil
}

// Find reports whether a record with description exists, returning the first match.
func (s *LedgerService) Find(description string) (core.Expense, bool) {
	_, e, ok := s.store.FindFirstByDescription(description)
	return e, ok
}

// Update changes category, date and amount of the first record matching description.
func (s *LedgerService) Update(ctx context.Context, description, category, date, amount string) (core.Expense, error) {
	if _, ok := s.Find(description); !ok {
		return core.Expense{}, s.fail(ctx, log.OpUpdate, fmt.Errorf("%w: %q", core.ErrNotFound, description))
	}
	value, err := core.ParseAmount(amount)
	if err != nil {
		return core.Expense{}, s.fail(ctx, log.OpUpdate, fmt.Errorf("amount %q: %w", amount, err))
	}

	e, err := s.store.Update(ctx, description, category, date, value)
	if err != nil {
		return e, s.fail(ctx, log.OpUpdate, err)
	}

	s.logger.InfoContext(ctx, "Expense updated", s.fields(log.OpUpdate, e).ToSlice()...)
	s.publish(ctx, log.OpUpdate, e)
	return e, nil
}

// Delete removes the first record matching description.
func (s *LedgerService) Delete(ctx context.Context, description string) (core.Expense, error) {
	e, err := s.store.Remove(ctx, description)
	if err != nil {
		return e, s.fail(ctx, log.OpDelete, err)
	}

	s.logger.InfoContext(ctx, "Expense deleted", s.fields(log.OpDelete, e).ToSlice()...)
	s.publish(ctx, log.OpDelete, e)
	return e, nil
}

func (s *LedgerService) fields(op string, e core.Expense) log.LogFields {
	return log.NewFields().
		WithOperation(op).
		WithExpense(e.ID.String(), e.Description, e.Category, e.Date, e.Amount.String())
}

// fail logs err at a level matching its kind and returns it unchanged.
func (s *LedgerService) fail(ctx context.Context, op string, err error) error {
	fields := log.NewFields().
		WithOperation(op).
		WithErrorType(log.ErrorType(err)).
		WithError(err).
		ToSlice()
	if errors.Is(err, core.ErrPersistence) {
		s.logger.ErrorContext(ctx, "Ledger operation not persisted", fields...)
	} else {
		s.logger.WarnContext(ctx, "Ledger operation rejected", fields...)
	}
	return err
}

func (s *LedgerService) publish(ctx context.Context, op string, e core.Expense) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRecordEvent(ctx, op, e); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish record event",
			log.NewFields().
				WithOperation(log.OpPublish).
				WithError(err).
				ToSlice()...)
	}
}
