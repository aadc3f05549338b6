package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format records are stored and compared in.
const DateLayout = "2006-01-02"

type (
	// Expense is a single spending event. Description is the lookup key for
	// update and delete and is not required to be unique.
	Expense struct {
		ID          uuid.UUID // internal only, never written to the JSON file
		Description string
		Category    string
		Date        string // YYYY-MM-DD, compared lexically
		Amount      decimal.Decimal
	}
)

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("expense not found")
	ErrInvalidCriterion = errors.New("invalid criterion")
	ErrEmptyDataset     = errors.New("no expenses recorded")
	ErrPersistence      = errors.New("persistence error")

	ErrEmptyDescription = fmt.Errorf("%w: empty description", ErrValidation)
	ErrInvalidAmount    = fmt.Errorf("%w: invalid amount", ErrValidation)
)

// NewExpense builds a validated record with a fresh internal ID.
// Category and date are stored verbatim.
func NewExpense(description, category, date string, amount decimal.Decimal) (Expense, error) {
	e := Expense{
		ID:          uuid.New(),
		Description: description,
		Category:    category,
		Date:        date,
		Amount:      amount,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	return nil
}

// String renders the record the way the shell lists it.
func (e Expense) String() string {
	return fmt.Sprintf("Description: %s, Category: %s, Date: %s, Amount: %s",
		e.Description, e.Category, e.Date, FormatAmount(e.Amount))
}

// Clone returns a copy of records so callers never share the store's backing array.
func Clone(records []Expense) []Expense {
	out := make([]Expense, len(records))
	copy(out, records)
	return out
}
