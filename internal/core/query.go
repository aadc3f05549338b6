package core

import "fmt"

// Criterion selects the filter mode of a query.
type Criterion string

const (
	CriterionCategory  Criterion = "c"
	CriterionDateRange Criterion = "f"
)

// Query describes one filter over the ledger. Only the fields relevant to
// Criterion are read.
type Query struct {
	Criterion Criterion
	Category  string
	Start     string
	End       string
}

// ParseCriterion maps a raw selector to a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	switch c := Criterion(s); c {
	case CriterionCategory, CriterionDateRange:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCriterion, s)
	}
}

// FilterByCategory returns records whose category equals category exactly,
// in stored order.
func FilterByCategory(records []Expense, category string) []Expense {
	out := make([]Expense, 0)
	for _, e := range records {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// FilterByDateRange returns records with start <= date <= end under string
// comparison, in stored order. Dates are not validated.
func FilterByDateRange(records []Expense, start, end string) []Expense {
	out := make([]Expense, 0)
	for _, e := range records {
		if start <= e.Date && e.Date <= end {
			out = append(out, e)
		}
	}
	return out
}

// Run applies q to records. An empty result is a non-nil empty slice with a
// nil error; an unknown criterion yields ErrInvalidCriterion and no records.
func (q Query) Run(records []Expense) ([]Expense, error) {
	switch q.Criterion {
	case CriterionCategory:
		return FilterByCategory(records, q.Category), nil
	case CriterionDateRange:
		return FilterByDateRange(records, q.Start, q.End), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCriterion, string(q.Criterion))
	}
}
