package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const secondsPerDay = 24 * 60 * 60

// Total sums every amount. It is zero for an empty collection.
func Total(records []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range records {
		total = total.Add(e.Amount)
	}
	return total
}

// EarliestDate returns the lexically smallest date in records.
func EarliestDate(records []Expense) (string, error) {
	if len(records) == 0 {
		return "", ErrEmptyDataset
	}
	earliest := records[0].Date
	for _, e := range records[1:] {
		if e.Date < earliest {
			earliest = e.Date
		}
	}
	return earliest, nil
}

// ElapsedDays counts whole days from the earliest record to today, plus one.
// Both ends are taken as UTC calendar dates.
func ElapsedDays(records []Expense, today time.Time) (int64, string, error) {
	earliest, err := EarliestDate(records)
	if err != nil {
		return 0, "", err
	}
	start, err := time.Parse(DateLayout, earliest)
	if err != nil {
		return 0, earliest, fmt.Errorf("%w: earliest date %q is not YYYY-MM-DD", ErrValidation, earliest)
	}
	y, m, d := today.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	days := (end.Unix()-start.Unix())/secondsPerDay + 1
	if days < 1 {
		return days, earliest, fmt.Errorf("%w: earliest date %s is in the future", ErrValidation, earliest)
	}
	return days, earliest, nil
}

// DailyAverage divides the total by the elapsed days since the earliest record.
// It fails with ErrEmptyDataset when there are no records.
func DailyAverage(records []Expense, today time.Time) (decimal.Decimal, error) {
	days, _, err := ElapsedDays(records, today)
	if err != nil {
		return decimal.Zero, err
	}
	return Total(records).Div(decimal.NewFromInt(days)), nil
}

// ByCategory sums amounts per category, in order of first appearance.
func ByCategory(records []Expense) []CategoryAmount {
	index := make(map[string]int)
	out := make([]CategoryAmount, 0)
	for _, e := range records {
		i, ok := index[e.Category]
		if !ok {
			index[e.Category] = len(out)
			out = append(out, CategoryAmount{Name: e.Category, Amount: e.Amount})
			continue
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// TopCategory returns the category with the largest accumulated amount.
// On a tie the category that appeared first in records wins.
func TopCategory(records []Expense) (string, decimal.Decimal, error) {
	sums := ByCategory(records)
	if len(sums) == 0 {
		return "", decimal.Zero, ErrEmptyDataset
	}
	top := maxCategory(sums)
	return top.Name, top.Amount, nil
}

// maxCategory keeps the first entry among equal maxima.
func maxCategory(sums []CategoryAmount) CategoryAmount {
	top := sums[0]
	for _, ca := range sums[1:] {
		if ca.Amount.GreaterThan(top.Amount) {
			top = ca
		}
	}
	return top
}

// Summarize computes every statistic over the full collection. Nothing
// partial is returned on error.
func Summarize(records []Expense, today time.Time) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrEmptyDataset
	}
	days, earliest, err := ElapsedDays(records, today)
	if err != nil {
		return Summary{}, err
	}
	total := Total(records)
	byCategory := ByCategory(records)
	top := maxCategory(byCategory)
	return Summary{
		Total:          total,
		DailyAverage:   total.Div(decimal.NewFromInt(days)),
		ElapsedDays:    days,
		EarliestDate:   earliest,
		TopCategory:    top.Name,
		TopCategorySum: top.Amount,
		ByCategory:     byCategory,
	}, nil
}
