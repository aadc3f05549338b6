package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Summary holds the ledger statistics computed over the whole collection.
type Summary struct {
	Total          decimal.Decimal
	DailyAverage   decimal.Decimal
	ElapsedDays    int64
	EarliestDate   string
	TopCategory    string
	TopCategorySum decimal.Decimal
	ByCategory     []CategoryAmount
}
