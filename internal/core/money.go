// Package core provides the expense record model, its query filters and
// the aggregation engine.
//
// This file contains parsing of monetary amounts typed by the user.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts untrusted text into a decimal amount.
//
// Surrounding whitespace is ignored and a single decimal comma is accepted
// in place of a dot. Any sign is allowed; the ledger does not require
// amounts to be positive. Exponent notation is accepted.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount(" 12,5 ") -> 12.5, nil
//	ParseAmount("-3")     -> -3, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
