package helpers

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Truncate2 cuts an amount to currency precision. Providers display balances
// with the excess fraction dropped, not rounded: 123.409987 stays 123.40.
func Truncate2(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(2)
}

// Format2 renders an amount as a fixed 2-decimal string. Applying it to an
// already formatted value yields the same string.
func Format2(d decimal.Decimal) string {
	return d.Truncate(2).StringFixed(2)
}

// ParseAmount parses a non-negative decimal amount from a provider field.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s", s)
	}
	return d, nil
}
