// Package core holds the domain types and money formatting shared by the
// aggregation engine, the storage layer and the HTTP surface.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCOP renders an amount as Colombian pesos: zero decimal places,
// thousands grouped with periods and the sign ahead of the symbol.
//
// Examples:
//
//	FormatCOP(decimal.NewFromInt(1234567)) -> "$1.234.567"
//	FormatCOP(decimal.NewFromInt(-500))    -> "-$500"
func FormatCOP(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().StringFixed(0)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')

	// Group digits in threes from the right.
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}
