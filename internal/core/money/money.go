// Package money folds record amounts in decimal so sums of cents stay exact.
package money

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Sum folds rows with a zero start; an empty slice sums to zero.
func Sum[T any](rows []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(amount(row))
	}
	return total
}

// Of lifts a stored float amount into a decimal.
func Of(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Float converts back for JSON and templates.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Format renders the shortest plain decimal form: 300, 87.5, -12.25.
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
