// Package money wraps shopspring/decimal so every monetary field in the
// receipt pipeline (unit price, line total, subtotal, tax, grand total)
// uses exact decimal arithmetic end to end. Never convert a money.Amount
// through float64.
package money

import (
	"github.com/shopspring/decimal"
)

type Amount = decimal.Decimal

// Zero is decimal zero, two-decimal (cents) currency.
var Zero = decimal.Zero

// FromString parses a CAD amount string such as "12.99" or "-3.50".
func FromString(s string) (Amount, error) {
	return decimal.NewFromString(s)
}

// FromFloat should only ever be used at an I/O boundary (e.g. an LLM's
// JSON-schema-constrained numeric output) that cannot itself emit
// decimal strings; it rounds to cents immediately to avoid carrying
// binary float imprecision further into the pipeline.
func FromFloat(v float64) Amount {
	return decimal.NewFromFloat(v).Round(2)
}

// Sum adds a slice of amounts.
func Sum(values []Amount) Amount {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// WithinTolerance reports whether a and b differ by no more than
// tolerance (inclusive), used for the subtotal/total reconciliation
// checks in the vendor parsers.
func WithinTolerance(a, b, tolerance Amount) bool {
	diff := a.Sub(b).Abs()
	return diff.LessThanOrEqual(tolerance)
}

// Round2 rounds to cents, the currency's natural precision.
func Round2(a Amount) Amount {
	return a.Round(2)
}
