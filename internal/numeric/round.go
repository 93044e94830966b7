package numeric

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundHalfEven rounds x to digits fractional places using banker's
// rounding (round-half-to-even), the mode Access's Round() built-in uses.
func RoundHalfEven(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	d := decimal.NewFromFloat(x).RoundBank(int32(digits))
	f, _ := d.Float64()
	return f
}

// RoundDecimalHalfEven applies banker's rounding to a decimal.Decimal,
// used by the BigDec arithmetic paths in internal/operators so a decimal
// input never has to round-trip through float64.
func RoundDecimalHalfEven(d decimal.Decimal, digits int32) decimal.Decimal {
	return d.RoundBank(digits)
}
