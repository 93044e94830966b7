package numeric

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var bigTen = big.NewInt(10)

// Normalize returns d in normal form for BigDec payloads: scale >= 0, no
// trailing zeros, and zero represented as a scale-0 zero.
func Normalize(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	for d.Exponent() < 0 {
		reduced, ok := shrinkScale(d)
		if !ok {
			break
		}
		d = reduced
	}
	return d
}

// shrinkScale drops one trailing zero of fractional precision from d,
// returning the reduced value and true, or d unchanged and false if d's
// least-significant fractional digit is non-zero.
func shrinkScale(d decimal.Decimal) (decimal.Decimal, bool) {
	exp := d.Exponent()
	if exp >= 0 {
		return d, false
	}
	coeff := d.Coefficient()
	quo := new(big.Int)
	rem := new(big.Int)
	quo.QuoRem(coeff, bigTen, rem)
	if rem.Sign() != 0 {
		return d, false
	}
	return decimal.NewFromBigInt(quo, exp+1), true
}

// Scale returns the number of fractional digits d carries (0 for an
// integral value).
func Scale(d decimal.Decimal) int32 {
	exp := d.Exponent()
	if exp >= 0 {
		return 0
	}
	return -exp
}
