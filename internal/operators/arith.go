package operators

import (
	"math"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/value"
)

func rangeErr(what string, v any) error {
	return accerr.NewEvalError(accerr.CategoryRange, "value %v out of range for %s", v, what)
}

func asConcatString(v value.Value) string {
	if v.IsNull() {
		return ""
	}
	return value.AsString(v)
}

// Concat implements &: Null operands read as empty string, result always a
// string.
func Concat(a, b value.Value) (value.Value, error) {
	return value.NewString(asConcatString(a) + asConcatString(b)), nil
}

// Negate implements unary -.
func Negate(v value.Value) (value.Value, error) {
	if v.IsNull() {
		return value.Null, nil
	}
	switch vv := v.(type) {
	case value.TemporalValue:
		return value.FromSerialAs(-vv.Serial(), vv.Kind()), nil
	case value.LongValue:
		n := int64(vv)
		if -n < math.MinInt32 || -n > math.MaxInt32 {
			return nil, rangeErr("Long", -n)
		}
		return value.NewLong(int32(-n)), nil
	case value.DoubleValue:
		return value.NewDouble(-float64(vv)), nil
	case value.BoolValue:
		if vv {
			return value.NewLong(1), nil
		}
		return value.NewLong(0), nil
	default:
		d, err := value.AsBigDecimal(v)
		if err != nil {
			return nil, err
		}
		return value.NewBigDec(d.Neg()), nil
	}
}

// Add implements binary +. A string operand that can't promote to a number
// falls back to concatenation rather than erroring.
func Add(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	kind, err := promote(a, b, ModeSimple)
	if err != nil {
		return Concat(a, b)
	}
	switch kind {
	case value.KindString:
		return Concat(a, b)
	case value.KindDate, value.KindTime, value.KindDateTime:
		sa, _ := value.AsDouble(a)
		sb, _ := value.AsDouble(b)
		return value.FromSerialAs(sa+sb, kind), nil
	case value.KindBigDec:
		da, err := value.AsBigDecimal(a)
		if err != nil {
			return nil, err
		}
		db, err := value.AsBigDecimal(b)
		if err != nil {
			return nil, err
		}
		return value.NewBigDec(da.Add(db)), nil
	case value.KindDouble:
		da, _ := value.AsDouble(a)
		db, _ := value.AsDouble(b)
		return value.NewDouble(da + db), nil
	default:
		la, err := value.AsLong(a)
		if err != nil {
			return nil, err
		}
		lb, err := value.AsLong(b)
		if err != nil {
			return nil, err
		}
		sum := int64(la) + int64(lb)
		if sum < math.MinInt32 || sum > math.MaxInt32 {
			return value.NewDouble(float64(la) + float64(lb)), nil
		}
		return value.NewLong(int32(sum)), nil
	}
}

// Subtract implements binary -. Unlike Add, two genuine strings (or a
// non-numeric string) are a type mismatch rather than falling back to
// concatenation.
func Subtract(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	kind, err := promote(a, b, ModeSimple)
	if err != nil {
		return nil, err
	}
	switch kind {
	case value.KindString:
		return nil, typeMismatch(a, b)
	case value.KindDate, value.KindTime, value.KindDateTime:
		sa, _ := value.AsDouble(a)
		sb, _ := value.AsDouble(b)
		return value.FromSerialAs(sa-sb, kind), nil
	case value.KindBigDec:
		da, err := value.AsBigDecimal(a)
		if err != nil {
			return nil, err
		}
		db, err := value.AsBigDecimal(b)
		if err != nil {
			return nil, err
		}
		return value.NewBigDec(da.Sub(db)), nil
	case value.KindDouble:
		da, _ := value.AsDouble(a)
		db, _ := value.AsDouble(b)
		return value.NewDouble(da - db), nil
	default:
		la, err := value.AsLong(a)
		if err != nil {
			return nil, err
		}
		lb, err := value.AsLong(b)
		if err != nil {
			return nil, err
		}
		diff := int64(la) - int64(lb)
		if diff < math.MinInt32 || diff > math.MaxInt32 {
			return value.NewDouble(float64(la) - float64(lb)), nil
		}
		return value.NewLong(int32(diff)), nil
	}
}

// Multiply implements binary *.
func Multiply(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	kind, err := promote(a, b, ModeGeneral)
	if err != nil {
		return nil, err
	}
	switch kind {
	case value.KindString:
		return nil, typeMismatch(a, b)
	case value.KindBigDec:
		da, err := value.AsBigDecimal(a)
		if err != nil {
			return nil, err
		}
		db, err := value.AsBigDecimal(b)
		if err != nil {
			return nil, err
		}
		return value.NewBigDec(da.Mul(db)), nil
	case value.KindDouble:
		da, _ := value.AsDouble(a)
		db, _ := value.AsDouble(b)
		return value.NewDouble(da * db), nil
	default:
		la, err := value.AsLong(a)
		if err != nil {
			return nil, err
		}
		lb, err := value.AsLong(b)
		if err != nil {
			return nil, err
		}
		product := int64(la) * int64(lb)
		if product < math.MinInt32 || product > math.MaxInt32 {
			return value.NewDouble(float64(la) * float64(lb)), nil
		}
		return value.NewLong(int32(product)), nil
	}
}

// Divide implements binary /. Integer operands that divide evenly produce a
// Long; otherwise the result is a Double.
func Divide(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	kind, err := promote(a, b, ModeGeneral)
	if err != nil {
		return nil, err
	}
	switch kind {
	case value.KindString:
		return nil, typeMismatch(a, b)
	case value.KindBigDec:
		da, err := value.AsBigDecimal(a)
		if err != nil {
			return nil, err
		}
		db, err := value.AsBigDecimal(b)
		if err != nil {
			return nil, err
		}
		if db.IsZero() {
			return nil, accerr.NewEvalError(accerr.CategoryDivideByZero, "division by zero")
		}
		return value.NewBigDec(da.DivRound(db, 16)), nil
	case value.KindDouble:
		da, _ := value.AsDouble(a)
		db, _ := value.AsDouble(b)
		if db == 0 {
			return nil, accerr.NewEvalError(accerr.CategoryDivideByZero, "division by zero")
		}
		return value.NewDouble(da / db), nil
	default:
		la, err := value.AsLong(a)
		if err != nil {
			return nil, err
		}
		lb, err := value.AsLong(b)
		if err != nil {
			return nil, err
		}
		if lb == 0 {
			return nil, accerr.NewEvalError(accerr.CategoryDivideByZero, "division by zero")
		}
		if la%lb == 0 {
			return value.NewLong(la / lb), nil
		}
		return value.NewDouble(float64(la) / float64(lb)), nil
	}
}

// IntDivide implements \: both operands coerced straight to Long.
func IntDivide(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	la, err := value.AsLong(a)
	if err != nil {
		return nil, err
	}
	lb, err := value.AsLong(b)
	if err != nil {
		return nil, err
	}
	if lb == 0 {
		return nil, accerr.NewEvalError(accerr.CategoryDivideByZero, "division by zero")
	}
	return value.NewLong(la / lb), nil
}

// Mod implements the Mod keyword: both operands coerced straight to Long.
func Mod(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	la, err := value.AsLong(a)
	if err != nil {
		return nil, err
	}
	lb, err := value.AsLong(b)
	if err != nil {
		return nil, err
	}
	if lb == 0 {
		return nil, accerr.NewEvalError(accerr.CategoryDivideByZero, "division by zero")
	}
	return value.NewLong(la % lb), nil
}

// Exp implements ^. A BigDec base with an integral exponent uses decimal
// exponentiation; any other combination falls back to float64 math.Pow,
// cast back to Long only when the math type was Long and the result is
// integral and in range.
func Exp(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	kind, err := promote(a, b, ModeGeneral)
	if err != nil {
		return nil, err
	}
	if kind == value.KindString {
		return nil, typeMismatch(a, b)
	}
	if kind == value.KindBigDec {
		da, err := value.AsBigDecimal(a)
		if err != nil {
			return nil, err
		}
		db, err := value.AsBigDecimal(b)
		if err != nil {
			return nil, err
		}
		if db.Equal(db.Truncate(0)) {
			return value.NewBigDec(da.Pow(db)), nil
		}
	}
	da, _ := value.AsDouble(a)
	db, _ := value.AsDouble(b)
	r := math.Pow(da, db)
	if kind == value.KindLong && r == math.Trunc(r) && r >= math.MinInt32 && r <= math.MaxInt32 {
		return value.NewLong(int32(r)), nil
	}
	return value.NewDouble(r), nil
}
