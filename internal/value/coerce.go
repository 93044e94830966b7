package value

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/numeric"
)

// AsBool coerces v to a boolean. Null is never a valid input to AsBool;
// callers that must tolerate Null (e.g. IIf's condition) should check
// v.IsNull() first and treat it as the "else" branch rather than calling
// AsBool.
func AsBool(v Value) (bool, error) {
	switch vv := v.(type) {
	case BoolValue:
		return bool(vv), nil
	case LongValue:
		return vv != 0, nil
	case DoubleValue:
		return vv != 0, nil
	case BigDecValue:
		return !vv.D.IsZero(), nil
	case StringValue:
		s := strings.TrimSpace(string(vv))
		switch strings.ToLower(s) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off", "":
			return false, nil
		}
		if n, ok := TryParseNumber(s); ok {
			return AsBool(n)
		}
		return false, accerr.NewEvalError(accerr.CategoryType, "cannot coerce %q to Boolean", s)
	default:
		return false, accerr.NewEvalError(accerr.CategoryType, "cannot coerce %s to Boolean", v.Kind())
	}
}

// AsLong coerces v to a 32-bit integer. Double and BigDec values round to
// the nearest integer (half-to-even) rather than truncating, matching
// VBA's CLng rounding behaviour.
func AsLong(v Value) (int32, error) {
	switch vv := v.(type) {
	case LongValue:
		return int32(vv), nil
	case BoolValue:
		if vv {
			return -1, nil
		}
		return 0, nil
	case DoubleValue:
		r := numeric.RoundHalfEven(float64(vv), 0)
		if r < -2147483648 || r > 2147483647 {
			return 0, accerr.NewEvalError(accerr.CategoryRange, "value %v out of range for Long", r)
		}
		return int32(r), nil
	case BigDecValue:
		r := vv.D.RoundBank(0)
		i := r.BigInt()
		if !i.IsInt64() {
			return 0, accerr.NewEvalError(accerr.CategoryRange, "value %v out of range for Long", vv.D)
		}
		n := i.Int64()
		if n < -2147483648 || n > 2147483647 {
			return 0, accerr.NewEvalError(accerr.CategoryRange, "value %v out of range for Long", vv.D)
		}
		return int32(n), nil
	case StringValue:
		n, ok := TryParseNumber(strings.TrimSpace(string(vv)))
		if !ok {
			return 0, accerr.NewEvalError(accerr.CategoryType, "%q is not a number", string(vv))
		}
		return AsLong(n)
	case TemporalValue:
		return AsLong(NewDouble(vv.Serial()))
	default:
		return 0, accerr.NewEvalError(accerr.CategoryType, "cannot coerce %s to Long", v.Kind())
	}
}

// AsDouble coerces v to a double.
func AsDouble(v Value) (float64, error) {
	switch vv := v.(type) {
	case DoubleValue:
		return float64(vv), nil
	case LongValue:
		return float64(vv), nil
	case BoolValue:
		if vv {
			return -1, nil
		}
		return 0, nil
	case BigDecValue:
		f, _ := vv.D.Float64()
		return f, nil
	case StringValue:
		n, ok := TryParseNumber(strings.TrimSpace(string(vv)))
		if !ok {
			return 0, accerr.NewEvalError(accerr.CategoryType, "%q is not a number", string(vv))
		}
		return AsDouble(n)
	case TemporalValue:
		return vv.Serial(), nil
	default:
		return 0, accerr.NewEvalError(accerr.CategoryType, "cannot coerce %s to Double", v.Kind())
	}
}

// AsBigDecimal coerces v to a normal-form decimal.
func AsBigDecimal(v Value) (decimal.Decimal, error) {
	switch vv := v.(type) {
	case BigDecValue:
		return vv.D, nil
	case LongValue:
		return decimal.NewFromInt32(int32(vv)), nil
	case BoolValue:
		if vv {
			return decimal.NewFromInt(-1), nil
		}
		return decimal.Zero, nil
	case DoubleValue:
		return decimal.NewFromFloat(float64(vv)), nil
	case StringValue:
		s := strings.TrimSpace(string(vv))
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, accerr.NewEvalError(accerr.CategoryType, "%q is not a number", s)
		}
		return numeric.Normalize(d), nil
	case TemporalValue:
		return decimal.NewFromFloat(vv.Serial()), nil
	default:
		return decimal.Decimal{}, accerr.NewEvalError(accerr.CategoryType, "cannot coerce %s to Decimal", v.Kind())
	}
}

// AsString coerces v to its textual representation. Unlike the other
// accessors, AsString never fails: Null becomes "", every other variant
// renders via its String() method.
func AsString(v Value) string {
	return v.String()
}

// AsDateTime coerces v to a time.Time instant, accepting numbers (read as
// serial dates) in addition to the temporal variants themselves. Strings
// are not parsed: any String input returns a type error.
func AsDateTime(v Value) (time.Time, error) {
	switch vv := v.(type) {
	case TemporalValue:
		return vv.T, nil
	case LongValue:
		return numeric.FromSerial(float64(vv)), nil
	case DoubleValue:
		return numeric.FromSerial(float64(vv)), nil
	case BigDecValue:
		f, _ := vv.D.Float64()
		return numeric.FromSerial(f), nil
	case StringValue:
		return time.Time{}, accerr.NewEvalError(accerr.CategoryType, "cannot coerce %q to Date without a locale parser; use the tokenizer/IsDate path", string(vv))
	default:
		return time.Time{}, accerr.NewEvalError(accerr.CategoryType, "cannot coerce %s to Date", v.Kind())
	}
}

// AsDateTimeValue coerces v to a Value of temporal Kind (Date, Time, or
// DateTime), preferring to preserve an existing temporal's kind and
// otherwise producing a DateTime from a numeric serial value.
func AsDateTimeValue(v Value) (Value, error) {
	if t, ok := v.(TemporalValue); ok {
		return t, nil
	}
	t, err := AsDateTime(v)
	if err != nil {
		return nil, err
	}
	return NewDateTime(t), nil
}
