package functions

import (
	"math"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/lexer"
	"github.com/accessexpr/accessexpr/internal/numeric"
	"github.com/accessexpr/accessexpr/internal/token"
	"github.com/accessexpr/accessexpr/internal/value"
)

func init() {
	Register("CBool", CategoryConversion, "Converts an expression to Boolean.",
		fn(1, 1, true, convertFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			b, err := value.AsBool(v)
			if err != nil {
				return nil, err
			}
			return value.NewBool(b), nil
		})))

	Register("CByte", CategoryConversion, "Converts an expression to Byte (0..255).",
		fn(1, 1, true, convertFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			n, err := value.AsLong(v)
			if err != nil {
				return nil, err
			}
			if n < 0 || n > 255 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "value %d out of range for Byte", n)
			}
			return value.NewLong(n), nil
		})))

	Register("CCur", CategoryConversion, "Converts an expression to Currency (4 decimal places).",
		fn(1, 1, true, convertFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			d, err := value.AsBigDecimal(v)
			if err != nil {
				return nil, err
			}
			return value.NewBigDec(d.Round(4)), nil
		})))

	Register("CDate", CategoryConversion, "Converts an expression to Date/Time.",
		fn(1, 1, true, convertFn(cdate)))

	Register("CDbl", CategoryConversion, "Converts an expression to Double.",
		fn(1, 1, true, convertFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			d, err := value.AsDouble(v)
			if err != nil {
				return nil, err
			}
			return value.NewDouble(d), nil
		})))

	Register("CDec", CategoryConversion, "Converts an expression to Decimal.",
		fn(1, 1, true, convertFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			d, err := value.AsBigDecimal(v)
			if err != nil {
				return nil, err
			}
			return value.NewBigDec(d), nil
		})))

	Register("CInt", CategoryConversion, "Converts an expression to Integer (-32768..32767), rounding half-to-even.",
		fn(1, 1, true, convertFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			n, err := value.AsLong(v)
			if err != nil {
				return nil, err
			}
			if n < -32768 || n > 32767 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "value %d out of range for Integer", n)
			}
			return value.NewLong(n), nil
		})))

	Register("CLng", CategoryConversion, "Converts an expression to Long, rounding half-to-even.",
		fn(1, 1, true, convertFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			n, err := value.AsLong(v)
			if err != nil {
				return nil, err
			}
			return value.NewLong(n), nil
		})))

	Register("CSng", CategoryConversion, "Converts an expression to Single precision, rounding to the nearest Single value.",
		fn(1, 1, true, convertFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			d, err := value.AsDouble(v)
			if err != nil {
				return nil, err
			}
			f := float32(d)
			if math.IsInf(float64(f), 0) && !math.IsInf(d, 0) {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "value %v out of range for Single", d)
			}
			return value.NewDouble(float64(f)), nil
		})))

	Register("CStr", CategoryConversion, "Converts an expression to String.",
		fn(1, 1, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if args[0].IsNull() {
				return nil, accerr.NewEvalError(accerr.CategoryType, "CStr of Null is invalid")
			}
			return value.NewString(value.AsString(args[0])), nil
		}))

	Register("CVar", CategoryConversion, "Passes an expression through unchanged.",
		fn(1, 1, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			return args[0], nil
		}))
}

// convertFn wraps a Null-propagating, single-argument coercion as a
// registry Call: a C* function built with it returns Null for a Null input
// rather than coercing it. CStr and CVar do not use it: CStr rejects a Null
// input with a type error and CVar returns it unchanged.
func convertFn(coerce func(hostctx.EvalContext, value.Value) (value.Value, error)) func(hostctx.EvalContext, []value.Value) (value.Value, error) {
	return func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
		if args[0].IsNull() {
			return value.Null, nil
		}
		return coerce(ctx, args[0])
	}
}

func cdate(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindDate, value.KindTime, value.KindDateTime:
		return v, nil
	case value.KindString:
		t, valType, err := lexer.ParseTemporalString(v.String(), ctx)
		if err != nil {
			return nil, accerr.NewEvalError(accerr.CategoryType, "%q is not a recognizable date", v.String())
		}
		return value.FromSerialAs(numeric.ToSerial(t), valueKindFor(valType)), nil
	default:
		return value.AsDateTimeValue(v)
	}
}

// valueKindFor maps a tokenizer value type to the matching temporal Kind,
// used once a host-aware date string parse has succeeded.
func valueKindFor(vt token.ValueType) value.Kind {
	switch vt {
	case token.DateValue:
		return value.KindDate
	case token.TimeValue:
		return value.KindTime
	default:
		return value.KindDateTime
	}
}
