package functions

import (
	"math"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/numeric"
	"github.com/accessexpr/accessexpr/internal/value"
)

func init() {
	Register("Abs", CategoryNumber, "Returns the absolute value, preserving the operand's numeric kind.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			switch vv := v.(type) {
			case value.LongValue:
				n := int32(vv)
				if n == math.MinInt32 {
					return value.NewDouble(-float64(n)), nil
				}
				if n < 0 {
					n = -n
				}
				return value.NewLong(n), nil
			case value.BigDecValue:
				return value.NewBigDec(vv.D.Abs()), nil
			default:
				d, err := value.AsDouble(v)
				if err != nil {
					return nil, err
				}
				return value.NewDouble(math.Abs(d)), nil
			}
		})))

	Register("Atn", CategoryNumber, "Returns the arctangent, in radians.", fn(1, 1, true, mathFn(math.Atan)))
	Register("Cos", CategoryNumber, "Returns the cosine of an angle in radians.", fn(1, 1, true, mathFn(math.Cos)))
	Register("Sin", CategoryNumber, "Returns the sine of an angle in radians.", fn(1, 1, true, mathFn(math.Sin)))
	Register("Tan", CategoryNumber, "Returns the tangent of an angle in radians.", fn(1, 1, true, mathFn(math.Tan)))
	Register("Exp", CategoryNumber, "Returns e raised to a power.", fn(1, 1, true, mathFn(math.Exp)))

	Register("Log", CategoryNumber, "Returns the natural logarithm.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			d, err := value.AsDouble(v)
			if err != nil {
				return nil, err
			}
			if d <= 0 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Log requires a positive argument")
			}
			return value.NewDouble(math.Log(d)), nil
		})))

	Register("Sqr", CategoryNumber, "Returns the square root.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			d, err := value.AsDouble(v)
			if err != nil {
				return nil, err
			}
			if d < 0 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Sqr requires a non-negative argument")
			}
			return value.NewDouble(math.Sqrt(d)), nil
		})))

	Register("Sgn", CategoryNumber, "Returns -1, 0, or 1 according to the sign of the argument.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			d, err := value.AsDouble(v)
			if err != nil {
				return nil, err
			}
			switch {
			case d > 0:
				return value.NewLong(1), nil
			case d < 0:
				return value.NewLong(-1), nil
			default:
				return value.NewLong(0), nil
			}
		})))

	Register("Fix", CategoryNumber, "Truncates a number toward zero.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			if vv, ok := v.(value.LongValue); ok {
				return vv, nil
			}
			d, err := value.AsDouble(v)
			if err != nil {
				return nil, err
			}
			return value.NewDouble(math.Trunc(d)), nil
		})))

	Register("Int", CategoryNumber, "Rounds a number down toward negative infinity.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			if vv, ok := v.(value.LongValue); ok {
				return vv, nil
			}
			d, err := value.AsDouble(v)
			if err != nil {
				return nil, err
			}
			return value.NewDouble(math.Floor(d)), nil
		})))

	Register("Round", CategoryNumber, "Rounds a number to the given number of decimal places, half-to-even.",
		fn(1, 2, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			digits := int32(0)
			if len(args) == 2 {
				n, err := value.AsLong(args[1])
				if err != nil {
					return nil, err
				}
				digits = n
			}
			if bd, ok := args[0].(value.BigDecValue); ok {
				return value.NewBigDec(numeric.RoundDecimalHalfEven(bd.D, digits)), nil
			}
			d, err := value.AsDouble(args[0])
			if err != nil {
				return nil, err
			}
			return value.NewDouble(numeric.RoundHalfEven(d, int(digits))), nil
		}))

	Register("Rnd", CategoryNumber, "Returns a pseudo-random Single between 0 and 1.",
		fn(0, 1, false, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			seed := 1.0
			if len(args) == 1 {
				if args[0].IsNull() {
					return value.Null, nil
				}
				s, err := value.AsDouble(args[0])
				if err != nil {
					return nil, err
				}
				seed = s
			}
			return value.NewDouble(ctx.Random().Next(seed)), nil
		}))
}

// mathFn lifts a float64 -> float64 math function into a registry Call
// that coerces its one argument to Double and propagates Null.
func mathFn(f func(float64) float64) func(hostctx.EvalContext, []value.Value) (value.Value, error) {
	return numericFn(func(v value.Value) (value.Value, error) {
		d, err := value.AsDouble(v)
		if err != nil {
			return nil, err
		}
		return value.NewDouble(f(d)), nil
	})
}

// numericFn wraps a single-argument, Null-propagating numeric function as
// a registry Call.
func numericFn(compute func(value.Value) (value.Value, error)) func(hostctx.EvalContext, []value.Value) (value.Value, error) {
	return func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
		if args[0].IsNull() {
			return value.Null, nil
		}
		return compute(args[0])
	}
}
