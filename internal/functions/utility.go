package functions

import (
	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/lexer"
	"github.com/accessexpr/accessexpr/internal/value"
)

func init() {
	Register("IIf", CategoryUtility, "Returns one of two values depending on a condition.",
		fn(3, 3, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			cond := args[0]
			if cond.IsNull() {
				return args[2], nil
			}
			b, err := value.AsBool(cond)
			if err != nil {
				return nil, err
			}
			if b {
				return args[1], nil
			}
			return args[2], nil
		}))

	Register("Nz", CategoryUtility, "Substitutes a default value for Null.",
		fn(1, 2, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if !args[0].IsNull() {
				return args[0], nil
			}
			if len(args) == 2 {
				return args[1], nil
			}
			return zeroForKind(ctx.DeclaredResultType()), nil
		}))

	Register("Choose", CategoryUtility, "Returns the nth item from a list of choices, 1-based.",
		fn(2, -1, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			idxArg := args[0]
			if idxArg.IsNull() {
				return value.Null, nil
			}
			idx, err := value.AsLong(idxArg)
			if err != nil {
				return nil, err
			}
			choices := args[1:]
			if idx < 1 || int(idx) > len(choices) {
				return value.Null, nil
			}
			return choices[idx-1], nil
		}))

	Register("Switch", CategoryUtility, "Evaluates a list of condition/value pairs, returning the value for the first true condition.",
		fn(2, -1, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if len(args)%2 != 0 {
				return nil, accerr.NewEvalError(accerr.CategoryFunction, "Switch requires an even number of arguments")
			}
			for i := 0; i+1 < len(args); i += 2 {
				cond := args[i]
				if cond.IsNull() {
					continue
				}
				b, err := value.AsBool(cond)
				if err != nil {
					return nil, err
				}
				if b {
					return args[i+1], nil
				}
			}
			return value.Null, nil
		}))

	Register("IsNull", CategoryUtility, "Reports whether an expression evaluates to Null.",
		fn(1, 1, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			return value.NewBool(args[0].IsNull()), nil
		}))

	Register("IsDate", CategoryUtility, "Reports whether an expression can be interpreted as a date.",
		fn(1, 1, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			v := args[0]
			if v.IsNull() {
				return value.False, nil
			}
			switch v.Kind() {
			case value.KindDate, value.KindTime, value.KindDateTime:
				return value.True, nil
			case value.KindString:
				_, _, err := lexer.ParseTemporalString(v.String(), ctx)
				return value.NewBool(err == nil), nil
			default:
				_, err := value.AsDouble(v)
				return value.NewBool(err == nil), nil
			}
		}))

	Register("VarType", CategoryUtility, "Returns the numeric VBA type code of an expression's value.",
		fn(1, 1, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			return value.NewLong(int32(value.VarType(args[0]))), nil
		}))

	Register("TypeName", CategoryUtility, "Returns the VBA type name of an expression's value.",
		fn(1, 1, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			return value.NewString(value.TypeName(args[0])), nil
		}))
}
