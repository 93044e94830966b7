package functions

import (
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
)

// fn is a small constructor for a registry Function from its minimum and
// maximum arity, its purity flag, and its call body.
func fn(minP, maxP int, pure bool, call func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error)) *hostctx.Function {
	return &hostctx.Function{MinParams: minP, MaxParams: maxP, IsPure: pure, Call: call}
}

// anyNull reports whether any of vs is Null, the common short-circuit
// check most one-shot (non-short-circuiting) functions open with.
func anyNull(vs ...value.Value) bool {
	for _, v := range vs {
		if v.IsNull() {
			return true
		}
	}
	return false
}

func zeroForKind(k value.Kind) value.Value {
	switch k {
	case value.KindBool:
		return value.False
	case value.KindLong:
		return value.NewLong(0)
	case value.KindDouble:
		return value.NewDouble(0)
	case value.KindString:
		return value.NewString("")
	default:
		return value.NewLong(0)
	}
}
