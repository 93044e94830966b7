package operators

import (
	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/value"
)

// Thunk defers evaluation of a logical operator's right-hand side so And,
// Or, and Imp can skip it entirely when the left side already determines
// the result.
type Thunk func() (value.Value, error)

// Not implements unary Not.
func Not(v value.Value) (value.Value, error) {
	if v.IsNull() {
		return value.Null, nil
	}
	b, err := value.AsBool(v)
	if err != nil {
		return nil, err
	}
	return value.NewBool(!b), nil
}

// And implements And: a false left side short-circuits to False without
// evaluating right.
func And(left value.Value, right Thunk) (value.Value, error) {
	if left.IsNull() {
		// Left Null still needs the right side: Null And False is False.
		r, err := right()
		if err != nil {
			return nil, err
		}
		if !r.IsNull() {
			rb, err := value.AsBool(r)
			if err != nil {
				return nil, err
			}
			if !rb {
				return value.False, nil
			}
		}
		return value.Null, nil
	}
	lb, err := value.AsBool(left)
	if err != nil {
		return nil, err
	}
	if !lb {
		return value.False, nil
	}
	r, err := right()
	if err != nil {
		return nil, err
	}
	if r.IsNull() {
		return value.Null, nil
	}
	rb, err := value.AsBool(r)
	if err != nil {
		return nil, err
	}
	return value.NewBool(rb), nil
}

// Or implements Or: a true left side short-circuits to True without
// evaluating right.
func Or(left value.Value, right Thunk) (value.Value, error) {
	if left.IsNull() {
		// Left Null still needs the right side: Null Or True is True.
		r, err := right()
		if err != nil {
			return nil, err
		}
		if !r.IsNull() {
			rb, err := value.AsBool(r)
			if err != nil {
				return nil, err
			}
			if rb {
				return value.True, nil
			}
		}
		return value.Null, nil
	}
	lb, err := value.AsBool(left)
	if err != nil {
		return nil, err
	}
	if lb {
		return value.True, nil
	}
	r, err := right()
	if err != nil {
		return nil, err
	}
	if r.IsNull() {
		return value.Null, nil
	}
	rb, err := value.AsBool(r)
	if err != nil {
		return nil, err
	}
	return value.NewBool(rb), nil
}

// Xor implements Xor. Not a short-circuit operator: both sides are always
// evaluated by the caller before Xor is invoked.
func Xor(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	ab, err := value.AsBool(a)
	if err != nil {
		return nil, err
	}
	bb, err := value.AsBool(b)
	if err != nil {
		return nil, err
	}
	return value.NewBool(ab != bb), nil
}

// Eqv implements Eqv. Not a short-circuit operator.
func Eqv(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	ab, err := value.AsBool(a)
	if err != nil {
		return nil, err
	}
	bb, err := value.AsBool(b)
	if err != nil {
		return nil, err
	}
	return value.NewBool(ab == bb), nil
}

// Imp implements Imp. A false left side short-circuits to True (False Imp
// anything is True) without evaluating right; otherwise right must be
// evaluated to resolve the result, including when left is Null.
func Imp(left value.Value, right Thunk) (value.Value, error) {
	if !left.IsNull() {
		lb, err := value.AsBool(left)
		if err != nil {
			return nil, err
		}
		if !lb {
			return value.True, nil
		}
	}
	r, err := right()
	if err != nil {
		return nil, err
	}
	if left.IsNull() {
		if !r.IsNull() {
			rb, err := value.AsBool(r)
			if err != nil {
				return nil, err
			}
			if rb {
				return value.True, nil
			}
		}
		return value.Null, nil
	}
	// left is True here.
	if r.IsNull() {
		return value.Null, nil
	}
	rb, err := value.AsBool(r)
	if err != nil {
		return nil, err
	}
	return value.NewBool(rb), nil
}

// Logical dispatches a binary logical operator by its canonical keyword.
// And/Or/Imp accept a deferred right operand; Xor/Eqv do not short-circuit,
// so Logical always calls the right thunk before invoking them.
func Logical(op string, left value.Value, right Thunk) (value.Value, error) {
	switch op {
	case "And":
		return And(left, right)
	case "Or":
		return Or(left, right)
	case "Imp":
		return Imp(left, right)
	case "Xor":
		r, err := right()
		if err != nil {
			return nil, err
		}
		return Xor(left, r)
	case "Eqv":
		r, err := right()
		if err != nil {
			return nil, err
		}
		return Eqv(left, r)
	default:
		return nil, accerr.NewEvalError(accerr.CategoryFunction, "unknown logical operator %q", op)
	}
}
