// Package operators implements the Access/VBA operator semantics: arithmetic
// with its three type-promotion modes, comparisons, the short-circuiting
// logical connectives, and the Like/Between/In predicates. It takes no AST
// dependency — every function here operates purely on value.Value (and, for
// And/Or/Imp, a deferred right-hand thunk) — so the kernel is unit-testable
// without a parser.
package operators

import (
	"strings"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/value"
)

// Mode selects which arithmetic type-promotion rules an operator follows.
type Mode int

const (
	// ModeSimple is used by binary + and unary/binary -: temporal operands
	// are preferred over numeric ones, and two temporals unify as DateTime.
	ModeSimple Mode = iota
	// ModeGeneral is used by *, /, \, ^, and Mod: temporal operands always
	// demote to their serial-double numeric form first.
	ModeGeneral
	// ModeCompare is used by comparisons: like ModeGeneral, but a string
	// operand never coerces to a number — two strings compare as strings,
	// anything else mixed with a string is a type mismatch.
	ModeCompare
)

func isTemporalKind(k value.Kind) bool {
	return k == value.KindDate || k == value.KindTime || k == value.KindDateTime
}

func typeMismatch(a, b value.Value) error {
	return accerr.NewEvalError(accerr.CategoryType, "type mismatch between %s and %s", a.Kind(), b.Kind())
}

// promote decides the common math type a and b should be coerced to before
// an operator of the given mode combines them.
func promote(a, b value.Value, mode Mode) (value.Kind, error) {
	ka, kb := a.Kind(), b.Kind()
	aT, bT := isTemporalKind(ka), isTemporalKind(kb)

	if aT || bT {
		if mode == ModeSimple {
			switch {
			case aT && bT:
				return value.KindDateTime, nil
			case aT:
				return ka, nil
			default:
				return kb, nil
			}
		}
		// ModeGeneral/ModeCompare: demote temporal sides to their serial
		// double form, then fall through to ordinary numeric promotion.
		if aT {
			ka = value.KindDouble
		}
		if bT {
			kb = value.KindDouble
		}
	}

	if ka == kb {
		return ka, nil
	}

	aStr, bStr := ka == value.KindString, kb == value.KindString
	if aStr != bStr {
		if mode == ModeCompare {
			return 0, typeMismatch(a, b)
		}
		strVal, otherKind := a, kb
		if bStr {
			strVal, otherKind = b, ka
		}
		if _, ok := value.TryParseNumber(strings.TrimSpace(strVal.String())); ok {
			if otherKind == value.KindBigDec {
				return value.KindBigDec, nil
			}
			return value.KindDouble, nil
		}
		return 0, typeMismatch(a, b)
	}

	return promoteNumeric(ka, kb)
}

// promoteNumeric resolves the common type of two non-temporal, non-string
// kinds: BigDec beats Double beats Long/Bool (the only integral kind).
func promoteNumeric(ka, kb value.Kind) (value.Kind, error) {
	if ka == value.KindBigDec || kb == value.KindBigDec {
		return value.KindBigDec, nil
	}
	if ka == value.KindDouble || kb == value.KindDouble {
		return value.KindDouble, nil
	}
	if isNumericOrBool(ka) && isNumericOrBool(kb) {
		return value.KindLong, nil
	}
	return 0, accerr.NewEvalError(accerr.CategoryType, "cannot combine %s and %s", ka, kb)
}

func isNumericOrBool(k value.Kind) bool {
	return k == value.KindLong || k == value.KindBool
}
