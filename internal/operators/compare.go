package operators

import (
	"strings"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/value"
)

// compareValues returns -1, 0, or 1 for a versus b under ModeCompare
// promotion rules: case-insensitive for two strings, numeric/temporal
// otherwise, a type mismatch for anything else mixed with a string.
func compareValues(a, b value.Value) (int, error) {
	kind, err := promote(a, b, ModeCompare)
	if err != nil {
		return 0, err
	}
	switch kind {
	case value.KindString:
		sa := strings.ToLower(value.AsString(a))
		sb := strings.ToLower(value.AsString(b))
		return strings.Compare(sa, sb), nil
	case value.KindBigDec:
		da, err := value.AsBigDecimal(a)
		if err != nil {
			return 0, err
		}
		db, err := value.AsBigDecimal(b)
		if err != nil {
			return 0, err
		}
		return da.Cmp(db), nil
	default:
		da, err := value.AsDouble(a)
		if err != nil {
			return 0, err
		}
		db, err := value.AsDouble(b)
		if err != nil {
			return 0, err
		}
		switch {
		case da < db:
			return -1, nil
		case da > db:
			return 1, nil
		default:
			return 0, nil
		}
	}
}

// Compare implements the comparison operators (<, <=, >, >=, =, <>). Either
// operand Null propagates Null, matching every other binary operator except
// concat.
func Compare(op string, a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null, nil
	}
	c, err := compareValues(a, b)
	if err != nil {
		return nil, err
	}
	switch op {
	case "<":
		return value.NewBool(c < 0), nil
	case "<=":
		return value.NewBool(c <= 0), nil
	case ">":
		return value.NewBool(c > 0), nil
	case ">=":
		return value.NewBool(c >= 0), nil
	case "=":
		return value.NewBool(c == 0), nil
	case "<>":
		return value.NewBool(c != 0), nil
	default:
		return nil, accerr.NewEvalError(accerr.CategoryFunction, "unknown comparison operator %q", op)
	}
}
