package operators

import (
	"regexp"

	"github.com/accessexpr/accessexpr/internal/value"
)

// IsNull implements the "Is Null"/"Is Not Null" test directly (no Null
// propagation — this is the one predicate whose whole job is to observe
// nullity).
func IsNull(v value.Value, negate bool) value.Value {
	r := v.IsNull()
	if negate {
		r = !r
	}
	return value.NewBool(r)
}

// Like matches v's string form against a pattern already compiled by
// internal/like. A nil compiled regexp (an unmatchable pattern) never
// matches.
func Like(v value.Value, compiled *regexp.Regexp, negate bool) (value.Value, error) {
	if v.IsNull() {
		return value.Null, nil
	}
	matched := compiled != nil && compiled.MatchString(value.AsString(v))
	if negate {
		matched = !matched
	}
	return value.NewBool(matched), nil
}

// Between implements [Not] Between lo And hi, accepting the bounds in
// either order.
func Between(x, lo, hi value.Value, negate bool) (value.Value, error) {
	if x.IsNull() || lo.IsNull() || hi.IsNull() {
		return value.Null, nil
	}
	c, err := compareValues(lo, hi)
	if err != nil {
		return nil, err
	}
	if c > 0 {
		lo, hi = hi, lo
	}
	cl, err := compareValues(x, lo)
	if err != nil {
		return nil, err
	}
	ch, err := compareValues(x, hi)
	if err != nil {
		return nil, err
	}
	result := cl >= 0 && ch <= 0
	if negate {
		result = !result
	}
	return value.NewBool(result), nil
}

// In implements [Not] In (v1, v2, ...): Null items are skipped, a match
// against any non-null item returns true.
func In(x value.Value, items []value.Value, negate bool) (value.Value, error) {
	if x.IsNull() {
		return value.Null, nil
	}
	found := false
	for _, it := range items {
		if it.IsNull() {
			continue
		}
		c, err := compareValues(x, it)
		if err != nil {
			return nil, err
		}
		if c == 0 {
			found = true
			break
		}
	}
	result := found
	if negate {
		result = !result
	}
	return value.NewBool(result), nil
}
