package operators

import (
	"regexp"
	"testing"

	"github.com/accessexpr/accessexpr/internal/value"
)

func TestIsNullObservesNullity(t *testing.T) {
	if b := IsNull(value.Null, false); !mustBool(t, b, nil) {
		t.Fatalf("expected IsNull(Null) = True")
	}
	if b := IsNull(value.NewLong(1), true); !mustBool(t, b, nil) {
		t.Fatalf("expected IsNotNull(1) = True")
	}
}

func TestLikeNilCompiledIsUnmatchable(t *testing.T) {
	r, err := Like(value.NewString("anything"), nil, false)
	if mustBool(t, r, err) {
		t.Fatalf("expected a nil compiled pattern to never match")
	}
}

func TestLikeMatchesCompiledPattern(t *testing.T) {
	re := regexp.MustCompile(`(?is)^a.*z$`)
	r, err := Like(value.NewString("abcz"), re, false)
	if !mustBool(t, r, err) {
		t.Fatalf("expected \"abcz\" to match ^a.*z$")
	}
}

func TestBetweenAcceptsReversedBounds(t *testing.T) {
	r, err := Between(value.NewLong(5), value.NewLong(10), value.NewLong(1), false)
	if !mustBool(t, r, err) {
		t.Fatalf("expected Between(5, 10, 1) = True, reversed bounds should still work")
	}
}

func TestBetweenNullOperandPropagates(t *testing.T) {
	r, err := Between(value.Null, value.NewLong(1), value.NewLong(10), false)
	if err != nil || !r.IsNull() {
		t.Fatalf("Between(Null, 1, 10) = %#v, %v; want Null", r, err)
	}
}

func TestInSkipsNullsAndFindsMatch(t *testing.T) {
	items := []value.Value{value.Null, value.NewLong(2), value.NewLong(3)}
	r, err := In(value.NewLong(3), items, false)
	if !mustBool(t, r, err) {
		t.Fatalf("expected 3 In (Null, 2, 3) = True")
	}
}

func TestInNotFoundReturnsFalse(t *testing.T) {
	items := []value.Value{value.NewLong(2), value.NewLong(3)}
	r, err := In(value.NewLong(5), items, false)
	if mustBool(t, r, err) {
		t.Fatalf("expected 5 In (2, 3) = False")
	}
}

func TestInNullLeftPropagates(t *testing.T) {
	r, err := In(value.Null, []value.Value{value.NewLong(1)}, false)
	if err != nil || !r.IsNull() {
		t.Fatalf("In(Null, ...) = %#v, %v; want Null", r, err)
	}
}
