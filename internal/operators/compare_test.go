package operators

import (
	"testing"

	"github.com/accessexpr/accessexpr/internal/value"
)

func mustBool(t *testing.T, v value.Value, err error) bool {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := v.(value.BoolValue)
	if !ok {
		t.Fatalf("expected a Bool, got %#v", v)
	}
	return bool(b)
}

func TestCompareCaseInsensitiveStrings(t *testing.T) {
	r, err := Compare("=", value.NewString("Hello"), value.NewString("hello"))
	if !mustBool(t, r, err) {
		t.Fatalf("expected case-insensitive string equality to hold")
	}
}

func TestCompareStringAgainstNumberIsTypeMismatch(t *testing.T) {
	if _, err := Compare("=", value.NewString("abc"), value.NewLong(1)); err == nil {
		t.Fatalf("expected a type mismatch comparing a non-numeric string to a number")
	}
}

func TestCompareNullPropagates(t *testing.T) {
	r, err := Compare("=", value.Null, value.NewLong(1))
	if err != nil || !r.IsNull() {
		t.Fatalf("Compare(Null, 1) = %#v, %v; want Null", r, err)
	}
}

func TestCompareNumericOrdering(t *testing.T) {
	cases := []struct {
		op   string
		a, b value.Value
		want bool
	}{
		{"<", value.NewLong(1), value.NewLong(2), true},
		{">", value.NewLong(2), value.NewLong(1), true},
		{"<=", value.NewLong(2), value.NewLong(2), true},
		{">=", value.NewLong(1), value.NewLong(2), false},
		{"<>", value.NewLong(1), value.NewLong(2), true},
	}
	for _, c := range cases {
		r, err := Compare(c.op, c.a, c.b)
		if got := mustBool(t, r, err); got != c.want {
			t.Errorf("Compare(%s, %v, %v) = %v; want %v", c.op, c.a, c.b, got, c.want)
		}
	}
}
