package operators

import (
	"testing"

	"github.com/accessexpr/accessexpr/internal/value"
)

func neverCalled(t *testing.T) Thunk {
	return func() (value.Value, error) {
		t.Fatalf("right-hand thunk should not have been evaluated")
		return nil, nil
	}
}

func TestAndShortCircuitsOnFalse(t *testing.T) {
	r, err := And(value.False, neverCalled(t))
	if mustBool(t, r, err) != false {
		t.Fatalf("expected And(False, ...) = False")
	}
}

func TestOrShortCircuitsOnTrue(t *testing.T) {
	r, err := Or(value.True, neverCalled(t))
	if !mustBool(t, r, err) {
		t.Fatalf("expected Or(True, ...) = True")
	}
}

func TestImpShortCircuitsOnFalse(t *testing.T) {
	r, err := Imp(value.False, neverCalled(t))
	if !mustBool(t, r, err) {
		t.Fatalf("expected Imp(False, ...) = True")
	}
}

func TestImpNullLeftStillEvaluatesRight(t *testing.T) {
	called := false
	r, err := Imp(value.Null, func() (value.Value, error) {
		called = true
		return value.True, nil
	})
	if !called {
		t.Fatalf("expected Imp(Null, ...) to evaluate the right side")
	}
	if !mustBool(t, r, err) {
		t.Fatalf("expected Imp(Null, True) = True")
	}
}

func TestImpNullLeftFalseRightIsNull(t *testing.T) {
	r, err := Imp(value.Null, func() (value.Value, error) { return value.False, nil })
	if err != nil || !r.IsNull() {
		t.Fatalf("Imp(Null, False) = %#v, %v; want Null", r, err)
	}
}

func TestAndNullLeftTrueRightIsNull(t *testing.T) {
	r, err := And(value.Null, func() (value.Value, error) { return value.True, nil })
	if err != nil || !r.IsNull() {
		t.Fatalf("And(Null, True) = %#v, %v; want Null", r, err)
	}
}

func TestAndNullLeftFalseRightIsFalse(t *testing.T) {
	r, err := And(value.Null, func() (value.Value, error) { return value.False, nil })
	if mustBool(t, r, err) != false {
		t.Fatalf("And(Null, False) should resolve to False, got %#v", r)
	}
}

func TestXorTruthTable(t *testing.T) {
	cases := []struct {
		a, b value.Value
		want bool
	}{
		{value.True, value.True, false},
		{value.True, value.False, true},
		{value.False, value.True, true},
		{value.False, value.False, false},
	}
	for _, c := range cases {
		r, err := Xor(c.a, c.b)
		if mustBool(t, r, err) != c.want {
			t.Fatalf("expected Xor(%v, %v) = %v", c.a, c.b, c.want)
		}
	}
}

func TestEqvTruthTable(t *testing.T) {
	cases := []struct {
		a, b value.Value
		want bool
	}{
		{value.True, value.True, true},
		{value.True, value.False, false},
		{value.False, value.True, false},
		{value.False, value.False, true},
	}
	for _, c := range cases {
		r, err := Eqv(c.a, c.b)
		if mustBool(t, r, err) != c.want {
			t.Fatalf("expected Eqv(%v, %v) = %v", c.a, c.b, c.want)
		}
	}
}

func TestNotNullPropagates(t *testing.T) {
	r, err := Not(value.Null)
	if err != nil || !r.IsNull() {
		t.Fatalf("Not(Null) = %#v, %v; want Null", r, err)
	}
}
