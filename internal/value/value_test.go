package value

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBooleanNumericIdentity(t *testing.T) {
	trueLong, err := AsLong(True)
	if err != nil || trueLong != -1 {
		t.Fatalf("True.AsLong = %d, %v; want -1, nil", trueLong, err)
	}
	falseLong, err := AsLong(False)
	if err != nil || falseLong != 0 {
		t.Fatalf("False.AsLong = %d, %v; want 0, nil", falseLong, err)
	}
	if AsString(True) != "-1" {
		t.Fatalf("True.AsString = %q; want -1", AsString(True))
	}
	if AsString(False) != "0" {
		t.Fatalf("False.AsString = %q; want 0", AsString(False))
	}
}

func TestBigDecNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.2300", "1.23"},
		{"1.000", "1"},
		{"0.000", "0"},
		{"100.00", "100"},
		{"-4.50", "-4.5"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", c.in, err)
		}
		got := NewBigDec(d)
		if got.String() != c.want {
			t.Errorf("NewBigDec(%s) = %s; want %s", c.in, got.String(), c.want)
		}
	}
}

func TestBigDecZeroIsScaleZero(t *testing.T) {
	d, _ := decimal.NewFromString("0.000")
	got := NewBigDec(d).(BigDecValue)
	if got.D.Exponent() != 0 {
		t.Fatalf("zero exponent = %d; want 0", got.D.Exponent())
	}
}

func TestNullIsNull(t *testing.T) {
	if !Null.IsNull() {
		t.Fatal("Null.IsNull() = false")
	}
	others := []Value{True, False, NewLong(1), NewDouble(1), NewString("x")}
	for _, v := range others {
		if v.IsNull() {
			t.Errorf("%s.IsNull() = true; want false", v.Kind())
		}
	}
}

func TestAsLongRangeError(t *testing.T) {
	big, _ := decimal.NewFromString("99999999999")
	_, err := AsLong(NewBigDec(big))
	if err == nil {
		t.Fatal("expected range error for out-of-range Long coercion")
	}
}

func TestTryParseNumber(t *testing.T) {
	cases := []struct {
		in      string
		wantOK  bool
		wantStr string
	}{
		{"123", true, "123"},
		{"123.45", true, "123.45"},
		{"1e10", true, "10000000000"},
		{"-5", true, "-5"},
		{"abc", false, ""},
		{"", false, ""},
		{"1.2.3", false, ""},
	}
	for _, c := range cases {
		v, ok := TryParseNumber(c.in)
		if ok != c.wantOK {
			t.Errorf("TryParseNumber(%q) ok = %v; want %v", c.in, ok, c.wantOK)
			continue
		}
		if ok && v.String() != c.wantStr {
			t.Errorf("TryParseNumber(%q) = %s; want %s", c.in, v.String(), c.wantStr)
		}
	}
}
