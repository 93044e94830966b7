package functions

import (
	"testing"
	"time"

	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/ident"
)

type fakeCtx struct {
	now   time.Time
	rand  hostctx.RandomSource
	rtype value.Kind
}

func newFakeCtx() *fakeCtx {
	return &fakeCtx{
		now:   time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		rand:  hostctx.NewDefaultRandomSource(),
		rtype: value.KindString,
	}
}

func (c *fakeCtx) Numeric() hostctx.NumericConfig { return hostctx.NumericConfig{} }
func (c *fakeCtx) Temporal() hostctx.TemporalConfig {
	return hostctx.TemporalConfig{
		FirstDayOfWeek:  1,
		MonthNames:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		MonthNamesAbbr:  [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		WeekdayNames:    [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		WeekdayNamesAbbr: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		ShortDateLayout: "1/2/2006",
		LongTimeLayout:  "15:04:05",
		ShortTimeLayout: "3:04:05 PM",
		DateSeparator:   '/',
		TimeSeparator:   ':',
	}
}
func (c *fakeCtx) GetFunction(name string) (*hostctx.Function, bool) { return Get(name) }
func (c *fakeCtx) Resolve(id ident.Identifier) (value.Value, error)  { return value.Null, nil }
func (c *fakeCtx) CurrentColumn() (value.Value, error)               { return value.Null, nil }
func (c *fakeCtx) DeclaredResultType() hostctx.ResultType             { return c.rtype }
func (c *fakeCtx) Random() hostctx.RandomSource                       { return c.rand }
func (c *fakeCtx) Now() time.Time                                     { return c.now }

func call(t *testing.T, ctx hostctx.EvalContext, name string, args ...value.Value) value.Value {
	t.Helper()
	f, ok := Get(name)
	if !ok {
		t.Fatalf("%s not registered", name)
	}
	v, err := f.Call(ctx, args)
	if err != nil {
		t.Fatalf("%s(...) returned error: %v", name, err)
	}
	return v
}

func TestIIfSelectsBranch(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "IIf", value.True, value.NewLong(1), value.NewLong(2))
	if n, _ := value.AsLong(v); n != 1 {
		t.Fatalf("IIf(True, 1, 2) = %v, want 1", v)
	}
}

func TestNzDefaultsToDeclaredResultTypeZero(t *testing.T) {
	ctx := newFakeCtx()
	ctx.rtype = value.KindLong
	v := call(t, ctx, "Nz", value.Null)
	if n, _ := value.AsLong(v); n != 0 {
		t.Fatalf("Nz(Null) = %v, want 0", v)
	}
}

func TestChooseOutOfRangeIsNull(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "Choose", value.NewLong(5), value.NewLong(1), value.NewLong(2))
	if !v.IsNull() {
		t.Fatalf("Choose(5, 1, 2) = %v, want Null", v)
	}
}

func TestCLngRoundsHalfToEven(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "CLng", value.NewDouble(2.5))
	if n, _ := value.AsLong(v); n != 2 {
		t.Fatalf("CLng(2.5) = %v, want 2 (round half to even)", v)
	}
}

func TestCByteRangeError(t *testing.T) {
	f, _ := Get("CByte")
	_, err := f.Call(newFakeCtx(), []value.Value{value.NewLong(300)})
	if err == nil {
		t.Fatalf("expected CByte(300) to error")
	}
}

func TestLeftAndRight(t *testing.T) {
	ctx := newFakeCtx()
	if v := call(t, ctx, "Left", value.NewString("hello"), value.NewLong(3)); v.String() != "hel" {
		t.Fatalf("Left(\"hello\", 3) = %q, want \"hel\"", v.String())
	}
	if v := call(t, ctx, "Right", value.NewString("hello"), value.NewLong(3)); v.String() != "llo" {
		t.Fatalf("Right(\"hello\", 3) = %q, want \"llo\"", v.String())
	}
}

func TestMidWithAndWithoutLength(t *testing.T) {
	ctx := newFakeCtx()
	if v := call(t, ctx, "Mid", value.NewString("hello world"), value.NewLong(7)); v.String() != "world" {
		t.Fatalf("Mid(\"hello world\", 7) = %q, want \"world\"", v.String())
	}
	if v := call(t, ctx, "Mid", value.NewString("hello world"), value.NewLong(1), value.NewLong(5)); v.String() != "hello" {
		t.Fatalf("Mid(\"hello world\", 1, 5) = %q, want \"hello\"", v.String())
	}
}

func TestInStrFindsSubstringCaseInsensitive(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "InStr", value.NewString("Hello World"), value.NewString("world"))
	if n, _ := value.AsLong(v); n != 7 {
		t.Fatalf("InStr(\"Hello World\", \"world\") = %v, want 7", v)
	}
}

func TestInStrWithStartPosition(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "InStr", value.NewLong(5), value.NewString("ababab"), value.NewString("ab"))
	if n, _ := value.AsLong(v); n != 5 {
		t.Fatalf("InStr(5, \"ababab\", \"ab\") = %v, want 5", v)
	}
}

func TestReplaceBasic(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "Replace", value.NewString("foo bar foo"), value.NewString("foo"), value.NewString("baz"))
	if v.String() != "baz bar baz" {
		t.Fatalf("Replace = %q", v.String())
	}
}

func TestStrReverse(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "StrReverse", value.NewString("abc"))
	if v.String() != "cba" {
		t.Fatalf("StrReverse(\"abc\") = %q", v.String())
	}
}

func TestHexAndOctOfNegativeLong(t *testing.T) {
	ctx := newFakeCtx()
	if v := call(t, ctx, "Hex", value.NewLong(-1)); v.String() != "FFFFFFFF" {
		t.Fatalf("Hex(-1) = %q, want FFFFFFFF", v.String())
	}
	if v := call(t, ctx, "Oct", value.NewLong(-1)); v.String() != "37777777777" {
		t.Fatalf("Oct(-1) = %q, want 37777777777", v.String())
	}
}

func TestYearMonthDay(t *testing.T) {
	ctx := newFakeCtx()
	d := value.NewDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if v := call(t, ctx, "Year", d); v.String() != "2024" {
		t.Fatalf("Year = %v", v)
	}
	if v := call(t, ctx, "Month", d); v.String() != "3" {
		t.Fatalf("Month = %v", v)
	}
	if v := call(t, ctx, "Day", d); v.String() != "15" {
		t.Fatalf("Day = %v", v)
	}
}

func TestMonthNameAbbreviated(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "MonthName", value.NewLong(3), value.True)
	if v.String() != "Mar" {
		t.Fatalf("MonthName(3, True) = %q, want Mar", v.String())
	}
}

func TestAbsPreservesLongKind(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "Abs", value.NewLong(-5))
	if v.Kind() != value.KindLong {
		t.Fatalf("Abs(-5) kind = %v, want Long", v.Kind())
	}
}

func TestRoundHalfToEven(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "Round", value.NewDouble(0.5))
	if d, _ := value.AsDouble(v); d != 0 {
		t.Fatalf("Round(0.5) = %v, want 0", v)
	}
}

func TestSgn(t *testing.T) {
	ctx := newFakeCtx()
	if v := call(t, ctx, "Sgn", value.NewLong(-5)); v.String() != "-1" {
		t.Fatalf("Sgn(-5) = %v", v)
	}
}

func TestSLNStraightLineDepreciation(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "SLN", value.NewDouble(10000), value.NewDouble(1000), value.NewDouble(5))
	if d, _ := value.AsDouble(v); d != 1800 {
		t.Fatalf("SLN(10000, 1000, 5) = %v, want 1800", v)
	}
}

func TestPVZeroRate(t *testing.T) {
	ctx := newFakeCtx()
	v := call(t, ctx, "PV", value.NewDouble(0), value.NewDouble(12), value.NewDouble(-100))
	if d, _ := value.AsDouble(v); d != 1200 {
		t.Fatalf("PV(0, 12, -100) = %v, want 1200", v)
	}
}

func TestTypeNameAndVarType(t *testing.T) {
	ctx := newFakeCtx()
	if v := call(t, ctx, "TypeName", value.NewString("x")); v.String() != "String" {
		t.Fatalf("TypeName = %v", v)
	}
	if v := call(t, ctx, "VarType", value.NewString("x")); v.String() != "8" {
		t.Fatalf("VarType = %v", v)
	}
}

func TestCaseInsensitiveLookup(t *testing.T) {
	if !Has("iif") || !Has("IIF") || !Has("IIf") {
		t.Fatalf("expected case-insensitive registration for IIf")
	}
}
