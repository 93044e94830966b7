package expr

import (
	"testing"
	"time"

	"github.com/accessexpr/accessexpr/internal/functions"
	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/ident"
)

type testHost struct {
	current value.Value
	cols    map[string]value.Value
}

func (testHost) Numeric() NumericConfig {
	return NumericConfig{DecimalSeparator: '.', GroupSeparator: ','}
}

func (testHost) Temporal() TemporalConfig {
	return TemporalConfig{
		DateSeparator:   '/',
		TimeSeparator:   ':',
		ShortDateLayout: "1/2/2006",
		LongDateLayout:  "Monday, January 2, 2006",
		LongTimeLayout:  "15:04:05",
		ShortTimeLayout: "3:04:05 PM",
		AMString:        "AM",
		PMString:        "PM",
		FirstDayOfWeek:  1,
		FirstWeekOfYear: 1,
	}
}

func (testHost) GetFunction(name string) (*Function, bool) { return functions.Get(name) }

func (h testHost) Resolve(id ident.Identifier) (value.Value, error) {
	if v, ok := h.cols[id.String()]; ok {
		return v, nil
	}
	return value.Null, nil
}

func (h testHost) CurrentColumn() (value.Value, error) {
	if h.current == nil {
		return value.Null, nil
	}
	return h.current, nil
}

func (testHost) DeclaredResultType() ResultType { return value.KindString }
func (testHost) Random() RandomSource           { return NewDefaultRandomSource() }
func (testHost) Now() time.Time                 { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

func mustParse(t *testing.T, exprType ExprType, src string, resultType ResultType, ctx testHost) *Expression {
	t.Helper()
	e, err := Parse(exprType, src, resultType, ctx)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return e
}

// Scenario B: IIf never evaluates the branch it doesn't choose.
func TestScenarioIIfNeverEvaluatesOtherBranch(t *testing.T) {
	ctx := testHost{}
	e := mustParse(t, ExprGeneral, `IIf(1 = 1, "yes", 1/0)`, value.KindString, ctx)
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.AsString(got) != "yes" {
		t.Fatalf("got %v, want \"yes\"", got)
	}
}

// Scenario C: a bare #...# date literal at the Access epoch evaluates to
// midnight.
func TestScenarioEpochDateLiteral(t *testing.T) {
	ctx := testHost{}
	e := mustParse(t, ExprGeneral, "#12/30/1899#", value.KindDouble, ctx)
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tm, err := value.AsDateTime(got)
	if err != nil {
		t.Fatalf("AsDateTime: %v", err)
	}
	if tm.Hour() != 0 || tm.Minute() != 0 || tm.Second() != 0 {
		t.Fatalf("got %v, want midnight", tm)
	}
}

// Scenario D: Format renders a custom numeric pattern.
func TestScenarioFormatNumericPattern(t *testing.T) {
	ctx := testHost{}
	e := mustParse(t, ExprGeneral, `Format(1234.5, "#,##0.00")`, value.KindString, ctx)
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.AsString(got) != "1,234.50" {
		t.Fatalf("got %v, want 1,234.50", got)
	}
}

// Scenario E: Left returns the leftmost characters of a string.
func TestScenarioLeftSubstring(t *testing.T) {
	ctx := testHost{}
	e := mustParse(t, ExprGeneral, `Left("Hello", 3)`, value.KindString, ctx)
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.AsString(got) != "Hel" {
		t.Fatalf("got %v, want Hel", got)
	}
}

// Scenario F: a FieldValidator's Between evaluates true/false/Null
// depending on the current column's value.
func TestScenarioBetweenFieldValidator(t *testing.T) {
	e := mustParse(t, ExprFieldValidator, "Between 10 And 20", value.KindLong, testHost{})

	inRange := testHost{current: value.NewLong(15)}
	got, err := e.Eval(inRange)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, _ := value.AsBool(got); !b {
		t.Fatalf("got %v, want True for 15", got)
	}

	outOfRange := testHost{current: value.NewLong(25)}
	got, err = e.Eval(outOfRange)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, _ := value.AsBool(got); b {
		t.Fatalf("got %v, want False for 25", got)
	}

	nullCurrent := testHost{current: value.Null}
	got, err = e.Eval(nullCurrent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsNull() {
		t.Fatalf("got %v, want Null for a Null current column", got)
	}
}

// A field validator whose root is an explicit Or with an Is Null check on
// its right evaluates to True once the left operand is True.
func TestFieldValidatorOrShortCircuit(t *testing.T) {
	ctx := testHost{current: value.Null}
	e := mustParse(t, ExprFieldValidator, `True Or "B" Is Null`, value.KindString, ctx)
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, _ := value.AsBool(got); !b {
		t.Fatalf("got %v, want True", got)
	}
}

func TestPrecedenceArithmeticBeforeAdd(t *testing.T) {
	ctx := testHost{}
	e := mustParse(t, ExprGeneral, "2 + 3 * 4", value.KindLong, ctx)
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := value.AsLong(got)
	if n != 14 {
		t.Fatalf("got %v, want 14", got)
	}
}

func TestPrecedenceExpIsLeftAssociative(t *testing.T) {
	ctx := testHost{}
	e := mustParse(t, ExprGeneral, "2 ^ 3 ^ 2", value.KindDouble, ctx)
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, _ := value.AsDouble(got)
	if d != 64 {
		t.Fatalf("got %v, want 64", got)
	}
}

func TestToRawAndCleanString(t *testing.T) {
	ctx := testHost{}
	e := mustParse(t, ExprGeneral, `  Left("Hello",3)  `, value.KindString, ctx)
	if e.ToRawString() != `  Left("Hello",3)  ` {
		t.Fatalf("ToRawString changed the source: %q", e.ToRawString())
	}
	if e.ToCleanString() != `Left("Hello", 3)` {
		t.Fatalf("got %q", e.ToCleanString())
	}
}

func TestIsConstantAndCollectIdentifiers(t *testing.T) {
	ctx := testHost{}
	constExpr := mustParse(t, ExprGeneral, "1 + 2", value.KindLong, ctx)
	if !constExpr.IsConstant(nil) {
		t.Fatal("1 + 2 should be constant")
	}

	varExpr := mustParse(t, ExprGeneral, "[Qty] + 1", value.KindLong, ctx)
	if varExpr.IsConstant(nil) {
		t.Fatal("[Qty] + 1 should not be constant")
	}
	var ids []ident.Identifier
	varExpr.CollectIdentifiers(&ids)
	if len(ids) != 1 || ids[0].String() != "[Qty]" {
		t.Fatalf("got %v, want one identifier rendering as [Qty]", ids)
	}
}
