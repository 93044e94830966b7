package eval

import (
	"testing"
	"time"

	"github.com/accessexpr/accessexpr/internal/ast"
	"github.com/accessexpr/accessexpr/internal/functions"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/ident"
)

type fakeCtx struct {
	cols    map[string]value.Value
	current value.Value
}

func (c *fakeCtx) Numeric() hostctx.NumericConfig   { return hostctx.NumericConfig{DecimalSeparator: '.', GroupSeparator: ','} }
func (c *fakeCtx) Temporal() hostctx.TemporalConfig { return hostctx.TemporalConfig{} }
func (c *fakeCtx) GetFunction(name string) (*hostctx.Function, bool) {
	return functions.Get(name)
}
func (c *fakeCtx) Resolve(id ident.Identifier) (value.Value, error) {
	if v, ok := c.cols[id.String()]; ok {
		return v, nil
	}
	return value.Null, nil
}
func (c *fakeCtx) CurrentColumn() (value.Value, error) {
	if c.current == nil {
		return value.Null, nil
	}
	return c.current, nil
}
func (c *fakeCtx) DeclaredResultType() hostctx.ResultType { return value.KindNull }
func (c *fakeCtx) Random() hostctx.RandomSource           { return hostctx.NewDefaultRandomSource() }
func (c *fakeCtx) Now() time.Time                         { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

func lit(v value.Value) ast.Node { return &ast.Constant{Value: v} }

func TestEvalConstant(t *testing.T) {
	ctx := &fakeCtx{}
	got, err := Eval(ctx, lit(value.NewLong(5)))
	if err != nil {
		t.Fatal(err)
	}
	n, _ := value.AsLong(got)
	if n != 5 {
		t.Fatalf("got %v, want 5", got)
	}
}

func TestEvalBinaryAdd(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.BinaryOp{Op: "+", Left: lit(value.NewLong(2)), Right: lit(value.NewLong(3))}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := value.AsLong(got)
	if v != 5 {
		t.Fatalf("got %v, want 5", got)
	}
}

func TestEvalCompare(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.CompOp{Op: "<", Left: lit(value.NewLong(2)), Right: lit(value.NewLong(3))}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := value.AsBool(got)
	if !b {
		t.Fatalf("got %v, want True", got)
	}
}

func TestEvalAndShortCircuits(t *testing.T) {
	ctx := &fakeCtx{}
	// Right operand, if evaluated, errors via an undefined function call;
	// And's short-circuit on a False left must prevent that.
	right := &ast.FuncCall{FuncName: "NoSuchFunction", Params: nil}
	n := &ast.LogicalOp{Op: "And", Left: lit(value.False), Right: right}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := value.AsBool(got)
	if b {
		t.Fatalf("got %v, want False", got)
	}
}

func TestEvalOrShortCircuits(t *testing.T) {
	ctx := &fakeCtx{}
	right := &ast.FuncCall{FuncName: "NoSuchFunction", Params: nil}
	n := &ast.LogicalOp{Op: "Or", Left: lit(value.True), Right: right}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := value.AsBool(got)
	if !b {
		t.Fatalf("got %v, want True", got)
	}
}

func TestEvalNullOp(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.NullOp{Op: "IsNull", Expr: lit(value.Null)}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := value.AsBool(got)
	if !b {
		t.Fatalf("got %v, want True", got)
	}
}

func TestEvalBetween(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.BetweenOp{Expr: lit(value.NewLong(5)), Start: lit(value.NewLong(1)), End: lit(value.NewLong(10))}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := value.AsBool(got)
	if !b {
		t.Fatalf("got %v, want True", got)
	}
}

func TestEvalIn(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.InOp{Expr: lit(value.NewLong(3)), Exprs: []ast.Node{lit(value.NewLong(1)), lit(value.NewLong(3))}}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := value.AsBool(got)
	if !b {
		t.Fatalf("got %v, want True", got)
	}
}

func TestEvalFuncCall(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.FuncCall{FuncName: "Abs", Params: []ast.Node{lit(value.NewLong(-7))}}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	lv, _ := value.AsLong(got)
	if lv != 7 {
		t.Fatalf("got %v, want 7", got)
	}
}

func TestEvalFuncCallWrongArity(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.FuncCall{FuncName: "Abs", Params: []ast.Node{lit(value.NewLong(1)), lit(value.NewLong(2))}}
	_, err := Eval(ctx, n)
	if err == nil {
		t.Fatal("expected an arity error")
	}
}

func TestEvalIIfNeverEvaluatesOtherBranch(t *testing.T) {
	ctx := &fakeCtx{}
	divByZero := &ast.BinaryOp{Op: "/", Left: lit(value.NewLong(1)), Right: lit(value.NewLong(0))}
	n := &ast.FuncCall{FuncName: "IIf", Params: []ast.Node{
		&ast.CompOp{Op: "=", Left: lit(value.NewLong(1)), Right: lit(value.NewLong(1))},
		lit(value.NewString("yes")),
		divByZero,
	}}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.AsString(got) != "yes" {
		t.Fatalf("got %v, want yes", got)
	}
}

func TestEvalChooseSkipsUnselectedItems(t *testing.T) {
	ctx := &fakeCtx{}
	divByZero := &ast.BinaryOp{Op: "/", Left: lit(value.NewLong(1)), Right: lit(value.NewLong(0))}
	n := &ast.FuncCall{FuncName: "Choose", Params: []ast.Node{
		lit(value.NewLong(1)), lit(value.NewString("first")), divByZero,
	}}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.AsString(got) != "first" {
		t.Fatalf("got %v, want first", got)
	}
}

func TestEvalSwitchStopsAtFirstTrueCondition(t *testing.T) {
	ctx := &fakeCtx{}
	divByZero := &ast.BinaryOp{Op: "/", Left: lit(value.NewLong(1)), Right: lit(value.NewLong(0))}
	n := &ast.FuncCall{FuncName: "Switch", Params: []ast.Node{
		lit(value.False), divByZero,
		lit(value.True), lit(value.NewString("matched")),
		lit(value.True), divByZero,
	}}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.AsString(got) != "matched" {
		t.Fatalf("got %v, want matched", got)
	}
}

func TestEvalFuncCallUndefined(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.FuncCall{FuncName: "NoSuchFunction", Params: nil}
	_, err := Eval(ctx, n)
	if err == nil {
		t.Fatal("expected an undefined-function error")
	}
}

func TestEvalObjRef(t *testing.T) {
	ctx := &fakeCtx{cols: map[string]value.Value{"Qty": value.NewLong(42)}}
	n := &ast.ObjRef{ID: ident.NewIdentifier("Qty")}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	lv, _ := value.AsLong(got)
	if lv != 42 {
		t.Fatalf("got %v, want 42", got)
	}
}

func TestEvalThisColumnRef(t *testing.T) {
	ctx := &fakeCtx{current: value.NewLong(9)}
	got, err := Eval(ctx, &ast.ThisColumnRef{})
	if err != nil {
		t.Fatal(err)
	}
	lv, _ := value.AsLong(got)
	if lv != 9 {
		t.Fatalf("got %v, want 9", got)
	}
}

func TestEvalImplicitEqToThis(t *testing.T) {
	ctx := &fakeCtx{current: value.NewLong(9)}
	n := &ast.ImplicitEqToThis{Right: lit(value.NewLong(9))}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := value.AsBool(got)
	if !b {
		t.Fatalf("got %v, want True", got)
	}
}

func TestEvalUnaryNegate(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.UnaryOp{Op: "-", Right: lit(value.NewLong(5))}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	lv, _ := value.AsLong(got)
	if lv != -5 {
		t.Fatalf("got %v, want -5", got)
	}
}

func TestEvalLikeOp(t *testing.T) {
	ctx := &fakeCtx{}
	n := &ast.LikeOp{Expr: lit(value.NewString("hello")), PatternStr: "h*o"}
	got, err := Eval(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := value.AsBool(got)
	if !b {
		t.Fatalf("got %v, want True", got)
	}
}
