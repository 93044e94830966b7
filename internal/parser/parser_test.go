package parser

import (
	"testing"

	"github.com/accessexpr/accessexpr/internal/ast"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
)

type testCtx struct{ funcs map[string]*hostctx.Function }

func (testCtx) Numeric() hostctx.NumericConfig { return hostctx.NumericConfig{DecimalSeparator: '.', GroupSeparator: ','} }
func (testCtx) Temporal() hostctx.TemporalConfig {
	return hostctx.TemporalConfig{
		ShortDateLayout: "1/2/2006",
		LongTimeLayout:  "15:04:05",
		ShortTimeLayout: "3:04:05 PM",
		DateSeparator:   '/',
		TimeSeparator:   ':',
	}
}
func (c testCtx) GetFunction(name string) (*hostctx.Function, bool) {
	f, ok := c.funcs[normalizeOp(name)]
	return f, ok
}

func newTestCtx(funcNames ...string) testCtx {
	m := make(map[string]*hostctx.Function)
	for _, n := range funcNames {
		m[normalizeOp(n)] = &hostctx.Function{Name: n, MinParams: 0, MaxParams: -1}
	}
	return testCtx{funcs: m}
}

func mustParse(t *testing.T, exprType hostctx.ExprType, src string, resultType value.Kind) ast.Node {
	t.Helper()
	node, err := Parse(exprType, src, resultType, newTestCtx("iif", "len"))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return node
}

func TestPrecedenceAdditiveOverMultiplicative(t *testing.T) {
	n := mustParse(t, hostctx.ExprGeneral, "2 + 3 * 4", value.KindDouble)
	bo, ok := n.(*ast.BinaryOp)
	if !ok || bo.Op != "+" {
		t.Fatalf("expected top-level +, got %#v", n)
	}
	rhs, ok := bo.Right.(*ast.BinaryOp)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected right side *, got %#v", bo.Right)
	}
}

func TestExponentLeftAssociative(t *testing.T) {
	n := mustParse(t, hostctx.ExprGeneral, "2 ^ 3 ^ 2", value.KindDouble)
	bo, ok := n.(*ast.BinaryOp)
	if !ok || bo.Op != "^" {
		t.Fatalf("expected top-level ^, got %#v", n)
	}
	if _, ok := bo.Left.(*ast.BinaryOp); !ok {
		t.Fatalf("expected left-associative ^ chain, got %#v", bo.Left)
	}
}

func TestNegativeNumericLiteralFoldsTighterThanExponent(t *testing.T) {
	n := mustParse(t, hostctx.ExprGeneral, "-2 ^ 2", value.KindDouble)
	bo, ok := n.(*ast.BinaryOp)
	if !ok || bo.Op != "^" {
		t.Fatalf("expected top-level ^ with a folded negative literal on the left, got %#v", n)
	}
	c, ok := bo.Left.(*ast.Constant)
	if !ok || c.Value.(value.LongValue) != -2 {
		t.Fatalf("expected folded Constant(-2), got %#v", bo.Left)
	}
}

func TestLogicalChainPrecedence(t *testing.T) {
	// "A" Eqv "B" Xor "C" Or "D" And "E" parses as A Eqv (B Xor (C Or (D And E))).
	n := mustParse(t, hostctx.ExprGeneral, `"A" Eqv "B" Xor "C" Or "D" And "E"`, value.KindString)
	top, ok := n.(*ast.LogicalOp)
	if !ok || top.Op != "Eqv" {
		t.Fatalf("expected top-level Eqv, got %#v", n)
	}
	xor, ok := top.Right.(*ast.LogicalOp)
	if !ok || xor.Op != "Xor" {
		t.Fatalf("expected nested Xor, got %#v", top.Right)
	}
	or, ok := xor.Right.(*ast.LogicalOp)
	if !ok || or.Op != "Or" {
		t.Fatalf("expected nested Or, got %#v", xor.Right)
	}
	and, ok := or.Right.(*ast.LogicalOp)
	if !ok || and.Op != "And" {
		t.Fatalf("expected nested And, got %#v", or.Right)
	}
}

func TestBetweenStopsAtAndSeparatorNotLogicalAnd(t *testing.T) {
	n := mustParse(t, hostctx.ExprGeneral, "x Between 1 And 10 Or y", value.KindDouble)
	top, ok := n.(*ast.LogicalOp)
	if !ok || top.Op != "Or" {
		t.Fatalf("expected top-level Or wrapping the Between, got %#v", n)
	}
	between, ok := top.Left.(*ast.BetweenOp)
	if !ok {
		t.Fatalf("expected Between on the left of Or, got %#v", top.Left)
	}
	if _, ok := between.Start.(*ast.Constant); !ok {
		t.Fatalf("expected Between.Start to be a constant, got %#v", between.Start)
	}
}

func TestNotLikeCompound(t *testing.T) {
	n := mustParse(t, hostctx.ExprGeneral, `x Not Like "A*"`, value.KindString)
	like, ok := n.(*ast.LikeOp)
	if !ok || !like.Negate || like.PatternStr != "A*" {
		t.Fatalf("expected negated Like, got %#v", n)
	}
}

func TestIsNotNull(t *testing.T) {
	n := mustParse(t, hostctx.ExprGeneral, "x Is Not Null", value.KindDouble)
	no, ok := n.(*ast.NullOp)
	if !ok || no.Op != "IsNotNull" {
		t.Fatalf("expected IsNotNull, got %#v", n)
	}
}

func TestInList(t *testing.T) {
	n := mustParse(t, hostctx.ExprGeneral, "x In (1, 2, 3)", value.KindDouble)
	in, ok := n.(*ast.InOp)
	if !ok || len(in.Exprs) != 3 {
		t.Fatalf("expected 3-item In list, got %#v", n)
	}
}

func TestFunctionCallUnknownNameErrors(t *testing.T) {
	_, err := Parse(hostctx.ExprGeneral, "Bogus(1)", value.KindDouble, newTestCtx("iif"))
	if err == nil {
		t.Fatalf("expected a ParseError for an unregistered function")
	}
}

func TestFunctionCallArgs(t *testing.T) {
	n := mustParse(t, hostctx.ExprGeneral, "IIf(x > 0, 1, -1)", value.KindDouble)
	fc, ok := n.(*ast.FuncCall)
	if !ok || len(fc.Params) != 3 {
		t.Fatalf("expected a 3-arg IIf call, got %#v", n)
	}
}

func TestFieldValidatorImplicitLeftOperand(t *testing.T) {
	n := mustParse(t, hostctx.ExprFieldValidator, "> 0", value.KindDouble)
	cmp, ok := n.(*ast.CompOp)
	if !ok || cmp.Op != ">" {
		t.Fatalf("expected a CompOp with an implicit left operand, got %#v", n)
	}
	if _, ok := cmp.Left.(*ast.ThisColumnRef); !ok {
		t.Fatalf("expected ThisColumnRef as the implicit left operand, got %#v", cmp.Left)
	}
}

func TestFieldValidatorNonPredicateWrapsAsEquality(t *testing.T) {
	n := mustParse(t, hostctx.ExprFieldValidator, "5", value.KindDouble)
	wrap, ok := n.(*ast.ImplicitEqToThis)
	if !ok {
		t.Fatalf("expected ImplicitEqToThis wrapping a bare value, got %#v", n)
	}
	if _, ok := wrap.Right.(*ast.Constant); !ok {
		t.Fatalf("expected wrapped Constant, got %#v", wrap.Right)
	}
}

func TestDefaultValueVerbatimString(t *testing.T) {
	n := mustParse(t, hostctx.ExprDefaultValue, "plain text, no equals", value.KindString)
	c, ok := n.(*ast.Constant)
	if !ok || c.Value.(value.StringValue) != "plain text, no equals" {
		t.Fatalf("expected verbatim string constant, got %#v", n)
	}
}

func TestDefaultValueLeadingEqualsParsesAsExpression(t *testing.T) {
	n := mustParse(t, hostctx.ExprDefaultValue, "=1+1", value.KindString)
	if _, ok := n.(*ast.BinaryOp); !ok {
		t.Fatalf("expected a parsed binary expression, got %#v", n)
	}
}

func TestObjectReferenceChain(t *testing.T) {
	n := mustParse(t, hostctx.ExprGeneral, "Forms!MyForm!MyControl", value.KindDouble)
	ref, ok := n.(*ast.ObjRef)
	if !ok || ref.ID.Collection != "Forms" || ref.ID.Object != "MyForm" || ref.ID.Property != "MyControl" {
		t.Fatalf("expected a 3-segment ObjRef, got %#v", n)
	}
}

func TestUnbalancedParenErrors(t *testing.T) {
	_, err := Parse(hostctx.ExprGeneral, "(1 + 2", value.KindDouble, newTestCtx())
	if err == nil {
		t.Fatalf("expected a ParseError for an unbalanced paren")
	}
}

func TestBlankInputParsesToNil(t *testing.T) {
	n, err := Parse(hostctx.ExprGeneral, "   ", value.KindDouble, newTestCtx())
	if err != nil || n != nil {
		t.Fatalf("expected (nil, nil) for blank input, got (%#v, %v)", n, err)
	}
}
