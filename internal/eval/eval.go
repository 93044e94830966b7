// Package eval walks an internal/ast tree and produces a value.Value,
// dispatching arithmetic, comparison, and logical operators into
// internal/operators and function calls into the host's function table.
package eval

import (
	"fmt"
	"strings"

	"github.com/accessexpr/accessexpr/internal/ast"
	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/like"
	"github.com/accessexpr/accessexpr/internal/operators"
	"github.com/accessexpr/accessexpr/internal/value"
)

// Eval evaluates n against ctx, recursing into children as needed. Logical
// And/Or/Imp pass their right operand to internal/operators as a thunk so
// it is only evaluated when the left operand doesn't already decide the
// result.
func Eval(ctx hostctx.EvalContext, n ast.Node) (value.Value, error) {
	switch v := n.(type) {
	case *ast.Constant:
		return v.Value, nil
	case *ast.Literal:
		return v.Val, nil
	case *ast.ThisColumnRef:
		return ctx.CurrentColumn()
	case *ast.ObjRef:
		return ctx.Resolve(v.ID)
	case *ast.Paren:
		return Eval(ctx, v.Child)
	case *ast.FuncCall:
		return evalFuncCall(ctx, v)
	case *ast.UnaryOp:
		return evalUnary(ctx, v)
	case *ast.BinaryOp:
		return evalBinary(ctx, v)
	case *ast.CompOp:
		left, err := Eval(ctx, v.Left)
		if err != nil {
			return nil, err
		}
		right, err := Eval(ctx, v.Right)
		if err != nil {
			return nil, err
		}
		return operators.Compare(v.Op, left, right)
	case *ast.ImplicitEqToThis:
		left, err := ctx.CurrentColumn()
		if err != nil {
			return nil, err
		}
		right, err := Eval(ctx, v.Right)
		if err != nil {
			return nil, err
		}
		return operators.Compare("=", left, right)
	case *ast.LogicalOp:
		return evalLogical(ctx, v)
	case *ast.NullOp:
		expr, err := Eval(ctx, v.Expr)
		if err != nil {
			return nil, err
		}
		return operators.IsNull(expr, v.Op == "IsNotNull"), nil
	case *ast.LikeOp:
		expr, err := Eval(ctx, v.Expr)
		if err != nil {
			return nil, err
		}
		compiled := v.Compiled(like.Compile)
		return operators.Like(expr, compiled, v.Negate)
	case *ast.InOp:
		return evalIn(ctx, v)
	case *ast.BetweenOp:
		return evalBetween(ctx, v)
	default:
		return nil, accerr.NewEvalErrorAt(accerr.CategoryType, n.Pos(), "unsupported node type %T", n)
	}
}

func evalUnary(ctx hostctx.EvalContext, v *ast.UnaryOp) (value.Value, error) {
	right, err := Eval(ctx, v.Right)
	if err != nil {
		return nil, err
	}
	switch v.Op {
	case "-":
		return operators.Negate(right)
	case "+":
		return right, nil
	case "Not":
		return operators.Not(right)
	default:
		return nil, accerr.NewEvalErrorAt(accerr.CategoryType, v.P, "unsupported unary operator %q", v.Op)
	}
}

func evalBinary(ctx hostctx.EvalContext, v *ast.BinaryOp) (value.Value, error) {
	left, err := Eval(ctx, v.Left)
	if err != nil {
		return nil, err
	}
	right, err := Eval(ctx, v.Right)
	if err != nil {
		return nil, err
	}
	switch v.Op {
	case "+":
		return operators.Add(left, right)
	case "-":
		return operators.Subtract(left, right)
	case "*":
		return operators.Multiply(left, right)
	case "/":
		return operators.Divide(left, right)
	case "\\":
		return operators.IntDivide(left, right)
	case "^":
		return operators.Exp(left, right)
	case "&":
		return operators.Concat(left, right)
	case "Mod":
		return operators.Mod(left, right)
	default:
		return nil, accerr.NewEvalErrorAt(accerr.CategoryType, v.P, "unsupported binary operator %q", v.Op)
	}
}

func evalLogical(ctx hostctx.EvalContext, v *ast.LogicalOp) (value.Value, error) {
	left, err := Eval(ctx, v.Left)
	if err != nil {
		return nil, err
	}
	thunk := func() (value.Value, error) { return Eval(ctx, v.Right) }
	return operators.Logical(v.Op, left, thunk)
}

func evalIn(ctx hostctx.EvalContext, v *ast.InOp) (value.Value, error) {
	left, err := Eval(ctx, v.Expr)
	if err != nil {
		return nil, err
	}
	items := make([]value.Value, 0, len(v.Exprs))
	for _, e := range v.Exprs {
		iv, err := Eval(ctx, e)
		if err != nil {
			return nil, err
		}
		items = append(items, iv)
	}
	return operators.In(left, items, v.Negate)
}

func evalBetween(ctx hostctx.EvalContext, v *ast.BetweenOp) (value.Value, error) {
	x, err := Eval(ctx, v.Expr)
	if err != nil {
		return nil, err
	}
	lo, err := Eval(ctx, v.Start)
	if err != nil {
		return nil, err
	}
	hi, err := Eval(ctx, v.End)
	if err != nil {
		return nil, err
	}
	return operators.Between(x, lo, hi, v.Negate)
}

func evalFuncCall(ctx hostctx.EvalContext, v *ast.FuncCall) (value.Value, error) {
	f, ok := ctx.GetFunction(v.FuncName)
	if !ok {
		return nil, accerr.NewEvalErrorAt(accerr.CategoryFunction, v.P, "undefined function %q", v.FuncName)
	}
	if len(v.Params) < f.MinParams || (f.MaxParams >= 0 && len(v.Params) > f.MaxParams) {
		return nil, accerr.NewEvalErrorAt(accerr.CategoryFunction, v.P, "%s expects %s, got %d",
			v.FuncName, arityDescription(f.MinParams, f.MaxParams), len(v.Params))
	}

	// IIf, Choose, and Switch only evaluate the branch(es) their condition
	// actually selects; every other function receives fully evaluated
	// arguments, since the registry's Call signature takes []value.Value.
	switch {
	case strings.EqualFold(v.FuncName, "IIf"):
		return evalIIf(ctx, v)
	case strings.EqualFold(v.FuncName, "Choose"):
		return evalChoose(ctx, v)
	case strings.EqualFold(v.FuncName, "Switch"):
		return evalSwitch(ctx, v)
	}

	args := make([]value.Value, len(v.Params))
	for i, p := range v.Params {
		a, err := Eval(ctx, p)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}
	result, err := f.Call(ctx, args)
	if err != nil {
		return nil, accerr.WrapEvalError(err, ast.Print(v, false))
	}
	return result, nil
}

// evalIIf evaluates only the branch its condition selects, so a div-by-zero
// or other failure in the unchosen branch is never observed.
func evalIIf(ctx hostctx.EvalContext, v *ast.FuncCall) (value.Value, error) {
	cond, err := Eval(ctx, v.Params[0])
	if err != nil {
		return nil, err
	}
	if cond.IsNull() {
		return Eval(ctx, v.Params[2])
	}
	b, err := value.AsBool(cond)
	if err != nil {
		return nil, err
	}
	if b {
		return Eval(ctx, v.Params[1])
	}
	return Eval(ctx, v.Params[2])
}

// evalChoose evaluates the index, then only the chosen item (if any).
func evalChoose(ctx hostctx.EvalContext, v *ast.FuncCall) (value.Value, error) {
	idxVal, err := Eval(ctx, v.Params[0])
	if err != nil {
		return nil, err
	}
	if idxVal.IsNull() {
		return value.Null, nil
	}
	idx, err := value.AsLong(idxVal)
	if err != nil {
		return nil, err
	}
	choices := v.Params[1:]
	if idx < 1 || int(idx) > len(choices) {
		return value.Null, nil
	}
	return Eval(ctx, choices[idx-1])
}

// evalSwitch evaluates condition/value pairs in order, stopping at the
// first true condition without evaluating later pairs' values or
// conditions.
func evalSwitch(ctx hostctx.EvalContext, v *ast.FuncCall) (value.Value, error) {
	if len(v.Params)%2 != 0 {
		return nil, accerr.NewEvalErrorAt(accerr.CategoryFunction, v.P, "Switch requires an even number of arguments")
	}
	for i := 0; i+1 < len(v.Params); i += 2 {
		cond, err := Eval(ctx, v.Params[i])
		if err != nil {
			return nil, err
		}
		if cond.IsNull() {
			continue
		}
		b, err := value.AsBool(cond)
		if err != nil {
			return nil, err
		}
		if b {
			return Eval(ctx, v.Params[i+1])
		}
	}
	return value.Null, nil
}

func arityDescription(min, max int) string {
	switch {
	case max < 0:
		return fmt.Sprintf("at least %d argument(s)", min)
	case min == max:
		return fmt.Sprintf("%d argument(s)", min)
	default:
		return fmt.Sprintf("between %d and %d arguments", min, max)
	}
}
