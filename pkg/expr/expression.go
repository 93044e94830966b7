package expr

import (
	"github.com/accessexpr/accessexpr/internal/ast"
	"github.com/accessexpr/accessexpr/internal/eval"
	"github.com/accessexpr/accessexpr/internal/parser"
	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/ident"
)

// Expression is a parsed Access expression, ready to be evaluated
// repeatedly against different EvalContexts. It holds the original
// source text alongside the parsed tree so ToRawString can return it
// verbatim without re-rendering.
type Expression struct {
	source string
	root   ast.Node
}

// Parse tokenizes and parses src under exprType. resultType is the
// declared result type the host expects back (only consulted for
// DefaultValue's verbatim-string rule). A blank source parses to a nil
// root and evaluates to Null, matching the tokenizer's own treatment of
// blank input.
func Parse(exprType ExprType, src string, resultType ResultType, ctx ParseContext) (*Expression, error) {
	root, err := parser.Parse(exprType, src, resultType, ctx)
	if err != nil {
		return nil, err
	}
	return &Expression{source: src, root: root}, nil
}

// Eval evaluates the expression against ctx. A blank-source Expression
// evaluates to Null.
func (e *Expression) Eval(ctx EvalContext) (value.Value, error) {
	if e.root == nil {
		return value.Null, nil
	}
	return eval.Eval(ctx, e.root)
}

// ToRawString returns the original source text, unparsed.
func (e *Expression) ToRawString() string {
	return e.source
}

// ToCleanString renders the parsed tree back to canonical Access syntax,
// independent of how the original source was spaced or cased.
func (e *Expression) ToCleanString() string {
	if e.root == nil {
		return ""
	}
	return ast.Print(e.root, false)
}

// ToDebugString renders the parsed tree with explicit parenthesization
// around every binary/logical/comparison node, making the precedence the
// parser assigned visible.
func (e *Expression) ToDebugString() string {
	if e.root == nil {
		return ""
	}
	return ast.Print(e.root, true)
}

// IsConstant reports whether the expression's value doesn't depend on
// any host-resolved identifier or the current column, so it can be
// evaluated once and cached. funcPure reports whether a given function
// name is safe to fold (repeatable, no host side effects); a nil
// funcPure treats every function call as non-constant.
func (e *Expression) IsConstant(funcPure func(name string) bool) bool {
	if e.root == nil {
		return true
	}
	if funcPure == nil {
		funcPure = func(string) bool { return false }
	}
	return ast.IsConstant(e.root, funcPure)
}

// CollectIdentifiers appends every object reference the expression reads
// from, in source order, duplicates included.
func (e *Expression) CollectIdentifiers(out *[]ident.Identifier) {
	if e.root == nil {
		return
	}
	ast.CollectIdentifiers(e.root, out)
}
