// Package parser builds an expression tree from a token stream using
// precedence climbing: each binary operator recurses into its
// right-hand operand with a tighter precedence ceiling, so the tree
// comes out correctly shaped on the first pass. It consumes
// internal/lexer's token slice and a hostctx.ParseContext for locale
// and function-name lookups.
package parser

import (
	"strings"

	"github.com/accessexpr/accessexpr/internal/ast"
	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/lexer"
	"github.com/accessexpr/accessexpr/internal/token"
	"github.com/accessexpr/accessexpr/internal/value"
)

// parser walks a fixed token slice with a single cursor; there is no
// backtracking buffer because every construct the grammar needs (groups,
// function args, object chains, Between/In lists) is recognized by a
// bounded lookahead from the current position.
type parser struct {
	toks     []token.Token
	pos      int
	ctx      hostctx.ParseContext
	exprType hostctx.ExprType
}

// Parse tokenizes src under exprType and parses it into an expression
// tree. resultType is the declared result type the host expects back
// (only consulted for DefaultValue's verbatim-string rule). Returns
// (nil, nil) for blank input, matching Tokenize.
func Parse(exprType hostctx.ExprType, src string, resultType value.Kind, ctx hostctx.ParseContext) (ast.Node, error) {
	toks, err := lexer.Tokenize(exprType, src, ctx)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, nil
	}
	if exprType == hostctx.ExprDefaultValue && resultType == value.KindString && isVerbatimDefaultValue(src) {
		return &ast.Constant{Value: value.NewString(src), P: toks[0].Pos}, nil
	}

	p := &parser{toks: stripSpaces(toks), ctx: ctx, exprType: exprType}
	if len(p.toks) == 0 {
		return nil, nil
	}
	// A DefaultValue's leading '=' only marks "this is a formula, not a
	// literal string" — it's not part of the expression itself.
	if exprType == hostctx.ExprDefaultValue && p.cur().Kind == token.Op && p.cur().ValueStr == "=" {
		p.advance()
	}
	node, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, accerr.NewParseError(p.cur().Pos, "unexpected token %q", p.cur().ValueStr)
	}
	return p.finishRoot(node), nil
}

// stripSpaces drops Space tokens; the tokenizer emits them only so the
// DefaultValue verbatim check above can see the raw leading character, a
// decision already made before the parser sees the token slice.
func stripSpaces(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.Space {
			continue
		}
		out = append(out, t)
	}
	return out
}

// isVerbatimDefaultValue reports whether src should be kept as a literal
// string rather than parsed: first non-space character neither '=' nor
// '"'.
func isVerbatimDefaultValue(src string) bool {
	trimmed := strings.TrimLeft(src, " \t\r\n")
	if trimmed == "" {
		return false
	}
	c := trimmed[0]
	return c != '=' && c != '"'
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) errf(format string, args ...any) error {
	return accerr.NewParseError(p.cur().Pos, format, args...)
}

// parseRoot parses the whole expression. Under FieldValidator, a leading
// token that can only be infix (a bare ">", "Between", "Like", ...) has
// no explicit left operand on the page; Access treats that operand as the
// value of the column being validated, so the loop is fed an implicit
// ThisColumnRef instead of going through the usual primary parse.
func (p *parser) parseRoot() (ast.Node, error) {
	if p.exprType == hostctx.ExprFieldValidator && startsPredicate(p.cur(), p.peekAt(1)) {
		left := &ast.ThisColumnRef{P: p.cur().Pos}
		return p.parseInfixLoop(left, precInBetween)
	}
	return p.parseExpr(precInBetween)
}

// finishRoot applies the field-validator implicit-equality rule: a root
// expression that is not already a predicate (comparison, logical
// operator, Is Null, Like, Between, In) gets wrapped as an equality test against the column under
// validation.
func (p *parser) finishRoot(n ast.Node) ast.Node {
	if p.exprType != hostctx.ExprFieldValidator {
		return n
	}
	if isPredicate(n) {
		return n
	}
	return &ast.ImplicitEqToThis{Right: n, P: n.Pos()}
}

// isPredicate reports whether n already evaluates to a boolean test, so
// finishRoot knows not to double-wrap it.
func isPredicate(n ast.Node) bool {
	switch n.(type) {
	case *ast.CompOp, *ast.NullOp, *ast.LikeOp, *ast.InOp, *ast.BetweenOp,
		*ast.LogicalOp:
		return true
	}
	return false
}
