package parser

import (
	"strings"

	"github.com/accessexpr/accessexpr/internal/ast"
	"github.com/accessexpr/accessexpr/internal/token"
)

// finishIsNull parses the tail of "Is Null" / "Is Not Null" after the
// leading "Is" has already been consumed.
func (p *parser) finishIsNull(left ast.Node, pos token.Position) (ast.Node, error) {
	negate := false
	if p.cur().IsWord("not") {
		negate = true
		p.advance()
	}
	if !p.cur().IsWord("null") {
		return nil, p.errf("expected \"Null\" after \"Is%s\"", notSuffix(negate))
	}
	p.advance()
	op := "IsNull"
	if negate {
		op = "IsNotNull"
	}
	return &ast.NullOp{Op: op, Expr: left, P: pos}, nil
}

func notSuffix(negate bool) string {
	if negate {
		return " Not"
	}
	return ""
}

// finishLike parses the tail of "[Not] Like <pattern>". The pattern must
// be a quoted or bare string literal; Like against a computed expression
// is not part of the grammar.
func (p *parser) finishLike(left ast.Node, negate bool, pos token.Position) (ast.Node, error) {
	t := p.cur()
	if t.Kind != token.Literal && t.Kind != token.String {
		return nil, p.errf("expected a pattern string after \"Like\"")
	}
	p.advance()
	pattern := t.ValueStr
	return &ast.LikeOp{Expr: left, PatternStr: pattern, Negate: negate, P: pos}, nil
}

// finishBetween parses "[Not] Between start And end". Both operands are
// parsed stopping short of any logical connective (And/Or/Xor/Eqv/Imp):
// the literal "And" separating start from end would otherwise be
// ambiguous with the logical And operator, and an operand like "Or y"
// trailing the end expression belongs to whatever wraps this Between,
// not to the Between itself.
func (p *parser) finishBetween(left ast.Node, negate bool, pos token.Position) (ast.Node, error) {
	start, err := p.parseExpr(precAnd - 1)
	if err != nil {
		return nil, err
	}
	if !p.cur().IsWord("and") {
		return nil, p.errf("expected \"And\" in Between expression")
	}
	p.advance()
	end, err := p.parseExpr(precAnd - 1)
	if err != nil {
		return nil, err
	}
	return &ast.BetweenOp{Expr: left, Start: start, End: end, Negate: negate, P: pos}, nil
}

// finishIn parses "[Not] In (expr, expr, ...)".
func (p *parser) finishIn(left ast.Node, negate bool, pos token.Position) (ast.Node, error) {
	if p.cur().Kind != token.Delim || p.cur().ValueStr != "(" {
		return nil, p.errf("expected \"(\" after \"In\"")
	}
	p.advance()
	var items []ast.Node
	if !(p.cur().Kind == token.Delim && p.cur().ValueStr == ")") {
		for {
			item, err := p.parseExpr(precInBetween)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.cur().Kind == token.Delim && p.cur().ValueStr == "," {
				p.advance()
				continue
			}
			break
		}
	}
	if p.cur().Kind != token.Delim || p.cur().ValueStr != ")" {
		return nil, p.errf("unbalanced parentheses in In list")
	}
	p.advance()
	return &ast.InOp{Expr: left, Exprs: items, Negate: negate, P: pos}, nil
}

// finishNotCompound dispatches "Not Like"/"Not Between"/"Not In", already
// positioned just past the "Not" keyword.
func (p *parser) finishNotCompound(left ast.Node, pos token.Position) (ast.Node, error) {
	switch {
	case p.cur().IsWord("like"):
		p.advance()
		return p.finishLike(left, true, pos)
	case p.cur().IsWord("between"):
		p.advance()
		return p.finishBetween(left, true, pos)
	case p.cur().IsWord("in"):
		p.advance()
		return p.finishIn(left, true, pos)
	default:
		return nil, p.errf("expected \"Like\", \"Between\", or \"In\" after \"Not\"")
	}
}

// startsPredicate reports whether t can only appear in infix position
// (comparison/Like/Between/In/Is, or a Not immediately leading one of
// those): the field-validator grammar uses this to recognize a root
// expression with no explicit left operand.
func startsPredicate(t token.Token, next token.Token) bool {
	if t.Kind != token.Op && t.Kind != token.String {
		return false
	}
	switch strings.ToLower(t.ValueStr) {
	case "<", "<=", ">", ">=", "=", "<>", "like", "between", "in", "is":
		return true
	case "not":
		return next.IsWord("like") || next.IsWord("between") || next.IsWord("in")
	default:
		return false
	}
}
