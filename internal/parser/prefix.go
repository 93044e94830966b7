package parser

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/accessexpr/accessexpr/internal/ast"
	"github.com/accessexpr/accessexpr/internal/token"
	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/ident"
)

// parsePrefix reads a unary prefix (if any) and its operand, or a primary
// atom when no prefix applies. A sign immediately in front of a numeric
// literal (no intervening token) is folded directly into the literal's
// value rather than wrapped in a UnaryOp, since NEG_NUM/POS_NUM bind
// tighter than every other operator including '^'.
func (p *parser) parsePrefix() (ast.Node, error) {
	t := p.cur()

	if t.Kind == token.Op && (t.ValueStr == "-" || t.ValueStr == "+") {
		if nxt := p.peekAt(1); nxt.Kind == token.Literal && isNumericValueType(nxt.ValType) {
			pos := t.Pos
			p.advance()
			litTok := p.advance()
			val := literalFromToken(litTok)
			if t.ValueStr == "-" {
				val = negateNumeric(val)
			}
			return &ast.Constant{Value: val, P: pos}, nil
		}
		pos := t.Pos
		p.advance()
		operand, err := p.parseExpr(precUnary - 1)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: t.ValueStr, Right: operand, P: pos}, nil
	}

	if t.IsWord("not") {
		pos := t.Pos
		p.advance()
		operand, err := p.parseExpr(precNot - 1)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "Not", Right: operand, P: pos}, nil
	}

	return p.parsePrimary()
}

func isNumericValueType(vt token.ValueType) bool {
	switch vt {
	case token.LongValue, token.DoubleValue, token.BigDecValue:
		return true
	default:
		return false
	}
}

// negateNumeric returns -v for a Long/Double/BigDec value folded from a
// numeric literal token.
func negateNumeric(v value.Value) value.Value {
	switch vv := v.(type) {
	case value.LongValue:
		return value.NewLong(-int32(vv))
	case value.DoubleValue:
		return value.NewDouble(-float64(vv))
	case value.BigDecValue:
		return value.NewBigDec(vv.D.Neg())
	default:
		return v
	}
}

// literalFromToken converts a Literal token's decoded payload into a
// Value, covering every ValueType the tokenizer produces.
func literalFromToken(t token.Token) value.Value {
	switch t.ValType {
	case token.LongValue:
		return value.NewLong(t.Value.(int32))
	case token.DoubleValue:
		return value.NewDouble(t.Value.(float64))
	case token.BigDecValue:
		return value.NewBigDec(t.Value.(decimal.Decimal))
	case token.StringValue:
		return value.NewString(t.Value.(string))
	case token.DateValue:
		return value.NewDate(t.Value.(time.Time))
	case token.TimeValue:
		return value.NewTime(t.Value.(time.Time))
	case token.DateTimeValue:
		return value.NewDateTime(t.Value.(time.Time))
	default:
		return value.NewString(t.ValueStr)
	}
}

func (p *parser) parsePrimary() (ast.Node, error) {
	t := p.cur()
	switch t.Kind {
	case token.Literal:
		p.advance()
		return &ast.Constant{Value: literalFromToken(t), P: t.Pos}, nil
	case token.Delim:
		if t.ValueStr == "(" {
			return p.parseParen()
		}
		return nil, p.errf("unexpected token %q", t.ValueStr)
	case token.ObjName:
		return p.parseObjectRefChain()
	case token.String:
		return p.parseWordPrimary()
	default:
		return nil, p.errf("unexpected end of input")
	}
}

func (p *parser) parseParen() (ast.Node, error) {
	pos := p.cur().Pos
	p.advance() // consume '('
	if p.cur().Kind == token.Delim && p.cur().ValueStr == ")" {
		return nil, p.errf("missing operand inside parentheses")
	}
	child, err := p.parseExpr(precInBetween)
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.Delim || p.cur().ValueStr != ")" {
		return nil, p.errf("unbalanced parentheses")
	}
	p.advance() // consume ')'
	return &ast.Paren{Child: child, P: pos}, nil
}

// parseWordPrimary handles a bare String token: a constant keyword
// (True/False/Null/On/Off/Yes/No), the start of a function call (String
// immediately followed by '('), or the start of an object-reference
// chain.
func (p *parser) parseWordPrimary() (ast.Node, error) {
	t := p.cur()
	if c, ok := constantKeyword(t.ValueStr); ok {
		p.advance()
		return &ast.Constant{Value: c, P: t.Pos}, nil
	}
	if next := p.peekAt(1); next.Kind == token.Delim && next.ValueStr == "(" {
		return p.parseFuncCall()
	}
	return p.parseObjectRefChain()
}

func constantKeyword(word string) (value.Value, bool) {
	switch normalizeOp(word) {
	case "true", "yes", "on":
		return value.True, true
	case "false", "no", "off":
		return value.False, true
	case "null":
		return value.Null, true
	default:
		return nil, false
	}
}

func (p *parser) parseFuncCall() (ast.Node, error) {
	pos := p.cur().Pos
	name := p.advance().ValueStr
	if _, ok := p.ctx.GetFunction(name); !ok {
		return nil, p.errf("unknown function %q", name)
	}
	p.advance() // consume '('
	var args []ast.Node
	if !(p.cur().Kind == token.Delim && p.cur().ValueStr == ")") {
		for {
			arg, err := p.parseExpr(precInBetween)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().Kind == token.Delim && p.cur().ValueStr == "," {
				p.advance()
				continue
			}
			break
		}
	}
	if p.cur().Kind != token.Delim || p.cur().ValueStr != ")" {
		return nil, p.errf("unbalanced parentheses in call to %q", name)
	}
	p.advance()
	return &ast.FuncCall{FuncName: name, Params: args, P: pos}, nil
}

// parseObjectRefChain reads up to three dot/bang-separated name segments
// into a single ObjRef, in source order (outermost first).
func (p *parser) parseObjectRefChain() (ast.Node, error) {
	pos := p.cur().Pos
	var segments []string
	segments = append(segments, p.advance().ValueStr)
	for len(segments) < 3 && p.cur().Kind == token.Delim && (p.cur().ValueStr == "." || p.cur().ValueStr == "!") {
		p.advance()
		if p.cur().Kind != token.ObjName && p.cur().Kind != token.String {
			return nil, p.errf("expected identifier after %q", ".")
		}
		segments = append(segments, p.advance().ValueStr)
	}
	return &ast.ObjRef{ID: ident.NewIdentifier(segments...), P: pos}, nil
}
