package ast

import (
	"fmt"
	"strings"

	"github.com/accessexpr/accessexpr/internal/value"
)

// Print renders n back to Access expression source text. debug adds a
// parenthesization around every binary/logical/comparison operator so the
// tree shape the parser's precedence rotation produced is visible.
func Print(n Node, debug bool) string {
	var b strings.Builder
	printNode(&b, n, debug)
	return b.String()
}

func printNode(b *strings.Builder, n Node, debug bool) {
	switch v := n.(type) {
	case *Constant:
		b.WriteString(value.Literal(v.Value))
	case *Literal:
		b.WriteString(value.Literal(v.Val))
	case *ThisColumnRef:
		b.WriteString("<this>")
	case *ObjRef:
		b.WriteString(v.ID.String())
	case *Paren:
		b.WriteByte('(')
		printNode(b, v.Child, debug)
		b.WriteByte(')')
	case *FuncCall:
		b.WriteString(v.FuncName)
		b.WriteByte('(')
		for i, p := range v.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			printNode(b, p, debug)
		}
		b.WriteByte(')')
	case *UnaryOp:
		if v.Op == "Not" {
			b.WriteString("Not ")
		} else {
			b.WriteString(v.Op)
		}
		wrap(b, v.Right, debug)
	case *BinaryOp:
		binary(b, v.Left, v.Op, v.Right, debug)
	case *CompOp:
		binary(b, v.Left, v.Op, v.Right, debug)
	case *ImplicitEqToThis:
		b.WriteString("<this> = ")
		wrap(b, v.Right, debug)
	case *LogicalOp:
		binary(b, v.Left, v.Op, v.Right, debug)
	case *NullOp:
		wrap(b, v.Expr, debug)
		if v.Op == "IsNotNull" {
			b.WriteString(" Is Not Null")
		} else {
			b.WriteString(" Is Null")
		}
	case *LikeOp:
		wrap(b, v.Expr, debug)
		if v.Negate {
			b.WriteString(" Not Like ")
		} else {
			b.WriteString(" Like ")
		}
		fmt.Fprintf(b, "%q", v.PatternStr)
	case *InOp:
		wrap(b, v.Expr, debug)
		if v.Negate {
			b.WriteString(" Not In (")
		} else {
			b.WriteString(" In (")
		}
		for i, e := range v.Exprs {
			if i > 0 {
				b.WriteString(", ")
			}
			printNode(b, e, debug)
		}
		b.WriteByte(')')
	case *BetweenOp:
		wrap(b, v.Expr, debug)
		if v.Negate {
			b.WriteString(" Not Between ")
		} else {
			b.WriteString(" Between ")
		}
		printNode(b, v.Start, debug)
		b.WriteString(" And ")
		printNode(b, v.End, debug)
	default:
		b.WriteString("<?>")
	}
}

func binary(b *strings.Builder, left Node, op string, right Node, debug bool) {
	if debug {
		b.WriteByte('(')
	}
	printNode(b, left, debug)
	b.WriteByte(' ')
	b.WriteString(op)
	b.WriteByte(' ')
	printNode(b, right, debug)
	if debug {
		b.WriteByte(')')
	}
}

func wrap(b *strings.Builder, n Node, debug bool) {
	if debug {
		b.WriteByte('(')
		printNode(b, n, debug)
		b.WriteByte(')')
		return
	}
	printNode(b, n, debug)
}
