package ast

import "github.com/accessexpr/accessexpr/pkg/ident"

// Children returns the direct child nodes of n, or nil for leaves. Used by
// IsConstant and CollectIdentifiers to walk the tree generically, driving
// traversal from a single Children() table rather than implementing a
// visitor interface on every node type.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Paren:
		return []Node{v.Child}
	case *FuncCall:
		return v.Params
	case *UnaryOp:
		return []Node{v.Right}
	case *BinaryOp:
		return []Node{v.Left, v.Right}
	case *CompOp:
		return []Node{v.Left, v.Right}
	case *ImplicitEqToThis:
		return []Node{v.Right}
	case *LogicalOp:
		return []Node{v.Left, v.Right}
	case *NullOp:
		return []Node{v.Expr}
	case *LikeOp:
		return []Node{v.Expr}
	case *InOp:
		children := make([]Node, 0, len(v.Exprs)+1)
		children = append(children, v.Expr)
		children = append(children, v.Exprs...)
		return children
	case *BetweenOp:
		return []Node{v.Expr, v.Start, v.End}
	default:
		return nil
	}
}

// IsConstant reports whether n's value never depends on host state: no
// ObjRef, no ThisColumnRef, and no call to an impure function. funcPure
// reports whether the named function is pure.
func IsConstant(n Node, funcPure func(name string) bool) bool {
	switch v := n.(type) {
	case *Constant, *Literal:
		return true
	case *ObjRef, *ThisColumnRef:
		return false
	case *FuncCall:
		if !funcPure(v.FuncName) {
			return false
		}
	}
	for _, child := range Children(n) {
		if !IsConstant(child, funcPure) {
			return false
		}
	}
	return true
}

// CollectIdentifiers appends every ObjRef identifier reachable from n into out.
func CollectIdentifiers(n Node, out *[]ident.Identifier) {
	if o, ok := n.(*ObjRef); ok {
		*out = append(*out, o.ID)
	}
	for _, child := range Children(n) {
		CollectIdentifiers(child, out)
	}
}
