package ast

import (
	"reflect"
	"slices"
)

// Locate returns every node of one of the given kinds in the tree rooted at
// root. A matching node is returned as is; its own children are not searched.
// Locate returns nil, never an empty slice, when nothing matches.
func Locate(root *Node, kinds ...Kind) []*Node {
	if root == nil || root.Start < 0 {
		return nil
	}
	if slices.Contains(kinds, root.Kind) {
		return []*Node{root}
	}
	return LocateIn(root.children(), kinds...)
}

// LocateIn applies Locate to every node of a sequence and flattens the result.
func LocateIn(nodes []*Node, kinds ...Kind) []*Node {
	var found []*Node
	for _, n := range nodes {
		found = append(found, Locate(n, kinds...)...)
	}
	return found
}

// Follow is a narrower search than Locate. Instead of visiting every child it
// descends into the first present property out of right, body, expression,
// callee, declarations and an export's declaration, which keeps it on
// assignment and wrapper chains such as an immediately invoked module
// function.
func Follow(root *Node, kinds ...Kind) []*Node {
	if root == nil {
		return nil
	}
	if slices.Contains(kinds, root.Kind) {
		return []*Node{root}
	}

	switch {
	case root.Right != nil:
		return Follow(root.Right, kinds...)
	case len(root.Body) > 0:
		return followIn(root.Body, kinds...)
	case root.Expression != nil:
		return Follow(root.Expression, kinds...)
	case root.Callee != nil:
		return Follow(root.Callee, kinds...)
	case len(root.Declarations) > 0:
		return followIn(root.Declarations, kinds...)
	case root.Declaration != nil:
		return Follow(root.Declaration, kinds...)
	}
	return nil
}

func followIn(nodes []*Node, kinds ...Kind) []*Node {
	var found []*Node
	for _, n := range nodes {
		found = append(found, Follow(n, kinds...)...)
	}
	return found
}

// children lists the child nodes of n in source order.
func (n *Node) children() []*Node {
	switch n.Kind {
	case KindProgram, KindBlockStatement:
		return n.Body
	case KindClassDeclaration, KindClassExpression:
		return join([]*Node{n.ID, n.SuperClass}, n.Body)
	case KindMethodDefinition:
		return join([]*Node{n.Key}, n.Params, n.Body)
	case KindFunctionExpression:
		return join([]*Node{n.ID}, n.Params, n.Body)
	case KindRestElement:
		return join([]*Node{n.Argument})
	case KindAssignmentPattern, KindAssignmentExpression:
		return join([]*Node{n.Left, n.Right})
	case KindVariableDeclaration:
		return n.Declarations
	case KindVariableDeclarator:
		return join([]*Node{n.ID, n.Init})
	case KindCallExpression:
		return join([]*Node{n.Callee}, n.Arguments)
	case KindExpressionStatement, KindParenthesizedExpression:
		return join([]*Node{n.Expression})
	case KindExportDeclaration:
		return join([]*Node{n.Declaration})
	case KindImportDeclaration:
		return join(n.Specifiers, []*Node{n.Source})
	case KindIdentifier, KindLiteral:
		return nil
	}
	return reflectChildren(n)
}

var (
	nodePtrType   = reflect.TypeOf((*Node)(nil))
	nodeSliceType = reflect.TypeOf([]*Node(nil))
)

// reflectChildren enumerates every node-valued field of n. It is the
// fallback for kinds without a dedicated case above.
func reflectChildren(n *Node) []*Node {
	var out []*Node
	v := reflect.ValueOf(n).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		switch f.Type() {
		case nodePtrType:
			if !f.IsNil() {
				out = append(out, f.Interface().(*Node))
			}
		case nodeSliceType:
			for _, c := range f.Interface().([]*Node) {
				if c != nil {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

func join(groups ...[]*Node) []*Node {
	var out []*Node
	for _, g := range groups {
		for _, n := range g {
			if n != nil {
				out = append(out, n)
			}
		}
	}
	return out
}
