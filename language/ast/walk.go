// File: ast/walk.go
package ast

import (
	"fmt"
	"strings"
)

// Children returns the direct children of n in source order. Nil optional
// parts of a Cycle are skipped.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Program:
		return n.Items
	case *Decl:
		return []Node{n.Name, n.Value}
	case *If:
		return []Node{n.Cond, n.Then, n.Else}
	case *Let:
		return []Node{n.Name, n.Bound, n.Body}
	case *Apply:
		return append([]Node{n.Func}, n.Args...)
	case *BinaryOp:
		return []Node{n.Left, n.Right}
	case *UnaryOp:
		return []Node{n.Operand}
	case *List:
		return n.Elements
	case *Tuple:
		return n.Elements
	case *Cycle:
		var children []Node
		for _, part := range []Node{n.Init, n.Cond, n.Update} {
			if part != nil {
				children = append(children, part)
			}
		}
		return append(children, n.Body...)
	}
	return nil
}

// Inspect traverses the tree depth-first in pre-order. If f returns false the
// children of that node are not visited.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Tree renders n as an indented outline, two spaces per level
func Tree(n Node) string {
	var sb strings.Builder
	writeTree(&sb, n, 0)
	return sb.String()
}

func writeTree(sb *strings.Builder, n Node, depth int) {
	line := func(d int, format string, args ...any) {
		sb.WriteString(strings.Repeat("  ", d))
		fmt.Fprintf(sb, format, args...)
		sb.WriteByte('\n')
	}

	switch n := n.(type) {
	case nil:
		line(depth, "<empty>")
	case *Program:
		line(depth, "Program")
		for _, item := range n.Items {
			writeTree(sb, item, depth+1)
		}
	case *Decl:
		line(depth, "Decl: %s", n.Name.Name)
		writeTree(sb, n.Value, depth+1)
	case *Identifier:
		line(depth, "Ident: %s", n.Name)
	case *Literal:
		line(depth, "Literal(%s): %s", n.Token.Type, n.Token.Literal)
	case *If:
		line(depth, "If")
		writeTree(sb, n.Cond, depth+1)
		line(depth+1, "Then")
		writeTree(sb, n.Then, depth+2)
		line(depth+1, "Else")
		writeTree(sb, n.Else, depth+2)
	case *Let:
		line(depth, "Let %s", n.Name.Name)
		writeTree(sb, n.Bound, depth+1)
		line(depth+1, "In")
		writeTree(sb, n.Body, depth+2)
	case *Apply:
		line(depth, "Apply")
		writeTree(sb, n.Func, depth+1)
		for _, arg := range n.Args {
			writeTree(sb, arg, depth+1)
		}
	case *BinaryOp:
		line(depth, "BinaryOp(%s)", n.Op)
		writeTree(sb, n.Left, depth+1)
		writeTree(sb, n.Right, depth+1)
	case *UnaryOp:
		line(depth, "UnaryOp(%s)", n.Op)
		writeTree(sb, n.Operand, depth+1)
	case *List:
		line(depth, "List")
		for _, e := range n.Elements {
			writeTree(sb, e, depth+1)
		}
	case *Tuple:
		line(depth, "Tuple")
		for _, e := range n.Elements {
			writeTree(sb, e, depth+1)
		}
	case *Cycle:
		line(depth, "Cycle(%s): %s", n.Kind, n.Keyword.Literal)
		if n.Kind == CycleFor {
			writeSection(sb, "Init", n.Init, depth+1)
		}
		writeSection(sb, "Cond", n.Cond, depth+1)
		if n.Kind == CycleFor {
			writeSection(sb, "Update", n.Update, depth+1)
		}
		line(depth+1, "Body")
		for _, stmt := range n.Body {
			writeTree(sb, stmt, depth+2)
		}
	default:
		line(depth, "%T", n)
	}
}

func writeSection(sb *strings.Builder, name string, n Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(name)
	sb.WriteByte('\n')
	if n != nil {
		writeTree(sb, n, depth+1)
	}
}
