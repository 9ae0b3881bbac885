// File: ast/ast.go
package ast

import (
	"strings"

	"github.com/dangerclosesec/ciclo/language/lexer"
)

// Node is an element of the syntax tree. The set of implementations is closed;
// traversals switch over the concrete types.
type Node interface {
	String() string
	node()
}

// Program is the root: the ordered top-level items
type Program struct {
	Items []Node
}

// Decl is a simple declaration: name = value
type Decl struct {
	Name  *Identifier
	Value Node
}

// Identifier is a variable, function or constructor reference
type Identifier struct {
	Token lexer.Token
	Name  string
}

// Literal wraps a literal token (number, char, string, boolean)
type Literal struct {
	Token lexer.Token
}

// If is `if Cond then Then else Else`
type If struct {
	Cond Node
	Then Node
	Else Node
}

// Let is `let Name = Bound in Body`
type Let struct {
	Name  *Identifier
	Bound Node
	Body  Node
}

// Apply is function application by juxtaposition. `f a b` is a single Apply
// with two arguments.
type Apply struct {
	Func Node
	Args []Node
}

// BinaryOp is `Left Op Right`
type BinaryOp struct {
	Op    string
	Left  Node
	Right Node
}

// UnaryOp is a prefix operator applied to Operand
type UnaryOp struct {
	Op      string
	Operand Node
}

// List is a bracketed list literal
type List struct {
	Elements []Node
}

// Tuple is a parenthesized tuple. A single parenthesized expression is never
// a Tuple; () is the empty tuple.
type Tuple struct {
	Elements []Node
}

// CycleKind distinguishes the loop forms
type CycleKind int

const (
	CycleWhile CycleKind = iota
	CycleFor
	CycleLoop
)

func (k CycleKind) String() string {
	switch k {
	case CycleWhile:
		return "While"
	case CycleFor:
		return "For"
	case CycleLoop:
		return "Loop"
	}
	return "Unknown"
}

// Cycle is one of the loop constructs. Init and Update are only set for
// CycleFor; any of Init, Cond and Update may be nil.
type Cycle struct {
	Kind    CycleKind
	Keyword lexer.Token // while, for, loop or ciclo
	Init    Node
	Cond    Node
	Update  Node
	Body    []Node
}

func (*Program) node()    {}
func (*Decl) node()       {}
func (*Identifier) node() {}
func (*Literal) node()    {}
func (*If) node()         {}
func (*Let) node()        {}
func (*Apply) node()      {}
func (*BinaryOp) node()   {}
func (*UnaryOp) node()    {}
func (*List) node()       {}
func (*Tuple) node()      {}
func (*Cycle) node()      {}

// CycleKindOf maps a loop keyword to its kind. ciclo is an alias of loop.
func CycleKindOf(keyword string) (CycleKind, bool) {
	switch keyword {
	case "while":
		return CycleWhile, true
	case "for":
		return CycleFor, true
	case "loop", "ciclo":
		return CycleLoop, true
	}
	return 0, false
}

func (p *Program) String() string {
	parts := make([]string, len(p.Items))
	for i, item := range p.Items {
		parts[i] = item.String()
	}
	return strings.Join(parts, "\n")
}

func (d *Decl) String() string {
	return d.Name.Name + " = " + d.Value.String()
}

func (i *Identifier) String() string { return i.Name }

func (l *Literal) String() string { return l.Token.Literal }

func (n *If) String() string {
	return "if " + n.Cond.String() + " then " + n.Then.String() + " else " + n.Else.String()
}

func (n *Let) String() string {
	return "let " + n.Name.Name + " = " + n.Bound.String() + " in " + n.Body.String()
}

func (a *Apply) String() string {
	parts := []string{operand(a.Func)}
	for _, arg := range a.Args {
		parts = append(parts, operand(arg))
	}
	return strings.Join(parts, " ")
}

func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

func (u *UnaryOp) String() string {
	return u.Op + operand(u.Operand)
}

func (l *List) String() string {
	return "[" + joinNodes(l.Elements, ", ") + "]"
}

func (t *Tuple) String() string {
	return "(" + joinNodes(t.Elements, ", ") + ")"
}

func (c *Cycle) String() string {
	var sb strings.Builder
	sb.WriteString(c.Keyword.Literal)
	sb.WriteString(" (")
	if c.Kind == CycleFor {
		sb.WriteString(optional(c.Init))
		sb.WriteString("; ")
		sb.WriteString(optional(c.Cond))
		sb.WriteString("; ")
		sb.WriteString(optional(c.Update))
	} else {
		sb.WriteString(optional(c.Cond))
	}
	sb.WriteString(") { ")
	sb.WriteString(joinNodes(c.Body, "; "))
	if len(c.Body) > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// operand renders n so that it reads as a single application argument
func operand(n Node) string {
	switch n.(type) {
	case *Identifier, *Literal, *List, *Tuple, *BinaryOp:
		return n.String()
	}
	return "(" + n.String() + ")"
}

func optional(n Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}
