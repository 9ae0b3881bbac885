// File: codegen/converter.go
package codegen

import (
	"fmt"

	"github.com/dangerclosesec/ciclo/language/ast"
)

// Converter turns expression trees into prefix notation and three-address
// code. Temporaries are named t1, t2, ... and keep counting across
// conversions until ResetTemporals is called.
type Converter struct {
	counter int
}

// NewConverter creates a new Converter
func NewConverter() *Converter {
	return &Converter{}
}

// ResetTemporals restarts temporary numbering at t1
func (c *Converter) ResetTemporals() {
	c.counter = 0
}

func (c *Converter) nextTemporal() string {
	c.counter++
	return fmt.Sprintf("t%d", c.counter)
}

// supported reports whether node can be the root of a conversion
func supported(node ast.Node) bool {
	switch node.(type) {
	case *ast.BinaryOp, *ast.UnaryOp, *ast.Identifier, *ast.Literal:
		return true
	}
	return false
}

// ToPrefix renders node in prefix notation without separators or
// parentheses: a + b * c parsed as (a + b) * c gives *+abc. Nil and
// unsupported nodes give "".
func (c *Converter) ToPrefix(node ast.Node) string {
	if node == nil || !supported(node) {
		return ""
	}
	return prefix(node)
}

func prefix(node ast.Node) string {
	switch n := node.(type) {
	case *ast.BinaryOp:
		return n.Op + prefix(n.Left) + prefix(n.Right)
	case *ast.UnaryOp:
		return n.Op + prefix(n.Operand)
	}
	return terminal(node)
}

// terminal renders a leaf operand. Subtrees the converter does not descend
// into, such as applications, are treated as opaque operands.
func terminal(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.Literal:
		return n.Token.Literal
	}
	return node.String()
}

// ToTriplets generates the triplets for node
func (c *Converter) ToTriplets(node ast.Node) ConversionResult {
	if node == nil || !supported(node) {
		return ConversionResult{}
	}
	var tuples []Tuple
	final := c.emit(node, &tuples)
	return ConversionResult{Triplets: tuples, FinalResult: final}
}

// ToQuadruples generates the quadruples for node
func (c *Converter) ToQuadruples(node ast.Node) ConversionResult {
	if node == nil || !supported(node) {
		return ConversionResult{}
	}
	var tuples []Tuple
	final := c.emit(node, &tuples)
	return ConversionResult{Quadruples: tuples, FinalResult: final}
}

// emit walks node in post-order, appending one tuple per operator, and
// returns the name holding the value of node
func (c *Converter) emit(node ast.Node, tuples *[]Tuple) string {
	switch n := node.(type) {
	case *ast.BinaryOp:
		left := c.emit(n.Left, tuples)
		right := c.emit(n.Right, tuples)
		result := c.nextTemporal()
		*tuples = append(*tuples, Tuple{Op: n.Op, Arg1: left, Arg2: right, Result: result})
		return result
	case *ast.UnaryOp:
		operand := c.emit(n.Operand, tuples)
		result := c.nextTemporal()
		*tuples = append(*tuples, Tuple{Op: n.Op, Arg1: operand, Result: result})
		return result
	}
	return terminal(node)
}

// ConvertToPrefix converts node with a fresh converter
func ConvertToPrefix(node ast.Node) string {
	return NewConverter().ToPrefix(node)
}

// ConvertToTriplets converts node with a fresh converter
func ConvertToTriplets(node ast.Node) ConversionResult {
	return NewConverter().ToTriplets(node)
}

// ConvertToQuadruples converts node with a fresh converter
func ConvertToQuadruples(node ast.Node) ConversionResult {
	return NewConverter().ToQuadruples(node)
}
