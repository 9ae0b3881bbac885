// File: codegen/subtrees.go
package codegen

import "github.com/dangerclosesec/ciclo/language/ast"

var arithmeticOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "^": true,
}

// Conversion is the full output for one arithmetic expression
type Conversion struct {
	Expression string
	Prefix     string
	Triplets   ConversionResult
	Quadruples ConversionResult
}

// ArithmeticSubtrees returns the maximal subtrees of root made only of
// arithmetic operators over identifiers, literals and negations, in source
// order
func ArithmeticSubtrees(root ast.Node) []*ast.BinaryOp {
	var found []*ast.BinaryOp
	ast.Inspect(root, func(n ast.Node) bool {
		if op, ok := n.(*ast.BinaryOp); ok && isArithmetic(op) {
			found = append(found, op)
			return false
		}
		return true
	})
	return found
}

func isArithmetic(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.BinaryOp:
		return arithmeticOperators[n.Op] && isArithmetic(n.Left) && isArithmetic(n.Right)
	case *ast.UnaryOp:
		return n.Op == "-" && isArithmetic(n.Operand)
	case *ast.Identifier, *ast.Literal:
		return true
	}
	return false
}

// ConvertAll converts every arithmetic subtree of root. Temporaries restart
// at t1 for each expression.
func (c *Converter) ConvertAll(root ast.Node) []Conversion {
	subtrees := ArithmeticSubtrees(root)
	conversions := make([]Conversion, 0, len(subtrees))
	for _, expr := range subtrees {
		conv := Conversion{Expression: expr.String(), Prefix: c.ToPrefix(expr)}
		c.ResetTemporals()
		conv.Triplets = c.ToTriplets(expr)
		c.ResetTemporals()
		conv.Quadruples = c.ToQuadruples(expr)
		conversions = append(conversions, conv)
	}
	return conversions
}
