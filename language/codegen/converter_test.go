package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangerclosesec/ciclo/language/ast"
	"github.com/dangerclosesec/ciclo/language/parser"
)

func expression(t *testing.T, src string) ast.Node {
	t.Helper()
	program, err := parser.ParseSource("e = " + src + "\n")
	require.NoError(t, err)
	require.Len(t, program.Items, 1)
	decl, ok := program.Items[0].(*ast.Decl)
	require.True(t, ok)
	return decl.Value
}

func TestToPrefix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b", "+ab"},
		{"(a + b) * c", "*+abc"},
		{"a * (b - c)", "*a-bc"},
		{"x", "x"},
		{"42", "42"},
		{"-x + 1", "+-x1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConvertToPrefix(expression(t, tt.input)))
		})
	}
}

func TestToPrefixUnsupported(t *testing.T) {
	assert.Empty(t, ConvertToPrefix(nil))
	assert.Empty(t, ConvertToPrefix(expression(t, "[1, 2]")))
	assert.Empty(t, ConvertToPrefix(expression(t, "if a then b else c")))
}

func TestToTriplets(t *testing.T) {
	result := ConvertToTriplets(expression(t, "(a + b) * (c - d)"))

	require.Len(t, result.Triplets, 3)
	assert.Equal(t, Tuple{Op: "+", Arg1: "a", Arg2: "b", Result: "t1"}, result.Triplets[0])
	assert.Equal(t, Tuple{Op: "-", Arg1: "c", Arg2: "d", Result: "t2"}, result.Triplets[1])
	assert.Equal(t, Tuple{Op: "*", Arg1: "t1", Arg2: "t2", Result: "t3"}, result.Triplets[2])
	assert.Equal(t, "t3", result.FinalResult)
	assert.Empty(t, result.Quadruples)
}

func TestTupleCountMatchesOperators(t *testing.T) {
	inputs := map[string]int{
		"a":                     0,
		"a + b":                 1,
		"a + b * c":             2,
		"(a + b) * (c + d) / e": 4,
	}

	for input, operators := range inputs {
		result := ConvertToQuadruples(expression(t, input))
		assert.Len(t, result.Quadruples, operators, input)
		if operators > 0 {
			assert.Equal(t, result.Quadruples[operators-1].Result, result.FinalResult, input)
		}
	}
}

func TestTerminalResult(t *testing.T) {
	result := ConvertToTriplets(expression(t, "x"))
	assert.Empty(t, result.Triplets)
	assert.Equal(t, "x", result.FinalResult)
}

func TestUnaryTuples(t *testing.T) {
	node := expression(t, "-x * y")

	triplets := ConvertToTriplets(node)
	require.Len(t, triplets.Triplets, 2)
	assert.Equal(t, "(-, x, t1)", triplets.Triplets[0].Triplet())
	assert.Equal(t, "(*, t1, y, t2)", triplets.Triplets[1].Triplet())

	quadruples := ConvertToQuadruples(node)
	assert.Equal(t, "(-, x, -, t1)", quadruples.Quadruples[0].Quadruple())
}

func TestTemporalsContinueUntilReset(t *testing.T) {
	c := NewConverter()
	node := expression(t, "a + b")

	assert.Equal(t, "t1", c.ToTriplets(node).FinalResult)
	assert.Equal(t, "t2", c.ToQuadruples(node).FinalResult)

	c.ResetTemporals()
	assert.Equal(t, "t1", c.ToTriplets(node).FinalResult)
}

func TestNilConversions(t *testing.T) {
	assert.Equal(t, ConversionResult{}, ConvertToTriplets(nil))
	assert.Equal(t, ConversionResult{}, ConvertToQuadruples(nil))
}

func TestSummaries(t *testing.T) {
	result := ConvertToTriplets(expression(t, "a + b * c"))
	assert.Equal(t,
		"=== INTERMEDIATE CODE (TRIPLETS) ===\n1: (+, a, b, t1)\n2: (*, t1, c, t2)\nFinal result: t2\n",
		result.TripletsSummary())

	quads := ConvertToQuadruples(expression(t, "a / 2"))
	assert.Equal(t,
		"=== INTERMEDIATE CODE (QUADRUPLES) ===\n1: (/, a, 2, t1)\nFinal result: t1\n",
		quads.QuadruplesSummary())
}

func TestConvertInfixStringToPrefix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"A+B", "+AB"},
		{"(A+B)*C", "*+ABC"},
		{"A^B^C", "^A^BC"},
		{"A + B * C", "+A*BC"},
		{"A-B-C", "--ABC"},
		{"(A - B) / (C + D)", "/-AB+CD"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConvertInfixStringToPrefix(tt.input))
		})
	}
}

func TestArithmeticSubtrees(t *testing.T) {
	program, err := parser.ParseSource("x = a + b * 2\ny = f (c - d)\nz = if p then q else r\n")
	require.NoError(t, err)

	subtrees := ArithmeticSubtrees(program)
	require.Len(t, subtrees, 2)
	assert.Equal(t, "((a + b) * 2)", subtrees[0].String())
	assert.Equal(t, "(c - d)", subtrees[1].String())
}

func TestConvertAll(t *testing.T) {
	program, err := parser.ParseSource("x = a + b\ny = c * d\n")
	require.NoError(t, err)

	conversions := NewConverter().ConvertAll(program)
	require.Len(t, conversions, 2)

	assert.Equal(t, "+ab", conversions[0].Prefix)
	assert.Equal(t, "*cd", conversions[1].Prefix)
	assert.Equal(t, "t1", conversions[1].Triplets.FinalResult)
	assert.Equal(t, "t1", conversions[1].Quadruples.FinalResult)
}
