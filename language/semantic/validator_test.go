package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangerclosesec/ciclo/language/lexer"
)

func validate(input string) *Report {
	return Validate(lexer.Tokenize(input))
}

func messages(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func TestValidateNoCycles(t *testing.T) {
	report := validate("x = 5\ny = 10\nz = x + y\n")

	assert.Empty(t, report.Cycles)
	assert.Empty(t, report.Diagnostics)

	text := report.String()
	assert.Contains(t, text, "=== CYCLE SEMANTIC ANALYSIS ===")
	assert.Contains(t, text, "Total cycles detected: 0")
	assert.Contains(t, text, "No cycles were detected in the code.")
}

func TestValidateWellFormedWhile(t *testing.T) {
	report := validate("x = 10\nwhile (x > 0) {\n  x = x - 1\n}\n")

	require.Len(t, report.Cycles, 1)
	assert.Equal(t, CycleInfo{Keyword: "while", Line: 2, Position: 7, WellFormed: true}, report.Cycles[0])
	assert.Empty(t, report.Diagnostics)

	text := ValidateCycles(lexer.Tokenize("x = 10\nwhile (x > 0) {\n  x = x - 1\n}\n"))
	assert.Contains(t, text, "Total cycles detected: 1")
	assert.Contains(t, text, "Cycle detected: 'while' at line 2 (position 7)")
	assert.Contains(t, text, "All cycles are well formed.")
}

func TestValidateForArity(t *testing.T) {
	report := validate("for i = 0; i < 10 { x = x + 1 }")

	require.Len(t, report.Cycles, 1)
	assert.False(t, report.Cycles[0].WellFormed)

	errs := report.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "cycle 'for' is missing '(' to open its condition", errs[0].Message)
	assert.Equal(t, "found 1 ';' in the 'for' header, fewer than 2 (expected init; condition; update)", errs[1].Message)
	assert.Equal(t, 1, errs[1].Line)
}

func TestValidateForArityOnLaterLine(t *testing.T) {
	report := validate("x = 0\n\nfor (i = 0; i < 3; i = i + 1; j) { x = 1 }")

	errs := report.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, 3, errs[0].Line)
	assert.Contains(t, errs[0].Message, "found 3 ';'")
	assert.Contains(t, errs[0].Message, "more than 2")
}

func TestValidateStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		line     int
	}{
		{"missing open paren", "while x > 0 { y = x }", "cycle 'while' is missing '(' to open its condition", 1},
		{"missing close paren", "while (x > 0 { x = 1 }", "cycle 'while' is missing ')' to close its condition", 1},
		{"missing open brace", "y = 1\nloop (y > 0)\n  y = y - 1\n", "cycle 'loop' is missing '{' to open its body", 2},
		{"missing close brace", "ciclo (True) {\n  step\n", "cycle 'ciclo' is missing '}' to close its body", 1},
		{"empty condition", "while () { x = 1 }", "cycle 'while' has an empty condition", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := validate(tt.input)
			errs := report.Errors()
			require.Len(t, errs, 1, "diagnostics: %v", report.Diagnostics)
			assert.Equal(t, tt.expected, errs[0].Message)
			assert.Equal(t, tt.line, errs[0].Line)
			require.Len(t, report.Cycles, 1)
			assert.False(t, report.Cycles[0].WellFormed)
		})
	}
}

func TestValidateOperandTypes(t *testing.T) {
	input := `name = "bob"
flag = True
n = 3
while (name > n && flag) {
  n = "three"
}
`
	report := validate(input)

	assert.Equal(t, []string{
		"operator '>' requires numeric operands: 'name' is string, 'n' is numeric",
		"operator '&&' requires boolean operands: 'n' is numeric, 'flag' is boolean",
		"variable 'n' holds numeric values but is assigned a string value",
	}, messages(report.Errors()))

	errs := report.Errors()
	assert.Equal(t, 4, errs[0].Line)
	assert.Equal(t, 5, errs[2].Line)

	// type errors do not make the structure invalid
	assert.True(t, report.Cycles[0].WellFormed)
}

func TestValidateEquality(t *testing.T) {
	report := validate("c = 'a'\ns = \"a\"\nn = 1\nwhile (c == s) { x = 1 }\nwhile (n /= s) { x = 2 }")

	assert.Equal(t, []string{
		"operator '/=' compares incompatible types: 'n' is numeric, 's' is string",
	}, messages(report.Errors()))
}

func TestValidateArithmeticMixing(t *testing.T) {
	report := validate("n = 1\ns = \"x\"\nfor (i = 0; i < n; i = i + 1) { t = n + s }")

	assert.Equal(t, []string{
		"operator '+' mixes numeric and string operands: 'n' is numeric, 's' is string",
	}, messages(report.Errors()))
}

func TestValidateUnknownTypesAreSkipped(t *testing.T) {
	report := validate("while (a > b && c) { d = e + f }")
	assert.Empty(t, report.Diagnostics)
}

func TestValidateUnaryMinus(t *testing.T) {
	report := validate("x = -5\nwhile (x < -1) { x = x + 1 }")
	assert.Empty(t, report.Diagnostics)
}

func TestValidateWarnings(t *testing.T) {
	report := validate("for (;;) { x = 1 }\nwhile (True) {}")

	assert.Empty(t, report.Errors())
	assert.Equal(t, []string{
		"cycle 'for' has no condition and never stops on its own",
		"cycle 'while' has an empty body",
	}, messages(report.Warnings()))

	text := report.String()
	assert.NotContains(t, text, "--- SEMANTIC ERRORS ---")
	assert.Contains(t, text, "--- WARNINGS ---\n1. WARNING (line 1): cycle 'for' has no condition and never stops on its own\n2. WARNING (line 2): cycle 'while' has an empty body\n")
}

func TestReportSeparatesErrorsAndWarnings(t *testing.T) {
	report := validate("while x > 0 { }")

	require.Len(t, report.Errors(), 1)
	require.Len(t, report.Warnings(), 1)

	text := report.String()
	assert.Contains(t, text, "--- SEMANTIC ERRORS ---\n1. ERROR (line 1): cycle 'while' is missing '(' to open its condition\n\n--- WARNINGS ---\n1. WARNING (line 1): cycle 'while' has an empty body\n")
}

func TestValidateNegationStaysInRegion(t *testing.T) {
	report := validate("s = \"a\"\nwhile s > -\n5")

	for _, d := range report.Errors() {
		assert.NotContains(t, d.Message, "operator '>'")
	}
	assert.Equal(t, []string{
		"cycle 'while' is missing '(' to open its condition",
		"cycle 'while' is missing '{' to open its body",
	}, messages(report.Errors()))
}

func TestValidateNestedCyclesReportOnce(t *testing.T) {
	input := "s = \"a\"\nfor (i = 0; i < 3; i = i + 1) {\n  while (s > 1) { }\n}"
	report := validate(input)

	assert.Len(t, report.Cycles, 2)
	require.Len(t, report.Errors(), 1)
	assert.Equal(t, 3, report.Errors()[0].Line)
	require.Len(t, report.Warnings(), 1)
	assert.Equal(t, "cycle 'while' has an empty body", report.Warnings()[0].Message)
}

func TestValidateDoesNotShareBindings(t *testing.T) {
	first := validate("x = \"s\"\nwhile (x > 1) { y = 1 }")
	assert.Len(t, first.Errors(), 1)

	second := validate("x = 1\nwhile (x > 1) { x = 2 }")
	assert.Empty(t, second.Errors())
}

func TestTypeEnv(t *testing.T) {
	env := TypeEnv{}
	env.Bind("a", TypeNumeric)
	env.Bind("a", TypeString)
	env.Bind("b", TypeUnknown)

	assert.Equal(t, TypeNumeric, env.Lookup("a"))
	assert.Equal(t, TypeUnknown, env.Lookup("b"))
	assert.Equal(t, TypeChar, env.TypeOf(lexer.Token{Type: lexer.TokenChar, Literal: "'x'"}))
	assert.Equal(t, TypeNumeric, env.TypeOf(lexer.Token{Type: lexer.TokenIdent, Literal: "a"}))
	assert.Equal(t, TypeUnknown, env.TypeOf(lexer.Token{Type: lexer.TokenIdent, Literal: "zzz"}))
	assert.Equal(t, TypeNumeric, env.TypeOf(lexer.Token{Type: lexer.TokenIllegal, Literal: "42"}))

	assert.True(t, compatible(TypeChar, TypeString))
	assert.False(t, compatible(TypeNumeric, TypeBoolean))
}
