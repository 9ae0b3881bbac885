package serializer

import (
	"fmt"
	"io"
	"strings"

	"github.com/dangerclosesec/ciclo/language/ast"
	"github.com/dangerclosesec/ciclo/language/codegen"
	"github.com/dangerclosesec/ciclo/language/lexer"
	"github.com/dangerclosesec/ciclo/language/optimizer"
	"github.com/dangerclosesec/ciclo/language/semantic"
)

// textSerializer renders a front end result the way the CLI prints it
type textSerializer[T any] struct {
	render func(T) string
}

func (s *textSerializer[T]) Decode(input []byte, output any) error {
	return fmt.Errorf("%T: %w", output, ErrDecodeUnsupported)
}

func (s *textSerializer[T]) Encode(input any, output io.ByteWriter) error {
	v, ok := input.(T)
	if !ok {
		return fmt.Errorf("unexpected model %T", input)
	}
	return writeString(output, s.render(v))
}

func renderTokens(tokens []lexer.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.String())
		sb.WriteByte('\n')
	}

	summary := lexer.Summarize(tokens)
	fmt.Fprintf(&sb, "\nTotal tokens: %d\n", summary.Total)
	if summary.HasErrors() {
		fmt.Fprintf(&sb, "Lexical errors: %d\n", len(summary.Illegal))
		for _, tok := range summary.Illegal {
			fmt.Fprintf(&sb, "  line %d, column %d: invalid token '%s'\n", tok.Line, tok.Column, tok.Literal)
		}
	} else {
		sb.WriteString("No lexical errors found.\n")
	}
	return sb.String()
}

func renderOptimization(result optimizer.Result) string {
	var sb strings.Builder
	for _, line := range result.Log {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if result.Success {
		sb.WriteString("\n")
		sb.WriteString(result.OptimizedCode)
	}
	return sb.String()
}

func renderConversions(conversions []codegen.Conversion) string {
	if len(conversions) == 0 {
		return "No arithmetic expressions found.\n"
	}

	var sb strings.Builder
	for i, c := range conversions {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "Expression: %s\n", c.Expression)
		fmt.Fprintf(&sb, "Prefix: %s\n", c.Prefix)
		sb.WriteString(c.Triplets.TripletsSummary())
		sb.WriteString(c.Quadruples.QuadruplesSummary())
	}
	return sb.String()
}

func init() {
	Register([]lexer.Token{}, &textSerializer[[]lexer.Token]{render: renderTokens})
	Register(&ast.Program{}, &textSerializer[*ast.Program]{render: func(p *ast.Program) string { return ast.Tree(p) }})
	Register(&semantic.Report{}, &textSerializer[*semantic.Report]{render: (*semantic.Report).String})
	Register(optimizer.Result{}, &textSerializer[optimizer.Result]{render: renderOptimization})
	Register([]codegen.Conversion{}, &textSerializer[[]codegen.Conversion]{render: renderConversions})
}
