package ciclo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/ciclo/language/ast"
	"github.com/dangerclosesec/ciclo/language/codegen"
	"github.com/dangerclosesec/ciclo/language/lexer"
	"github.com/dangerclosesec/ciclo/language/optimizer"
	"github.com/dangerclosesec/ciclo/language/parser"
	"github.com/dangerclosesec/ciclo/language/semantic"
)

// ErrSourceTooLarge is returned when a source exceeds Config.MaxSourceBytes
var ErrSourceTooLarge = errors.New("source too large")

// Frontend runs the language pipeline stages on source text
type Frontend struct {
	cfg *Config
}

// New creates a Frontend. A nil config uses NewConfig defaults.
func New(cfg *Config) *Frontend {
	if cfg == nil {
		cfg = NewConfig(context.Background())
	}
	return &Frontend{cfg: cfg}
}

func (f *Frontend) checkSize(src string) error {
	if f.cfg.MaxSourceBytes > 0 && len(src) > f.cfg.MaxSourceBytes {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrSourceTooLarge, len(src), f.cfg.MaxSourceBytes)
	}
	return nil
}

// Tokenize splits src into tokens and summarizes the lexical errors
func (f *Frontend) Tokenize(src string) ([]lexer.Token, lexer.Summary, error) {
	if err := f.checkSize(src); err != nil {
		return nil, lexer.Summary{}, err
	}

	tokens := lexer.Tokenize(src)
	summary := lexer.Summarize(tokens)
	f.cfg.logger.DebugContext(f.cfg.ctx, "tokenized source",
		"tokens", summary.Total,
		"illegal", len(summary.Illegal),
	)
	return tokens, summary, nil
}

// Parse tokenizes and parses src. Syntax errors come back as *parser.ParseError.
func (f *Frontend) Parse(src string) (*ast.Program, error) {
	if err := f.checkSize(src); err != nil {
		return nil, err
	}

	program, err := parser.ParseSource(src)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			f.cfg.logger.DebugContext(f.cfg.ctx, "parse failed", "errors", len(perr.Errors))
		}
		return nil, err
	}

	f.cfg.logger.DebugContext(f.cfg.ctx, "parsed source", "items", len(program.Items))
	return program, nil
}

// Validate checks the loop constructs of src
func (f *Frontend) Validate(src string) (*semantic.Report, error) {
	if err := f.checkSize(src); err != nil {
		return nil, err
	}

	report := semantic.Validate(lexer.Tokenize(src))
	f.cfg.logger.DebugContext(f.cfg.ctx, "validated cycles",
		"cycles", len(report.Cycles),
		"errors", len(report.Errors()),
		"warnings", len(report.Warnings()),
	)
	return report, nil
}

// Optimize runs the source-level optimizer. An optimizer failure is reported
// in the result, not as an error.
func (f *Frontend) Optimize(src string) (optimizer.Result, error) {
	if err := f.checkSize(src); err != nil {
		return optimizer.Result{}, err
	}

	result := optimizer.Optimize(src)
	f.cfg.logger.DebugContext(f.cfg.ctx, "optimized source",
		"success", result.Success,
		"comments", result.CommentsRemoved,
		"spaces", result.SpacesOptimized,
		"subexpressions", result.SubexpressionsEliminated,
	)
	return result, nil
}

// Convert parses src and converts each arithmetic expression it contains
func (f *Frontend) Convert(src string) ([]codegen.Conversion, error) {
	program, err := f.Parse(src)
	if err != nil {
		return nil, err
	}

	conversions := codegen.NewConverter().ConvertAll(program)
	f.cfg.logger.DebugContext(f.cfg.ctx, "converted expressions", "expressions", len(conversions))
	return conversions, nil
}

// Prefix converts a single infix expression string to prefix notation
func (f *Frontend) Prefix(expression string) (string, error) {
	if err := f.checkSize(expression); err != nil {
		return "", err
	}
	return codegen.ConvertInfixStringToPrefix(expression), nil
}
