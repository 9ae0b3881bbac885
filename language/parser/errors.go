// File: parser/errors.go
package parser

import (
	"fmt"
	"strings"

	"github.com/dangerclosesec/ciclo/language/lexer"
)

// SyntaxError is a single grammar violation
type SyntaxError struct {
	Message string
	Line    int
	Column  int
	// AtEOF is set when the parser ran out of tokens
	AtEOF bool
}

func newSyntaxError(tok lexer.Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
		AtEOF:   tok.Type == lexer.TokenEOF,
	}
}

func (e *SyntaxError) Error() string {
	if e.AtEOF {
		return fmt.Sprintf("%s after line %d", e.Message, e.Line)
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
}

// ParseError carries every syntax error found while parsing a program
type ParseError struct {
	Errors []*SyntaxError
}

// Error lists the syntax errors one per line, numbered from 1
func (e *ParseError) Error() string {
	var sb strings.Builder
	for i, se := range e.Errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, se.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual syntax errors to errors.As
func (e *ParseError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, se := range e.Errors {
		errs[i] = se
	}
	return errs
}

func describe(tok lexer.Token) string {
	if tok.Type == lexer.TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}
