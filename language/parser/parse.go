// File: parser/parse.go
package parser

import (
	"fmt"
	"os"

	"github.com/dangerclosesec/ciclo/language/ast"
	"github.com/dangerclosesec/ciclo/language/lexer"
)

// ParseSource tokenizes and parses src. Lexical errors are reported as syntax
// errors ahead of the grammar errors; the invalid tokens themselves are left
// out of the grammar pass so each one is reported once.
func ParseSource(src string) (*ast.Program, error) {
	tokens := lexer.Tokenize(src)

	var lexical []*SyntaxError
	valid := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == lexer.TokenIllegal {
			lexical = append(lexical, newSyntaxError(tok, "invalid token '%s'", tok.Literal))
			continue
		}
		valid = append(valid, tok)
	}

	p := NewParser(valid)
	program := p.ParseProgram()

	if errs := append(lexical, p.Errors()...); len(errs) > 0 {
		return nil, &ParseError{Errors: errs}
	}
	return program, nil
}

// ParseFile reads and parses a source file
func ParseFile(filePath string) (*ast.Program, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return ParseSource(string(content))
}
