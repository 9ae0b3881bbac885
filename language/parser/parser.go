// File: parser/parser.go
package parser

import (
	"github.com/dangerclosesec/ciclo/language/ast"
	"github.com/dangerclosesec/ciclo/language/lexer"
)

// noLayout disables the juxtaposition layout rule inside brackets
const noLayout = -1

// Parser builds an AST from a token sequence by recursive descent with one
// token of lookahead
type Parser struct {
	tokens []lexer.Token
	pos    int
	eof    lexer.Token
	errors []*SyntaxError

	// itemColumn is the column of the first token of the item being parsed.
	// Application stops at a token on a new line at or left of it.
	itemColumn int
}

// NewParser creates a new Parser over tokens
func NewParser(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, itemColumn: noLayout}

	p.eof = lexer.Token{Type: lexer.TokenEOF, Line: 1}
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		p.eof.Line = last.Line
		p.eof.Column = last.Column + len(last.Literal)
		p.eof.Position = last.Position + len(last.Literal)
	}

	return p
}

// Errors returns the syntax errors recorded so far
func (p *Parser) Errors() []*SyntaxError {
	return p.errors
}

// ParseProgram parses a whole program. Every broken top-level item produces
// one syntax error; parsing resumes at the next declaration. If any error was
// recorded the result is a *ParseError listing all of them.
func ParseProgram(tokens []lexer.Token) (*ast.Program, error) {
	p := NewParser(tokens)
	program := p.ParseProgram()
	if len(p.errors) > 0 {
		return nil, &ParseError{Errors: p.errors}
	}
	return program, nil
}

// ParseProgram consumes the whole token stream, recording syntax errors
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.atEnd() {
		if p.curIs(lexer.TokenSymbol, ";") {
			p.nextToken()
			continue
		}

		start := p.pos
		item, err := p.parseTopLevel()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize(start)
			continue
		}
		program.Items = append(program.Items, item)
	}

	return program
}

// synchronize skips ahead to the next declaration start or the end of input,
// always consuming at least one token of the failed item
func (p *Parser) synchronize(start int) {
	if p.pos == start {
		p.nextToken()
	}
	for !p.atEnd() && !p.isDeclStart() {
		p.nextToken()
	}
}

// parseTopLevel parses a declaration or a bare expression
func (p *Parser) parseTopLevel() (ast.Node, *SyntaxError) {
	saved := p.itemColumn
	p.itemColumn = p.cur().Column
	defer func() { p.itemColumn = saved }()

	if p.isDeclStart() {
		return p.parseDecl()
	}
	return p.parseExpression()
}

// parseDecl parses `name = expression`
func (p *Parser) parseDecl() (ast.Node, *SyntaxError) {
	name := p.cur()
	p.nextToken() // name
	p.nextToken() // =

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Decl{
		Name:  &ast.Identifier{Token: name, Name: name.Literal},
		Value: value,
	}, nil
}

// parseStatement parses a loop header part: a declaration or an expression
func (p *Parser) parseStatement() (ast.Node, *SyntaxError) {
	if p.isDeclStart() {
		return p.parseDecl()
	}
	return p.parseExpression()
}

func (p *Parser) cur() lexer.Token {
	return p.tokenAt(p.pos)
}

func (p *Parser) peek() lexer.Token {
	return p.tokenAt(p.pos + 1)
}

func (p *Parser) tokenAt(i int) lexer.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.eof
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) curIs(tt lexer.TokenType, literal string) bool {
	return p.cur().Is(tt, literal)
}

// isDeclStart reports whether the cursor is at `identifier =`
func (p *Parser) isDeclStart() bool {
	return p.cur().Type == lexer.TokenIdent && p.peek().Is(lexer.TokenOperator, "=")
}

// expect consumes the current token if it matches, otherwise returns a syntax
// error naming what was expected and where
func (p *Parser) expect(tt lexer.TokenType, literal, context string) *SyntaxError {
	tok := p.cur()
	if !tok.Is(tt, literal) {
		return newSyntaxError(tok, "expected '%s' %s but found %s", literal, context, describe(tok))
	}
	p.nextToken()
	return nil
}
