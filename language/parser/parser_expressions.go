// File: parser/parser_expressions.go
package parser

import (
	"unicode"

	"github.com/dangerclosesec/ciclo/language/ast"
	"github.com/dangerclosesec/ciclo/language/lexer"
)

// parseExpression parses if, let and loop forms, or falls through to a flat
// chain of binary operators
func (p *Parser) parseExpression() (ast.Node, *SyntaxError) {
	tok := p.cur()
	switch {
	case tok.Is(lexer.TokenKeyword, "if"):
		return p.parseIf()
	case tok.Is(lexer.TokenKeyword, "let"):
		return p.parseLet()
	case lexer.IsLoopKeyword(tok):
		return p.parseCycle()
	}
	return p.parseBinary()
}

// parseBinary parses `unary (op unary)*`. All operators share one precedence
// level and associate to the left; '=' is never a binary operator.
func (p *Parser) parseBinary() (ast.Node, *SyntaxError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.cur().Type == lexer.TokenOperator && p.cur().Literal != "=" {
		op := p.cur().Literal
		p.nextToken()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseUnary() (ast.Node, *SyntaxError) {
	if p.curIs(lexer.TokenOperator, "-") {
		p.nextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "-", Operand: operand}, nil
	}
	return p.parseApplication()
}

// parseApplication parses left-associative juxtaposition: f a b
func (p *Parser) parseApplication() (ast.Node, *SyntaxError) {
	fn, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	var args []ast.Node
	for p.continuesApplication() {
		arg, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	if len(args) == 0 {
		return fn, nil
	}
	return &ast.Apply{Func: fn, Args: args}, nil
}

// continuesApplication reports whether the current token is another argument
// of the application being parsed
func (p *Parser) continuesApplication() bool {
	tok := p.cur()
	if !startsPrimary(tok) || p.isDeclStart() {
		return false
	}
	if p.itemColumn != noLayout && p.pos > 0 {
		prev := p.tokens[p.pos-1]
		if tok.Line > prev.Line && tok.Column <= p.itemColumn {
			return false
		}
	}
	return true
}

func startsPrimary(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.TokenIdent, lexer.TokenTypeIdent, lexer.TokenTupleOpen, lexer.TokenListOpen:
		return true
	case lexer.TokenKeyword:
		return isTypeName(tok.Literal)
	}
	return tok.Type.IsLiteral()
}

// isTypeName reports builtin type keywords (Int, Bool, ...), which are
// usable as constructor references in expressions
func isTypeName(s string) bool {
	return s != "" && unicode.IsUpper(rune(s[0]))
}

func (p *Parser) parsePrimary() (ast.Node, *SyntaxError) {
	tok := p.cur()

	switch {
	case tok.Type.IsLiteral():
		p.nextToken()
		return &ast.Literal{Token: tok}, nil
	case tok.Type == lexer.TokenIdent, tok.Type == lexer.TokenTypeIdent,
		tok.Type == lexer.TokenKeyword && isTypeName(tok.Literal):
		p.nextToken()
		return &ast.Identifier{Token: tok, Name: tok.Literal}, nil
	case tok.Type == lexer.TokenTupleOpen:
		return p.parseParenthesized()
	case tok.Type == lexer.TokenListOpen:
		return p.parseList()
	case tok.Type == lexer.TokenEOF:
		return nil, newSyntaxError(tok, "unexpected end of input, expected an expression")
	case tok.Type == lexer.TokenIllegal:
		return nil, newSyntaxError(tok, "invalid token '%s'", tok.Literal)
	}

	return nil, newSyntaxError(tok, "unexpected %s, expected an expression", describe(tok))
}

// parseParenthesized parses (), (e) and (e1, e2, ...). A single
// parenthesized expression is the expression itself.
func (p *Parser) parseParenthesized() (ast.Node, *SyntaxError) {
	elements, err := p.parseSequence(lexer.TokenTupleClose, ")")
	if err != nil {
		return nil, err
	}
	if len(elements) == 1 {
		return elements[0], nil
	}
	return &ast.Tuple{Elements: elements}, nil
}

func (p *Parser) parseList() (ast.Node, *SyntaxError) {
	elements, err := p.parseSequence(lexer.TokenListClose, "]")
	if err != nil {
		return nil, err
	}
	return &ast.List{Elements: elements}, nil
}

// parseSequence parses a comma-separated, possibly empty, bracketed sequence.
// The cursor is on the opening bracket.
func (p *Parser) parseSequence(closeType lexer.TokenType, closeLit string) ([]ast.Node, *SyntaxError) {
	saved := p.itemColumn
	p.itemColumn = noLayout
	defer func() { p.itemColumn = saved }()

	p.nextToken() // opening bracket

	elements := []ast.Node{}
	if p.curIs(closeType, closeLit) {
		p.nextToken()
		return elements, nil
	}

	for {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)

		if p.curIs(lexer.TokenSymbol, ",") {
			p.nextToken()
			continue
		}
		if p.curIs(closeType, closeLit) {
			p.nextToken()
			return elements, nil
		}

		tok := p.cur()
		return nil, newSyntaxError(tok, "expected ',' or '%s' but found %s", closeLit, describe(tok))
	}
}

// parseIf parses `if cond then e1 else e2`
func (p *Parser) parseIf() (ast.Node, *SyntaxError) {
	p.nextToken() // if

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenKeyword, "then", "after the if condition"); err != nil {
		return nil, err
	}

	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenKeyword, "else", "after the then branch"); err != nil {
		return nil, err
	}

	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.If{Cond: cond, Then: then, Else: els}, nil
}

// parseLet parses `let name = bound in body`
func (p *Parser) parseLet() (ast.Node, *SyntaxError) {
	p.nextToken() // let

	name := p.cur()
	if name.Type != lexer.TokenIdent {
		return nil, newSyntaxError(name, "expected a name after 'let' but found %s", describe(name))
	}
	p.nextToken()

	if err := p.expect(lexer.TokenOperator, "=", "in let binding"); err != nil {
		return nil, err
	}

	bound, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenKeyword, "in", "after let binding"); err != nil {
		return nil, err
	}

	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Let{
		Name:  &ast.Identifier{Token: name, Name: name.Literal},
		Bound: bound,
		Body:  body,
	}, nil
}
