// File: parser/parser_cycles.go
package parser

import (
	"fmt"

	"github.com/dangerclosesec/ciclo/language/ast"
	"github.com/dangerclosesec/ciclo/language/lexer"
)

// parseCycle parses the loop forms:
//
//	for ([init]; [cond]; [update]) { body }
//	while (cond) { body }
//	loop (cond) { body }    ciclo is an alias of loop
func (p *Parser) parseCycle() (ast.Node, *SyntaxError) {
	keyword := p.cur()
	kind, _ := ast.CycleKindOf(keyword.Literal)
	p.nextToken()

	cycle := &ast.Cycle{Kind: kind, Keyword: keyword}
	after := fmt.Sprintf("after '%s'", keyword.Literal)

	if err := p.expect(lexer.TokenTupleOpen, "(", after); err != nil {
		return nil, err
	}

	saved := p.itemColumn
	p.itemColumn = noLayout
	err := p.parseCycleHeader(cycle)
	p.itemColumn = saved
	if err != nil {
		return nil, err
	}

	if err := p.expect(lexer.TokenTupleClose, ")", "to close the '"+keyword.Literal+"' header"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock(keyword)
	if err != nil {
		return nil, err
	}
	cycle.Body = body

	return cycle, nil
}

func (p *Parser) parseCycleHeader(cycle *ast.Cycle) *SyntaxError {
	var err *SyntaxError

	if cycle.Kind != ast.CycleFor {
		cycle.Cond, err = p.parseExpression()
		return err
	}

	separator := "in the '" + cycle.Keyword.Literal + "' header"

	if !p.curIs(lexer.TokenSymbol, ";") {
		if cycle.Init, err = p.parseStatement(); err != nil {
			return err
		}
	}
	if err := p.expect(lexer.TokenSymbol, ";", separator); err != nil {
		return err
	}

	if !p.curIs(lexer.TokenSymbol, ";") {
		if cycle.Cond, err = p.parseExpression(); err != nil {
			return err
		}
	}
	if err := p.expect(lexer.TokenSymbol, ";", separator); err != nil {
		return err
	}

	if !p.curIs(lexer.TokenTupleClose, ")") {
		if cycle.Update, err = p.parseStatement(); err != nil {
			return err
		}
	}

	return nil
}

// parseBlock parses `{ item* }` with optional ';' between items
func (p *Parser) parseBlock(keyword lexer.Token) ([]ast.Node, *SyntaxError) {
	if err := p.expect(lexer.TokenSymbol, "{", "to open the '"+keyword.Literal+"' body"); err != nil {
		return nil, err
	}

	body := []ast.Node{}
	for {
		if p.curIs(lexer.TokenSymbol, ";") {
			p.nextToken()
			continue
		}
		if p.curIs(lexer.TokenSymbol, "}") {
			p.nextToken()
			return body, nil
		}
		if p.atEnd() {
			return nil, newSyntaxError(p.cur(), "expected '}' to close the '%s' body opened on line %d but found end of input", keyword.Literal, keyword.Line)
		}

		item, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		body = append(body, item)
	}
}
