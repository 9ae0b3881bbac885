// File: semantic/validator.go
package semantic

import (
	"fmt"

	"github.com/dangerclosesec/ciclo/language/lexer"
)

var (
	orderOperators      = map[string]bool{"<": true, ">": true, "<=": true, ">=": true}
	equalityOperators   = map[string]bool{"==": true, "/=": true, "!=": true}
	logicalOperators    = map[string]bool{"&&": true, "||": true}
	arithmeticOperators = map[string]bool{"+": true, "-": true, "*": true, "/": true}
)

// validator holds the state of one validation pass
type validator struct {
	tokens []lexer.Token
	env    TypeEnv
	report *Report
	seen   map[Diagnostic]bool
}

// Validate checks every cycle in tokens for structure and operand types. It
// never fails; all findings are in the report.
func Validate(tokens []lexer.Token) *Report {
	v := &validator{
		tokens: tokens,
		env:    TypeEnv{},
		report: &Report{},
		seen:   map[Diagnostic]bool{},
	}

	v.seedTypes()

	for i, tok := range tokens {
		if lexer.IsLoopKeyword(tok) {
			v.checkCycle(i)
		}
	}

	return v.report
}

// ValidateCycles returns the text report for tokens
func ValidateCycles(tokens []lexer.Token) string {
	return Validate(tokens).String()
}

// seedTypes binds every `name = literal` in the token stream before any cycle
// is examined
func (v *validator) seedTypes() {
	for i := range v.tokens {
		if !v.isAssignment(i, len(v.tokens)) || i+2 >= len(v.tokens) {
			continue
		}
		v.env.Bind(v.tokens[i].Literal, v.valueType(i+2))
	}
}

// valueType is the type of the literal at i, looking through a unary minus
func (v *validator) valueType(i int) Type {
	tok := v.tokens[i]
	if tok.Is(lexer.TokenOperator, "-") && i+1 < len(v.tokens) && literalType(v.tokens[i+1]) == TypeNumeric {
		return TypeNumeric
	}
	return literalType(tok)
}

func (v *validator) checkCycle(k int) {
	kw := v.tokens[k]
	info := CycleInfo{Keyword: kw.Literal, Line: kw.Line, Position: kw.Position, WellFormed: true}
	n := len(v.tokens)

	open := v.findConditionOpen(k)
	closeIdx := -1
	if open >= 0 {
		closeIdx = v.matchParen(open)
	}

	bodySearch := k + 1
	switch {
	case closeIdx >= 0:
		bodySearch = closeIdx + 1
	case open >= 0:
		bodySearch = open + 1
	}
	bodyOpen := v.findBodyOpen(bodySearch)
	bodyClose := -1
	if bodyOpen >= 0 {
		bodyClose = v.matchBrace(bodyOpen)
	}

	switch {
	case open < 0:
		v.fail(&info, "cycle '%s' is missing '(' to open its condition", kw.Literal)
	case closeIdx < 0:
		v.fail(&info, "cycle '%s' is missing ')' to close its condition", kw.Literal)
	}
	switch {
	case bodyOpen < 0:
		v.fail(&info, "cycle '%s' is missing '{' to open its body", kw.Literal)
	case bodyClose < 0:
		v.fail(&info, "cycle '%s' is missing '}' to close its body", kw.Literal)
	}

	headerStart := k + 1
	if open >= 0 {
		headerStart = open + 1
	}
	var headerEnd int
	switch {
	case closeIdx >= 0:
		headerEnd = closeIdx
	case bodyOpen >= 0:
		headerEnd = bodyOpen
	default:
		headerEnd = v.lineEnd(headerStart, v.tokens[headerStart-1].Line)
	}

	if kw.Literal == "for" {
		v.checkForHeader(&info, headerStart, headerEnd)
	} else if open >= 0 && closeIdx == open+1 {
		v.fail(&info, "cycle '%s' has an empty condition", kw.Literal)
	}
	v.checkRegion(headerStart, headerEnd)

	if bodyOpen >= 0 {
		bodyEnd := n
		if bodyClose >= 0 {
			bodyEnd = bodyClose
		}
		if bodyClose == bodyOpen+1 {
			v.add(SeverityWarning, kw.Line, "cycle '%s' has an empty body", kw.Literal)
		}
		v.checkRegion(bodyOpen+1, bodyEnd)
	}

	v.report.Cycles = append(v.report.Cycles, info)
}

// checkForHeader verifies the init; condition; update layout of a for header
func (v *validator) checkForHeader(info *CycleInfo, start, end int) {
	var separators []int
	depth := 0
	for i := start; i < end; i++ {
		tok := v.tokens[i]
		switch {
		case tok.Type == lexer.TokenTupleOpen || tok.Type == lexer.TokenListOpen:
			depth++
		case tok.Type == lexer.TokenTupleClose || tok.Type == lexer.TokenListClose:
			depth--
		case depth == 0 && tok.Is(lexer.TokenSymbol, ";"):
			separators = append(separators, i)
		}
	}

	switch {
	case len(separators) < 2:
		v.fail(info, "found %d ';' in the 'for' header, fewer than 2 (expected init; condition; update)", len(separators))
	case len(separators) > 2:
		v.fail(info, "found %d ';' in the 'for' header, more than 2 (expected init; condition; update)", len(separators))
	case separators[1] == separators[0]+1:
		v.add(SeverityWarning, info.Line, "cycle 'for' has no condition and never stops on its own")
	}
}

// checkRegion runs the operator and assignment checks over tokens[start:end]
func (v *validator) checkRegion(start, end int) {
	for i := start; i < end; i++ {
		if v.isAssignment(i, end) {
			v.checkAssignment(i, end)
			continue
		}
		if v.tokens[i].Type == lexer.TokenOperator && i > start && i+1 < end {
			v.checkOperator(i, end)
		}
	}
}

func (v *validator) checkOperator(i, end int) {
	opTok := v.tokens[i]
	op := opTok.Literal
	left, right := v.tokens[i-1], v.tokens[i+1]

	lt := v.operandType(left)
	var rt Type
	if right.Is(lexer.TokenOperator, "-") && i+2 < end && literalType(v.tokens[i+2]) == TypeNumeric {
		right, rt = v.tokens[i+2], TypeNumeric
	} else {
		rt = v.operandType(right)
	}

	if lt == TypeUnknown || rt == TypeUnknown {
		return
	}

	var requirement string
	switch {
	case orderOperators[op]:
		if lt != TypeNumeric || rt != TypeNumeric {
			requirement = "requires numeric operands"
		}
	case equalityOperators[op]:
		if !compatible(lt, rt) {
			requirement = "compares incompatible types"
		}
	case logicalOperators[op]:
		if lt != TypeBoolean || rt != TypeBoolean {
			requirement = "requires boolean operands"
		}
	case arithmeticOperators[op]:
		if (lt == TypeNumeric && isTextual(rt)) || (isTextual(lt) && rt == TypeNumeric) {
			requirement = "mixes numeric and string operands"
		}
	}

	if requirement != "" {
		v.add(SeverityError, opTok.Line, "operator '%s' %s: '%s' is %s, '%s' is %s",
			op, requirement, left.Literal, lt, right.Literal, rt)
	}
}

// checkAssignment registers the first type seen for a variable and rejects a
// later assignment of an incompatible type
func (v *validator) checkAssignment(i, end int) {
	name := v.tokens[i]
	rhs := v.expressionType(i+2, end, name.Line)
	if rhs == TypeUnknown {
		return
	}

	existing, ok := v.env[name.Literal]
	if !ok {
		v.env.Bind(name.Literal, rhs)
		return
	}
	if !compatible(existing, rhs) {
		v.add(SeverityError, name.Line, "variable '%s' holds %s values but is assigned a %s value",
			name.Literal, existing, rhs)
	}
}

// expressionType infers the type of the right-hand side starting at start. The
// expression ends at the end of the line or at an unbalanced closer or ';'.
func (v *validator) expressionType(start, end, line int) Type {
	if start >= end {
		return TypeUnknown
	}

	t := v.operandType(v.tokens[start])
	if v.tokens[start].Is(lexer.TokenOperator, "-") {
		t = v.valueType(start)
	}

	depth := 0
	for i := start; i < end; i++ {
		tok := v.tokens[i]
		if tok.Line != line {
			break
		}
		switch {
		case tok.Type == lexer.TokenTupleOpen || tok.Type == lexer.TokenListOpen:
			depth++
		case tok.Type == lexer.TokenTupleClose || tok.Type == lexer.TokenListClose:
			if depth == 0 {
				return t
			}
			depth--
		case depth == 0 && (tok.Is(lexer.TokenSymbol, ";") || tok.Is(lexer.TokenSymbol, "}")):
			return t
		case depth == 0 && tok.Type == lexer.TokenOperator:
			op := tok.Literal
			if orderOperators[op] || equalityOperators[op] || logicalOperators[op] {
				return TypeBoolean
			}
		}
	}

	return t
}

// operandType infers the type of a token used as an operand. Anything that is
// not a literal or a variable is unknown.
func (v *validator) operandType(tok lexer.Token) Type {
	if tok.Type.IsLiteral() || tok.Type == lexer.TokenIdent {
		return v.env.TypeOf(tok)
	}
	return TypeUnknown
}

func (v *validator) isAssignment(i, end int) bool {
	return i+1 < end &&
		v.tokens[i].Type == lexer.TokenIdent &&
		v.tokens[i+1].Is(lexer.TokenOperator, "=")
}

// findConditionOpen finds the '(' of the condition of the cycle at k. The
// search gives up at a brace, another cycle or an assignment.
func (v *validator) findConditionOpen(k int) int {
	for i := k + 1; i < len(v.tokens); i++ {
		tok := v.tokens[i]
		switch {
		case tok.Type == lexer.TokenTupleOpen:
			return i
		case tok.Is(lexer.TokenSymbol, "{"), tok.Is(lexer.TokenSymbol, "}"),
			lexer.IsLoopKeyword(tok), v.isAssignment(i, len(v.tokens)):
			return -1
		}
	}
	return -1
}

// matchParen returns the index of the ')' balancing the '(' at open, or -1 if
// a brace or another cycle is reached first
func (v *validator) matchParen(open int) int {
	depth := 0
	for i := open; i < len(v.tokens); i++ {
		tok := v.tokens[i]
		switch {
		case tok.Type == lexer.TokenTupleOpen:
			depth++
		case tok.Type == lexer.TokenTupleClose:
			depth--
			if depth == 0 {
				return i
			}
		case tok.Is(lexer.TokenSymbol, "{"), tok.Is(lexer.TokenSymbol, "}"), lexer.IsLoopKeyword(tok):
			return -1
		}
	}
	return -1
}

func (v *validator) findBodyOpen(from int) int {
	for i := from; i < len(v.tokens); i++ {
		tok := v.tokens[i]
		switch {
		case tok.Is(lexer.TokenSymbol, "{"):
			return i
		case tok.Is(lexer.TokenSymbol, "}"), lexer.IsLoopKeyword(tok):
			return -1
		}
	}
	return -1
}

func (v *validator) matchBrace(open int) int {
	depth := 0
	for i := open; i < len(v.tokens); i++ {
		tok := v.tokens[i]
		switch {
		case tok.Is(lexer.TokenSymbol, "{"):
			depth++
		case tok.Is(lexer.TokenSymbol, "}"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// lineEnd returns the index of the first token at or after from that is not
// on line
func (v *validator) lineEnd(from, line int) int {
	i := from
	for i < len(v.tokens) && v.tokens[i].Line == line {
		i++
	}
	return i
}

func (v *validator) fail(info *CycleInfo, format string, args ...any) {
	info.WellFormed = false
	v.add(SeverityError, info.Line, format, args...)
}

// add records a diagnostic once; nested cycles revisit the same tokens
func (v *validator) add(severity Severity, line int, format string, args ...any) {
	d := Diagnostic{Severity: severity, Line: line, Message: fmt.Sprintf(format, args...)}
	if v.seen[d] {
		return
	}
	v.seen[d] = true
	v.report.Diagnostics = append(v.report.Diagnostics, d)
}
