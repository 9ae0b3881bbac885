// File: optimizer/cse.go
package optimizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dangerclosesec/ciclo/language/lexer"
)

// cseOperators are the operators whose operand pairs are extraction candidates
var cseOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "&&": true, "||": true,
}

// fixity is the binding power of an infix operator
type fixity struct {
	precedence int
	rightAssoc bool
	structural bool // '=', '->', '::' and friends delimit expressions
}

// fixities follow the Haskell Prelude declarations
var fixities = map[string]fixity{
	".":   {precedence: 9, rightAssoc: true},
	"^":   {precedence: 8, rightAssoc: true},
	"^^":  {precedence: 8, rightAssoc: true},
	"**":  {precedence: 8, rightAssoc: true},
	"*":   {precedence: 7},
	"/":   {precedence: 7},
	"+":   {precedence: 6},
	"-":   {precedence: 6},
	":":   {precedence: 5, rightAssoc: true},
	"++":  {precedence: 5, rightAssoc: true},
	"==":  {precedence: 4},
	"/=":  {precedence: 4},
	"!=":  {precedence: 4},
	"<":   {precedence: 4},
	"<=":  {precedence: 4},
	">":   {precedence: 4},
	">=":  {precedence: 4},
	"&&":  {precedence: 3, rightAssoc: true},
	"||":  {precedence: 2, rightAssoc: true},
	">>":  {precedence: 1},
	">>=": {precedence: 1},
	"$":   {precedence: 0, rightAssoc: true},
	"$!":  {precedence: 0, rightAssoc: true},
	"=":   {structural: true},
	"->":  {structural: true},
	"<-":  {structural: true},
	"=>":  {structural: true},
	"::":  {structural: true},
	"|":   {structural: true},
}

// fixityOf returns the fixity of op. Operators without a declaration get the
// Haskell default, infixl 9.
func fixityOf(op string) fixity {
	if f, ok := fixities[op]; ok {
		return f
	}
	return fixity{precedence: 9}
}

// occurrence is one matched `operand op operand` span within a line
type occurrence struct {
	line       int
	start, end int // byte offsets within the line
}

type candidate struct {
	expression  string
	occurrences []occurrence
}

// eliminateCommonSubexpressions replaces every expression that occurs more
// than once with a temporary and records the definitions
func (s *state) eliminateCommonSubexpressions(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	used := map[string]bool{}
	byExpr := map[string]*candidate{}
	var order []*candidate

	for li, line := range lines {
		tokens := lexer.Tokenize(line)
		for _, tok := range tokens {
			if tok.Type == lexer.TokenIdent {
				used[tok.Literal] = true
			}
		}

		for _, m := range findSubexpressions(tokens) {
			expr := tokens[m].Literal + " " + tokens[m+1].Literal + " " + tokens[m+2].Literal
			c, ok := byExpr[expr]
			if !ok {
				c = &candidate{expression: expr}
				byExpr[expr] = c
				order = append(order, c)
			}
			c.occurrences = append(c.occurrences, occurrence{
				line:  li,
				start: tokens[m].Position,
				end:   tokens[m+2].Position + len(tokens[m+2].Literal),
			})
		}
	}

	type replacement struct {
		occurrence
		name string
	}
	var replacements []replacement

	next := 0
	for _, c := range order {
		if len(c.occurrences) < 2 {
			continue
		}

		name := fmt.Sprintf("cse%d", next)
		for used[name] {
			next++
			name = fmt.Sprintf("cse%d", next)
		}
		next++
		used[name] = true

		s.subexpressions = append(s.subexpressions, Subexpression{
			Name:        name,
			Expression:  c.expression,
			Occurrences: len(c.occurrences),
		})
		for _, occ := range c.occurrences {
			if definesName(lines[occ.line], name) {
				continue
			}
			replacements = append(replacements, replacement{occurrence: occ, name: name})
		}
	}

	// right to left within each line so earlier offsets stay valid
	sort.Slice(replacements, func(i, j int) bool {
		if replacements[i].line != replacements[j].line {
			return replacements[i].line < replacements[j].line
		}
		return replacements[i].start > replacements[j].start
	})
	for _, r := range replacements {
		line := lines[r.line]
		lines[r.line] = line[:r.start] + r.name + line[r.end:]
	}

	return strings.Join(lines, "\n") + "\n"
}

// findSubexpressions returns the index of the left operand of every
// `operand op operand` that is a genuine subexpression, scanning leftmost
// first without overlaps
func findSubexpressions(tokens []lexer.Token) []int {
	var matches []int
	for i := 0; i+2 < len(tokens); {
		if !isCSEOperand(tokens[i]) || tokens[i+1].Type != lexer.TokenOperator ||
			!cseOperators[tokens[i+1].Literal] || !isCSEOperand(tokens[i+2]) {
			i++
			continue
		}
		if boundBy(tokens, i) {
			matches = append(matches, i)
			i += 3
			continue
		}
		// the right operand may start a real match of its own
		i += 2
	}
	return matches
}

// boundBy reports whether tokens[i:i+3] parses as one subexpression given its
// neighbours
func boundBy(tokens []lexer.Token, i int) bool {
	op := fixityOf(tokens[i+1].Literal)

	if i > 0 {
		left := tokens[i-1]
		switch {
		case left.Type == lexer.TokenOperator:
			outer := fixityOf(left.Literal)
			if left.Literal == "-" && isPrefixMinus(tokens, i-1) {
				// negation binds like infixl 6
				outer = fixity{precedence: 6}
			}
			if !outer.structural && (outer.precedence > op.precedence ||
				(outer.precedence == op.precedence && !op.rightAssoc)) {
				return false
			}
		case isApplicable(left):
			// f a + b is (f a) + b
			return false
		}
	}

	if i+3 < len(tokens) {
		right := tokens[i+3]
		switch {
		case right.Type == lexer.TokenOperator:
			outer := fixityOf(right.Literal)
			if !outer.structural && (outer.precedence > op.precedence ||
				(outer.precedence == op.precedence && op.rightAssoc)) {
				return false
			}
		case startsArgument(right):
			// a + b c is a + (b c)
			return false
		}
	}

	return true
}

// isPrefixMinus reports whether the '-' at i is a negation rather than a
// subtraction
func isPrefixMinus(tokens []lexer.Token, i int) bool {
	if i == 0 {
		return true
	}
	return !isApplicable(tokens[i-1])
}

func isCSEOperand(tok lexer.Token) bool {
	return tok.Type == lexer.TokenIdent || tok.Type == lexer.TokenInt || tok.Type == lexer.TokenFloat
}

// isApplicable reports tokens that take part in juxtaposition
func isApplicable(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.TokenIdent, lexer.TokenTypeIdent, lexer.TokenTupleClose, lexer.TokenListClose:
		return true
	}
	return tok.Type.IsLiteral()
}

func startsArgument(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.TokenIdent, lexer.TokenTypeIdent, lexer.TokenTupleOpen, lexer.TokenListOpen:
		return true
	}
	return tok.Type.IsLiteral()
}

// definesName reports whether line is the declaration of name
func definesName(line, name string) bool {
	rest, ok := strings.CutPrefix(line, name)
	if !ok {
		return false
	}
	rest = strings.TrimLeft(rest, " ")
	return strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==")
}
