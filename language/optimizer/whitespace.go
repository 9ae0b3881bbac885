// File: optimizer/whitespace.go
package optimizer

import (
	"regexp"
	"strings"

	"github.com/dangerclosesec/ciclo/language/lexer"
)

var (
	charLiteralPattern = regexp.MustCompile(`^'(?:[^'\\]|\\.)'`)
	exponentPrefix     = regexp.MustCompile(`(?:^|[^A-Za-z0-9_'.])[0-9]+(?:\.[0-9]+)?[eE]$`)
)

// normalizeWhitespace rewrites every line into canonical spacing and drops
// blank lines. It returns the new text and the number of whitespace
// characters removed or inserted. String and char literals are untouched.
func normalizeWhitespace(text string) (string, int) {
	var out []string
	changed := 0

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		normalized, n := normalizeLine(line)
		changed += n
		if normalized == "" {
			// the newline of a dropped line; the final split element has none
			if i < len(lines)-1 {
				changed++
			}
			continue
		}
		out = append(out, normalized)
	}

	if len(out) == 0 {
		return "", changed
	}
	return strings.Join(out, "\n") + "\n", changed
}

// normalizeLine collapses blank runs, trims the line and puts single spaces
// around standalone '=' and binary arithmetic operators
func normalizeLine(line string) (string, int) {
	literal := literalMask(line)
	changed := 0

	// collapse runs of blanks outside literals and trim both edges
	var sb strings.Builder
	var mask []bool
	for i := 0; i < len(line); {
		if literal[i] || !isBlank(line[i]) {
			sb.WriteByte(line[i])
			mask = append(mask, literal[i])
			i++
			continue
		}

		j := i
		for j < len(line) && !literal[j] && isBlank(line[j]) {
			j++
		}
		atEdge := i == 0 || j == len(line)
		switch {
		case atEdge:
			changed += j - i
		case line[i:j] == " ":
			sb.WriteByte(' ')
			mask = append(mask, false)
		default:
			// the run shrinks to one space; a lone tab counts as one change
			changed += max(j-i-1, 1)
			sb.WriteByte(' ')
			mask = append(mask, false)
		}
		i = j
	}

	collapsed := sb.String()
	spaced, inserted := spaceOperators(collapsed, mask)
	return spaced, changed + inserted
}

// spaceOperators inserts missing spaces around operators that are spaced in
// canonical form
func spaceOperators(line string, literal []bool) (string, int) {
	var sb strings.Builder
	inserted := 0

	for i := 0; i < len(line); i++ {
		ch := line[i]
		if literal[i] || !needsSpacing(line, literal, i) {
			sb.WriteByte(ch)
			continue
		}

		if i > 0 && line[i-1] != ' ' {
			sb.WriteByte(' ')
			inserted++
		}
		sb.WriteByte(ch)
		if i+1 < len(line) && line[i+1] != ' ' {
			sb.WriteByte(' ')
			inserted++
		}
	}

	return sb.String(), inserted
}

// needsSpacing reports whether the byte at i is a standalone '=' or a binary
// + - * / that is not part of a longer operator
func needsSpacing(line string, literal []bool, i int) bool {
	ch := line[i]
	if i > 0 && isOperatorChar(line[i-1]) && !literal[i-1] {
		return false
	}
	if i+1 < len(line) && isOperatorChar(line[i+1]) && !literal[i+1] && !prefixMinusAt(line, literal, i+1) {
		return false
	}

	switch ch {
	case '=':
		return true
	case '+', '-', '*', '/':
	default:
		return false
	}

	prev := prevNonBlank(line, i)
	next := nextNonBlank(line, i)
	if prev < 0 || next < 0 {
		return false
	}
	if !endsOperand(line[prev]) || strings.IndexByte(")]},;", line[next]) >= 0 {
		return false
	}
	// 1e-5 is one literal
	if (ch == '-' || ch == '+') && prev == i-1 && exponentPrefix.MatchString(line[:i]) && !literal[prev] {
		return false
	}
	// then -1, else -x: a keyword is not an operand
	if word := wordBefore(line, prev); word != "" && lexer.Keywords[word] && !isUpper(word[0]) {
		return false
	}
	return true
}

// prefixMinusAt reports whether the byte at j is a '-' negating the operand
// that follows it, as in x=-5 or a*-b
func prefixMinusAt(line string, literal []bool, j int) bool {
	if line[j] != '-' || literal[j] || j+1 >= len(line) {
		return false
	}
	next := line[j+1]
	return !isBlank(next) && !isOperatorChar(next)
}

// literalMask marks the bytes of line that belong to string or char literals.
// An unterminated string runs to the end of the line.
func literalMask(line string) []bool {
	mask := make([]bool, len(line))
	for i := 0; i < len(line); {
		switch {
		case line[i] == '"':
			j := i + 1
			for j < len(line) && line[j] != '"' {
				if line[j] == '\\' {
					j++
				}
				j++
			}
			if j < len(line) {
				j++
			}
			j = min(j, len(line))
			for k := i; k < j; k++ {
				mask[k] = true
			}
			i = j
		case line[i] == '\'' && (i == 0 || !isIdentChar(line[i-1])):
			lit := charLiteralPattern.FindString(line[i:])
			if lit == "" {
				i++
				continue
			}
			for k := i; k < i+len(lit); k++ {
				mask[k] = true
			}
			i += len(lit)
		default:
			i++
		}
	}
	return mask
}

func prevNonBlank(line string, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !isBlank(line[j]) {
			return j
		}
	}
	return -1
}

func nextNonBlank(line string, i int) int {
	for j := i + 1; j < len(line); j++ {
		if !isBlank(line[j]) {
			return j
		}
	}
	return -1
}

// wordBefore returns the identifier ending at end, if any
func wordBefore(line string, end int) string {
	start := end
	for start >= 0 && isIdentChar(line[start]) {
		start--
	}
	return line[start+1 : end+1]
}

func endsOperand(ch byte) bool {
	return isIdentChar(ch) || ch == ')' || ch == ']' || ch == '"'
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isOperatorChar(ch byte) bool {
	return strings.IndexByte("-+*/=<>:|&!$.^", ch) >= 0
}

func isIdentChar(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || '0' <= ch && ch <= '9' || ch == '_' || ch == '\''
}

func isUpper(ch byte) bool {
	return 'A' <= ch && ch <= 'Z'
}
