// File: lexer/lexer.go
package lexer

import (
	"regexp"
	"strings"
)

// classifier recognizes one token class at the start of the remaining input.
// accept, when set, filters matches by literal (keyword and boolean sets).
type classifier struct {
	tokenType TokenType
	pattern   *regexp.Regexp
	accept    func(string) bool
}

var (
	wordPattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_']*`)
	lowerPattern     = regexp.MustCompile(`^[a-z_][A-Za-z0-9_']*`)
	upperPattern     = regexp.MustCompile(`^[A-Z][A-Za-z0-9_']*`)
	floatPattern     = regexp.MustCompile(`^(?:[0-9]+\.[0-9]+(?:[eE][-+]?[0-9]+)?|[0-9]+[eE][-+]?[0-9]+)`)
	intPattern       = regexp.MustCompile(`^(?:0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+|[0-9]+)`)
	stringPattern    = regexp.MustCompile(`^"(?:[^"\\\n]|\\.)*"`)
	charPattern      = regexp.MustCompile(`^'(?:[^'\\\n]|\\.)'`)
	operatorPattern  = regexp.MustCompile(`^[-+*/=<>:|&!$.^]+`)
	listOpenPattern  = regexp.MustCompile(`^\[`)
	listClosePattern = regexp.MustCompile(`^\]`)
	tupleOpenPattern = regexp.MustCompile(`^\(`)
	tupleClosePatten = regexp.MustCompile(`^\)`)
	symbolPattern    = regexp.MustCompile(`^[{},;\\]`)
)

// classifiers are tried in order; the first match wins. Floats come before
// integers so that "3.14" is not split at the dot.
var classifiers = []classifier{
	{tokenType: TokenKeyword, pattern: wordPattern, accept: func(s string) bool { return Keywords[s] }},
	{tokenType: TokenBoolean, pattern: wordPattern, accept: func(s string) bool { return s == "True" || s == "False" }},
	{tokenType: TokenIdent, pattern: lowerPattern},
	{tokenType: TokenTypeIdent, pattern: upperPattern},
	{tokenType: TokenFloat, pattern: floatPattern},
	{tokenType: TokenInt, pattern: intPattern},
	{tokenType: TokenString, pattern: stringPattern},
	{tokenType: TokenChar, pattern: charPattern},
	{tokenType: TokenOperator, pattern: operatorPattern},
	{tokenType: TokenListOpen, pattern: listOpenPattern},
	{tokenType: TokenListClose, pattern: listClosePattern},
	{tokenType: TokenTupleOpen, pattern: tupleOpenPattern},
	{tokenType: TokenTupleClose, pattern: tupleClosePatten},
	{tokenType: TokenSymbol, pattern: symbolPattern},
}

// Lexer tokenizes input text
type Lexer struct {
	input     string
	position  int // current offset in input
	line      int
	lineStart int // offset of the first character of the current line
}

// NewLexer creates a new Lexer
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
	}
}

// Tokenize scans the whole input. It never fails: unrecognized input becomes
// TokenIllegal tokens and scanning continues after them.
func Tokenize(input string) []Token {
	l := NewLexer(input)

	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or a TokenEOF token at the end of input
func (l *Lexer) NextToken() Token {
	l.skipIgnored()

	if l.position >= len(l.input) {
		return l.newToken(TokenEOF, l.position, l.position)
	}

	start := l.position
	rest := l.input[start:]

	if rest[0] == '"' && !stringPattern.MatchString(rest) {
		// Unterminated string: report the rest of the line as one unit
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			end = len(rest)
		}
		return l.emit(TokenIllegal, start, start+end)
	}

	for _, c := range classifiers {
		lit := c.pattern.FindString(rest)
		if lit == "" {
			continue
		}
		if c.accept != nil && !c.accept(lit) {
			continue
		}
		end := start + len(lit)

		switch c.tokenType {
		case TokenIdent, TokenTypeIdent, TokenKeyword, TokenBoolean, TokenInt, TokenFloat:
			// A word glued to something no classifier accepts (abc@def, 12ab)
			// is reported as a single malformed unit.
			if l.malformedAfter(c.tokenType, end) {
				return l.emit(TokenIllegal, start, l.invalidRunEnd(start))
			}
		case TokenOperator:
			// Never swallow the start of a line comment
			if idx := strings.Index(lit, "--"); idx > 0 {
				end = start + idx
			}
		}

		return l.emit(c.tokenType, start, end)
	}

	return l.emit(TokenIllegal, start, l.invalidRunEnd(start))
}

// skipIgnored skips whitespace and comments, keeping line bookkeeping exact
func (l *Lexer) skipIgnored() {
	for l.position < len(l.input) {
		ch := l.input[l.position]

		if isWhitespace(ch) {
			l.advance(l.position + 1)
			continue
		}

		if end, ok := commentEnd(l.input, l.position); ok {
			l.advance(end)
			continue
		}

		return
	}
}

// advance moves to offset end, counting the newlines passed over
func (l *Lexer) advance(end int) {
	for i := l.position; i < end && i < len(l.input); i++ {
		if l.input[i] == '\n' {
			l.line++
			l.lineStart = i + 1
		}
	}
	l.position = end
}

func (l *Lexer) emit(tokenType TokenType, start, end int) Token {
	tok := l.newToken(tokenType, start, end)
	l.advance(end)
	return tok
}

func (l *Lexer) newToken(tokenType TokenType, start, end int) Token {
	return Token{
		Type:     tokenType,
		Literal:  l.input[start:end],
		Line:     l.line,
		Column:   start - l.lineStart,
		Position: start,
	}
}

// malformedAfter reports whether the character at end glues a malformed
// suffix onto the word or number that just matched
func (l *Lexer) malformedAfter(tokenType TokenType, end int) bool {
	if end >= len(l.input) {
		return false
	}
	ch := l.input[end]
	if tokenType == TokenInt || tokenType == TokenFloat {
		if isLetter(ch) {
			return true
		}
	}
	return !canStartToken(ch)
}

// invalidRunEnd returns the end of the maximal run of characters starting at
// start that is bounded by whitespace or a separator. At least one character
// is always consumed.
func (l *Lexer) invalidRunEnd(start int) int {
	end := start
	for end < len(l.input) {
		ch := l.input[end]
		if isWhitespace(ch) || isSeparator(ch) {
			break
		}
		end++
	}
	if end == start {
		end = start + 1
	}
	return end
}

// isSeparator reports characters that unambiguously end a token
func isSeparator(ch byte) bool {
	switch ch {
	case '(', ')', '[', ']', '{', '}', ',', ';', '=', ':', '|', '\\', '"', '\'', '\n', '\r', '\t':
		return true
	}
	return false
}

// canStartToken reports whether some classifier (or whitespace) can begin at ch
func canStartToken(ch byte) bool {
	if isLetter(ch) || isDigit(ch) || isWhitespace(ch) {
		return true
	}
	if isOperatorChar(ch) {
		return true
	}
	switch ch {
	case '(', ')', '[', ']', '{', '}', ',', ';', '\\', '"', '\'':
		return true
	}
	return false
}

func isOperatorChar(ch byte) bool {
	return strings.IndexByte("-+*/=<>:|&!$.^", ch) >= 0
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

// isLetter returns true if the character is an ASCII letter or underscore
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit returns true if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '\''
}
