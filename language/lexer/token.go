// File: lexer/token.go
package lexer

import "fmt"

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int // 1-based
	Column  int // 0-based byte offset within the line
	// Position is the 0-based byte offset of the first character in the input.
	Position int
}

// String renders the token the way the lexical listing prints it
func (t Token) String() string {
	return fmt.Sprintf("'%s' (line %d, pos %d) [%s]", t.Literal, t.Line, t.Position, t.Type)
}

// TokenType represents the type of a token
type TokenType int

// Token types
const (
	TokenIllegal TokenType = iota
	TokenEOF

	// Identifiers
	TokenIdent     // lowercase: variables and functions
	TokenTypeIdent // uppercase: types and constructors

	// Literals
	TokenInt
	TokenFloat
	TokenChar
	TokenString
	TokenBoolean

	TokenKeyword
	TokenOperator
	TokenSymbol // { } , ; \

	TokenListOpen   // [
	TokenListClose  // ]
	TokenTupleOpen  // (
	TokenTupleClose // )
)

var tokenTypeNames = map[TokenType]string{
	TokenIllegal:    "ERROR",
	TokenEOF:        "EOF",
	TokenIdent:      "IDENTIFIER_VAR",
	TokenTypeIdent:  "IDENTIFIER_TYPE",
	TokenInt:        "INTEGER",
	TokenFloat:      "FLOAT",
	TokenChar:       "CHAR",
	TokenString:     "STRING",
	TokenBoolean:    "BOOLEAN",
	TokenKeyword:    "KEYWORD",
	TokenOperator:   "OPERATOR",
	TokenSymbol:     "SYMBOL",
	TokenListOpen:   "LIST_START",
	TokenListClose:  "LIST_END",
	TokenTupleOpen:  "TUPLE_START",
	TokenTupleClose: "TUPLE_END",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsLiteral reports whether the type is one of the literal kinds
func (t TokenType) IsLiteral() bool {
	switch t {
	case TokenInt, TokenFloat, TokenChar, TokenString, TokenBoolean:
		return true
	}
	return false
}

// Keywords lists the reserved words. Loop keywords are the imperative
// extension; the builtin type names are reserved as well.
var Keywords = map[string]bool{
	"let": true, "in": true, "if": true, "then": true, "else": true,
	"case": true, "of": true, "data": true, "type": true, "where": true,
	"module": true, "import": true, "deriving": true, "class": true,
	"instance": true, "newtype": true, "do": true, "default": true,
	"foreign": true, "forall": true, "hiding": true, "qualified": true,
	"as": true, "family": true, "role": true, "pattern": true,
	"static": true, "stock": true, "anyclass": true, "via": true,

	"Int": true, "Integer": true, "Float": true, "Double": true,
	"Bool": true, "Char": true, "String": true,

	"while": true, "for": true, "loop": true, "ciclo": true,
}

// LoopKeywords are the keywords that open a cycle
var LoopKeywords = map[string]bool{
	"while": true,
	"for":   true,
	"loop":  true,
	"ciclo": true,
}

// IsLoopKeyword reports whether tok is one of the cycle keywords
func IsLoopKeyword(tok Token) bool {
	return tok.Type == TokenKeyword && LoopKeywords[tok.Literal]
}

// Is reports whether tok has the given type and literal
func (t Token) Is(tt TokenType, literal string) bool {
	return t.Type == tt && t.Literal == literal
}
