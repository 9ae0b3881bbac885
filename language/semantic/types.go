// File: semantic/types.go
package semantic

import (
	"regexp"

	"github.com/dangerclosesec/ciclo/language/lexer"
)

// Type is the inferred type tag of a value
type Type int

const (
	TypeUnknown Type = iota
	TypeNumeric
	TypeString
	TypeBoolean
	TypeChar
)

func (t Type) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeChar:
		return "char"
	}
	return "unknown"
}

// TypeEnv maps variable names to their inferred types. It lives for a single
// validation call; the first binding of a name wins.
type TypeEnv map[string]Type

// Bind records t for name unless name is already bound or t is unknown
func (env TypeEnv) Bind(name string, t Type) {
	if t == TypeUnknown {
		return
	}
	if _, ok := env[name]; !ok {
		env[name] = t
	}
}

// Lookup returns the type bound to name, or TypeUnknown
func (env TypeEnv) Lookup(name string) Type {
	return env[name]
}

var (
	numericShape = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)
	stringShape  = regexp.MustCompile(`^".*"$`)
	charShape    = regexp.MustCompile(`^'.+'$`)
)

// literalType classifies a literal token by its lexical kind
func literalType(tok lexer.Token) Type {
	switch tok.Type {
	case lexer.TokenInt, lexer.TokenFloat:
		return TypeNumeric
	case lexer.TokenString:
		return TypeString
	case lexer.TokenBoolean:
		return TypeBoolean
	case lexer.TokenChar:
		return TypeChar
	}
	return TypeUnknown
}

// shapeType infers a type from the text of a token when neither its kind nor
// a binding says anything
func shapeType(text string) Type {
	switch {
	case numericShape.MatchString(text):
		return TypeNumeric
	case text == "True" || text == "False":
		return TypeBoolean
	case stringShape.MatchString(text):
		return TypeString
	case charShape.MatchString(text):
		return TypeChar
	}
	return TypeUnknown
}

// TypeOf infers the type of a single operand token
func (env TypeEnv) TypeOf(tok lexer.Token) Type {
	if t := literalType(tok); t != TypeUnknown {
		return t
	}
	if tok.Type == lexer.TokenIdent {
		if t, ok := env[tok.Literal]; ok {
			return t
		}
	}
	return shapeType(tok.Literal)
}

// compatible reports whether values of types a and b may be compared or
// assigned to one another. char and string are interchangeable.
func compatible(a, b Type) bool {
	if a == b {
		return true
	}
	return (a == TypeChar && b == TypeString) || (a == TypeString && b == TypeChar)
}

func isTextual(t Type) bool {
	return t == TypeString || t == TypeChar
}
