package lexer

// Summary is the outcome of a lexical pass: how many tokens were produced and
// which of them are lexical errors.
type Summary struct {
	Total   int
	Illegal []Token
}

// Summarize collects the illegal tokens of a token sequence
func Summarize(tokens []Token) Summary {
	s := Summary{Total: len(tokens)}
	for _, tok := range tokens {
		if tok.Type == TokenIllegal {
			s.Illegal = append(s.Illegal, tok)
		}
	}
	return s
}

// HasErrors reports whether any lexical error was found
func (s Summary) HasErrors() bool {
	return len(s.Illegal) > 0
}
