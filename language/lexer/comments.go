// File: lexer/comments.go
package lexer

import "strings"

// commentEnd reports whether a comment starts at pos and returns the offset
// just past it. Line comments stop before their newline so line counting
// stays with the caller. Block comments nest; an unterminated one runs to the
// end of the input.
func commentEnd(input string, pos int) (int, bool) {
	rest := input[pos:]

	if strings.HasPrefix(rest, "--") {
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			return len(input), true
		}
		return pos + end, true
	}

	if strings.HasPrefix(rest, "{-") {
		i := pos + 2
		depth := 1
		for i < len(input) && depth > 0 {
			switch {
			case strings.HasPrefix(input[i:], "{-"):
				depth++
				i += 2
			case strings.HasPrefix(input[i:], "-}"):
				depth--
				i += 2
			default:
				i++
			}
		}
		return i, true
	}

	return pos, false
}

// StripComments removes line and nested block comments from source using the
// same recognizer as the tokenizer. Newlines inside block comments are kept so
// line numbers do not shift. String and char literals are copied verbatim.
// It returns the stripped text and the number of comments removed.
func StripComments(source string) (string, int) {
	var sb strings.Builder
	sb.Grow(len(source))

	count := 0
	pos := 0
	for pos < len(source) {
		ch := source[pos]

		if ch == '"' {
			end := stringLiteralEnd(source, pos)
			sb.WriteString(source[pos:end])
			pos = end
			continue
		}

		if ch == '\'' && (pos == 0 || !isIdentChar(source[pos-1])) {
			if lit := charPattern.FindString(source[pos:]); lit != "" {
				sb.WriteString(lit)
				pos += len(lit)
				continue
			}
		}

		if end, ok := commentEnd(source, pos); ok {
			count++
			sb.WriteString(strings.Repeat("\n", strings.Count(source[pos:end], "\n")))
			pos = end
			continue
		}

		sb.WriteByte(ch)
		pos++
	}

	return sb.String(), count
}

// stringLiteralEnd returns the offset past the string literal starting at pos.
// Unterminated literals stop at the end of the line, like the tokenizer.
func stringLiteralEnd(source string, pos int) int {
	if lit := stringPattern.FindString(source[pos:]); lit != "" {
		return pos + len(lit)
	}
	end := strings.IndexByte(source[pos:], '\n')
	if end < 0 {
		return len(source)
	}
	return pos + end
}
