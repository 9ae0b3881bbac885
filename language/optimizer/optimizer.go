// File: optimizer/optimizer.go
package optimizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dangerclosesec/ciclo/language/lexer"
)

// Subexpression is a repeated expression extracted into a temporary
type Subexpression struct {
	Name        string
	Expression  string
	Occurrences int
}

// Result is the outcome of one Optimize call
type Result struct {
	OptimizedCode string
	Log           []string
	Success       bool
	ErrorMessage  string

	CommentsRemoved          int
	SpacesOptimized          int
	SubexpressionsEliminated int
	Subexpressions           []Subexpression

	// Sizes are in characters
	OriginalSize  int
	OptimizedSize int
}

// Reduction returns the size reduction as a percentage of the original size
func (r Result) Reduction() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return (1 - float64(r.OptimizedSize)/float64(r.OriginalSize)) * 100
}

// state is scoped to a single Optimize call
type state struct {
	log            []string
	subexpressions []Subexpression
}

func (s *state) logf(format string, args ...any) {
	s.log = append(s.log, fmt.Sprintf(format, args...))
}

func (s *state) failure(message string) Result {
	s.logf("ERROR: %s", message)
	return Result{
		Log:          s.log,
		Success:      false,
		ErrorMessage: message,
	}
}

// Optimize strips comments, normalizes whitespace and extracts repeated
// subexpressions. It never panics; faults are reported through
// Result.Success and Result.ErrorMessage.
func Optimize(source string) (result Result) {
	st := &state{}

	defer func() {
		if r := recover(); r != nil {
			result = st.failure(fmt.Sprintf("internal optimizer fault: %v", r))
		}
	}()

	if !utf8.ValidString(source) {
		return st.failure("source is not valid UTF-8")
	}

	st.logf("=== OPTIMIZATION STARTED ===")

	st.logf("STEP 1: removing comments")
	stripped, comments := lexer.StripComments(source)
	st.logf("  comments removed: %d", comments)

	st.logf("STEP 2: optimizing whitespace")
	normalized, spaces := normalizeWhitespace(stripped)
	st.logf("  whitespace characters optimized: %d", spaces)

	st.logf("STEP 3: eliminating common subexpressions")
	optimized := st.eliminateCommonSubexpressions(normalized)
	st.logf("  subexpressions eliminated: %d", len(st.subexpressions))

	if len(st.subexpressions) > 0 {
		st.logf("Extracted subexpressions:")
		var defs strings.Builder
		for _, sub := range st.subexpressions {
			fmt.Fprintf(&defs, "%s = %s\n", sub.Name, sub.Expression)
			st.logf("  %s = %s (%d occurrences)", sub.Name, sub.Expression, sub.Occurrences)
		}
		optimized = defs.String() + optimized
	}

	result = Result{
		OptimizedCode:            optimized,
		Success:                  true,
		CommentsRemoved:          comments,
		SpacesOptimized:          spaces,
		SubexpressionsEliminated: len(st.subexpressions),
		Subexpressions:           st.subexpressions,
		OriginalSize:             utf8.RuneCountInString(source),
		OptimizedSize:            utf8.RuneCountInString(optimized),
	}

	st.logf("=== OPTIMIZATION COMPLETE ===")
	st.logf("Original size: %d characters", result.OriginalSize)
	st.logf("Optimized size: %d characters", result.OptimizedSize)
	st.logf("Reduction: %d characters (%.1f%%)", result.OriginalSize-result.OptimizedSize, result.Reduction())
	result.Log = st.log

	return result
}
