// File: codegen/tuples.go
package codegen

import (
	"fmt"
	"strings"
)

// Tuple is one three-address instruction: Result = Arg1 Op Arg2. Arg2 is
// empty for unary operators.
type Tuple struct {
	Op     string
	Arg1   string
	Arg2   string
	Result string
}

// Triplet renders the tuple as a triplet; a missing operand is omitted
func (t Tuple) Triplet() string {
	if t.Arg2 == "" {
		return fmt.Sprintf("(%s, %s, %s)", t.Op, t.Arg1, t.Result)
	}
	return fmt.Sprintf("(%s, %s, %s, %s)", t.Op, t.Arg1, t.Arg2, t.Result)
}

// Quadruple renders the tuple as a quadruple; a missing operand shows as '-'
func (t Tuple) Quadruple() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", t.Op, placeholder(t.Arg1), placeholder(t.Arg2), t.Result)
}

func placeholder(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ConversionResult holds the three-address code generated for an expression.
// FinalResult names the temporary or terminal holding the value of the whole
// expression.
type ConversionResult struct {
	Triplets    []Tuple
	Quadruples  []Tuple
	FinalResult string
}

// TripletsSummary renders the triplet listing
func (r ConversionResult) TripletsSummary() string {
	return summary("TRIPLETS", r.Triplets, Tuple.Triplet, r.FinalResult)
}

// QuadruplesSummary renders the quadruple listing
func (r ConversionResult) QuadruplesSummary() string {
	return summary("QUADRUPLES", r.Quadruples, Tuple.Quadruple, r.FinalResult)
}

func summary(title string, tuples []Tuple, render func(Tuple) string, final string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== INTERMEDIATE CODE (%s) ===\n", title)
	for i, t := range tuples {
		fmt.Fprintf(&sb, "%d: %s\n", i+1, render(t))
	}
	fmt.Fprintf(&sb, "Final result: %s\n", final)
	return sb.String()
}
