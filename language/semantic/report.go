// File: semantic/report.go
package semantic

import (
	"fmt"
	"strings"
)

// Severity of a diagnostic
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "WARNING"
	}
	return "ERROR"
}

// Diagnostic is a single semantic finding tied to a source line
type Diagnostic struct {
	Severity Severity
	Line     int
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s (line %d): %s", d.Severity, d.Line, d.Message)
}

// CycleInfo describes one detected loop keyword
type CycleInfo struct {
	Keyword    string
	Line       int
	Position   int
	WellFormed bool
}

// Report is the result of a validation pass
type Report struct {
	Cycles      []CycleInfo
	Diagnostics []Diagnostic
}

// Errors returns the error diagnostics
func (r *Report) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

// Warnings returns the warning diagnostics
func (r *Report) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

// HasErrors reports whether any error was found
func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

func (r *Report) filter(severity Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == severity {
			out = append(out, d)
		}
	}
	return out
}

// String renders the text report
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("=== CYCLE SEMANTIC ANALYSIS ===\n")
	fmt.Fprintf(&sb, "Total cycles detected: %d\n\n", len(r.Cycles))

	if len(r.Cycles) == 0 {
		sb.WriteString("No cycles were detected in the code.\n")
		sb.WriteString("Note: the language is functional; while, for, loop and ciclo are an imperative extension.\n")
		return sb.String()
	}

	sb.WriteString("--- INFORMATION ---\n")
	for _, c := range r.Cycles {
		fmt.Fprintf(&sb, "Cycle detected: '%s' at line %d (position %d)\n", c.Keyword, c.Line, c.Position)
		if c.WellFormed {
			sb.WriteString("  -> structure is well formed\n")
		}
	}
	sb.WriteString("\n")

	if len(r.Diagnostics) == 0 {
		sb.WriteString("All cycles are well formed.\n")
		return sb.String()
	}

	writeSection(&sb, "--- SEMANTIC ERRORS ---", r.Errors())
	if warnings := r.Warnings(); len(warnings) > 0 {
		if r.HasErrors() {
			sb.WriteString("\n")
		}
		writeSection(&sb, "--- WARNINGS ---", warnings)
	}

	return sb.String()
}

func writeSection(sb *strings.Builder, header string, diags []Diagnostic) {
	if len(diags) == 0 {
		return
	}
	sb.WriteString(header + "\n")
	for i, d := range diags {
		fmt.Fprintf(sb, "%d. %s\n", i+1, d)
	}
}
