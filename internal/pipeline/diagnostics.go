package pipeline

import "fmt"

// DiagnosticKind classifies lossy decisions made while parsing Markdown.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DiagProvenance        DiagnosticKind = "provenance"
	DiagTitle             DiagnosticKind = "title"
	DiagLocator           DiagnosticKind = "locator"
	DiagOutput            DiagnosticKind = "output"
	DiagEmptyCell         DiagnosticKind = "empty-cell"
	DiagUnterminatedFence DiagnosticKind = "unterminated-fence"
	DiagFenceAudit        DiagnosticKind = "fence-audit"
)

// Diagnostic records one discarded or suspicious piece of input.
// Line is 1-based; 0 means the whole document.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
}

// CountKind returns how many diagnostics have the given kind.
func CountKind(diags []Diagnostic, kind DiagnosticKind) int {
	n := 0
	for _, d := range diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
