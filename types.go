package nbmd

import (
	"time"

	"github.com/alnah/go-nbmd/internal/notebook"
	"github.com/alnah/go-nbmd/internal/pipeline"
)

// Diagnostic records a lossy decision made while parsing Markdown back
// into cells. Line is 1-based; 0 means the whole document.
type Diagnostic = pipeline.Diagnostic

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind = pipeline.DiagnosticKind

// Diagnostic kinds.
const (
	DiagProvenance        = pipeline.DiagProvenance
	DiagTitle             = pipeline.DiagTitle
	DiagLocator           = pipeline.DiagLocator
	DiagOutput            = pipeline.DiagOutput
	DiagEmptyCell         = pipeline.DiagEmptyCell
	DiagUnterminatedFence = pipeline.DiagUnterminatedFence
	DiagFenceAudit        = pipeline.DiagFenceAudit
)

// Kernel is the kernelspec and language_info written into notebooks.
type Kernel = notebook.Kernel

// DefaultKernel returns the Python 3 kernel metadata.
func DefaultKernel() Kernel {
	return notebook.DefaultKernel()
}

// Direction tells which way a file was converted.
type Direction int

// Conversion directions.
const (
	ToMarkdown Direction = iota + 1
	ToNotebook
)

func (d Direction) String() string {
	switch d {
	case ToMarkdown:
		return "notebook to markdown"
	case ToNotebook:
		return "markdown to notebook"
	default:
		return "unknown"
	}
}

// NotebookInput contains notebook to Markdown parameters.
type NotebookInput struct {
	Notebook []byte // Notebook JSON (required)
	Title    string // Document title, usually the file stem (empty = "Untitled")
}

// MarkdownInput contains Markdown to notebook parameters.
type MarkdownInput struct {
	Markdown   string // Markdown content (may be empty)
	Title      string // Generated title to swallow, usually the file stem
	SourceName string // Recorded in the script header
}

// Stats summarizes one conversion.
type Stats struct {
	CodeCells     int
	MarkdownCells int
	InputBytes    int
	OutputBytes   int
}

// Reduction returns the percent size change from input to output.
// Positive means the output is smaller.
func (s Stats) Reduction() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return (1 - float64(s.OutputBytes)/float64(s.InputBytes)) * 100
}

// MarkdownResult is the outcome of NotebookToMarkdown.
type MarkdownResult struct {
	Markdown string
	HTML     string // Set when the HTML preview is enabled
	Language string // Fence tag resolved for the notebook
	Stats    Stats
}

// NotebookResult is the outcome of MarkdownToNotebook.
type NotebookResult struct {
	Notebook    []byte
	Script      string // Empty when script extraction is disabled
	Diagnostics []Diagnostic
	Stats       Stats
}

// FileInput contains ConvertFile parameters.
type FileInput struct {
	Path      string // .ipynb or .md file (required)
	Output    string // Explicit output path (optional)
	OutputDir string // Directory for outputs when Output is empty (optional)
}

// FileResult is the outcome of ConvertFile.
type FileResult struct {
	Input       string
	Direction   Direction
	Outputs     []string // Written paths, primary output first
	Stats       Stats
	Diagnostics []Diagnostic
	Duration    time.Duration
}
