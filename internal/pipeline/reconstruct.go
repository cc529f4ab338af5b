package pipeline

import (
	"fmt"
	"strings"

	"github.com/alnah/go-nbmd/internal/notebook"
)

// fenceState is the lexer state between lines.
type fenceState int

const (
	outsideFence fenceState = iota
	insideFence
	insideOutput
)

// ConversionContext is the transient state of one Markdown parse.
// A fresh context is created for every Reconstruct call.
type ConversionContext struct {
	current        notebook.Cell // open cell, nil when none
	currentLine    int           // 1-based line that opened current
	state          fenceState
	skippingOutput bool
	outputLine     int // line of the last output marker

	cells      []notebook.Cell
	startLines []int
	fences     int
	diags      []Diagnostic
}

// Reconstruction is the result of parsing Markdown back into cells.
type Reconstruction struct {
	Cells       []notebook.Cell
	Diagnostics []Diagnostic
	// Fences is the number of fenced blocks (code and output) the lexer
	// opened.
	Fences int
}

// Reconstructor rebuilds notebook cells from Markdown in a single pass.
// Parsing is total: any input yields a result.
type Reconstructor struct {
	// Title is the generated title text ("# <Title>") to swallow when it
	// opens the document. Empty disables title detection.
	Title string
}

// Reconstruct parses markdown (LF line endings) into compacted cells.
func (r *Reconstructor) Reconstruct(markdown string) *Reconstruction {
	lines := strings.Split(markdown, "\n")
	titleIndex := r.titleIndex(lines)

	ctx := &ConversionContext{}
	for i, line := range lines {
		if i == titleIndex {
			ctx.diag(DiagTitle, i+1, "generated title %q swallowed", line)
			continue
		}
		ctx.processLine(i, line)
	}
	ctx.finish()

	return &Reconstruction{
		Cells:       ctx.compact(),
		Diagnostics: ctx.diags,
		Fences:      ctx.fences,
	}
}

// titleIndex returns the line index of the generated title, or -1. The
// title is the first non-blank line, equals "# <Title>", and a bare rule
// follows within the provenance window.
func (r *Reconstructor) titleIndex(lines []string) int {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return -1
	}
	for i := 0; i < len(lines) && i < ProvenanceWindow; i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if lines[i] != "# "+title {
			return -1
		}
		for j := i + 1; j < len(lines) && j < ProvenanceWindow; j++ {
			if lines[j] == HorizontalRule {
				return i
			}
		}
		return -1
	}
	return -1
}

func (ctx *ConversionContext) processLine(i int, line string) {
	lineNo := i + 1

	switch ctx.state {
	case insideFence:
		if strings.HasPrefix(line, FenceMarker) {
			ctx.flush(true)
			ctx.state = outsideFence
			return
		}
		ctx.appendLine(line)
		return
	case insideOutput:
		if strings.HasPrefix(line, FenceMarker) {
			ctx.state = outsideFence
		}
		return
	}

	if ctx.skippingOutput {
		switch {
		case isOutputFence(line) && lineNo == ctx.outputLine+1:
			ctx.skippingOutput = false
			ctx.state = insideOutput
			ctx.fences++
			return
		case strings.HasPrefix(line, FenceMarker), strings.HasPrefix(line, "#"):
			ctx.skippingOutput = false
		default:
			return
		}
	}

	switch {
	case strings.HasPrefix(line, FenceMarker):
		ctx.flush(false)
		lang := strings.TrimSpace(line[len(FenceMarker):])
		if lang == "" {
			lang = notebook.DefaultLanguage
		}
		ctx.open(&notebook.CodeCell{Language: lang}, lineNo)
		ctx.state = insideFence
		ctx.fences++
	case line == OutputMarker:
		ctx.skippingOutput = true
		ctx.outputLine = lineNo
		ctx.diag(DiagOutput, lineNo, "output block discarded")
	case strings.HasPrefix(line, LocatorPrefix):
		ctx.diag(DiagLocator, lineNo, "cell locator %q dropped", line)
	default:
		if _, ok := ctx.current.(*notebook.MarkdownCell); !ok {
			ctx.flush(false)
			ctx.open(&notebook.MarkdownCell{}, lineNo)
		}
		if isProvenance(line, i) {
			ctx.diag(DiagProvenance, lineNo, "converter annotation %q swallowed", line)
			return
		}
		ctx.appendLine(line)
	}
}

// isOutputFence reports whether line opens a generated output block: an
// untagged fence.
func isOutputFence(line string) bool {
	return strings.HasPrefix(line, FenceMarker) && strings.TrimSpace(line[len(FenceMarker):]) == ""
}

func (ctx *ConversionContext) open(c notebook.Cell, lineNo int) {
	ctx.current = c
	ctx.currentLine = lineNo
}

func (ctx *ConversionContext) appendLine(line string) {
	switch c := ctx.current.(type) {
	case *notebook.MarkdownCell:
		c.Lines = append(c.Lines, line+"\n")
	case *notebook.CodeCell:
		c.Lines = append(c.Lines, line+"\n")
	}
}

// flush stores the open cell. Cells without lines are stored only when
// force is set (a closed fence always yields a cell, compacted later).
func (ctx *ConversionContext) flush(force bool) {
	if ctx.current == nil {
		return
	}
	if force || len(ctx.current.Source()) > 0 {
		ctx.cells = append(ctx.cells, ctx.current)
		ctx.startLines = append(ctx.startLines, ctx.currentLine)
	}
	ctx.current = nil
}

func (ctx *ConversionContext) finish() {
	switch ctx.state {
	case insideFence:
		ctx.diag(DiagUnterminatedFence, ctx.currentLine, "code fence not closed before end of input")
	case insideOutput:
		ctx.diag(DiagUnterminatedFence, 0, "output fence not closed before end of input")
	}
	ctx.flush(false)
}

// compact reports discarded code cells, then normalizes sources, drops
// empty cells, and assigns ordinals.
func (ctx *ConversionContext) compact() []notebook.Cell {
	for k, c := range ctx.cells {
		if _, ok := c.(*notebook.CodeCell); !ok {
			continue
		}
		if notebook.NormalizeSource(notebook.JoinSource(c.Source())) == "" {
			ctx.diag(DiagEmptyCell, ctx.startLines[k], "empty code cell discarded")
		}
	}
	return notebook.Compact(ctx.cells)
}

func (ctx *ConversionContext) diag(kind DiagnosticKind, line int, format string, args ...any) {
	ctx.diags = append(ctx.diags, Diagnostic{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)})
}
