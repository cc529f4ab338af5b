// Package notebook holds the document model shared by both conversion
// directions and the codec for the notebook container format.
package notebook

import (
	"fmt"
	"strings"
)

// DefaultLanguage is the fence language used when a code cell has none.
const DefaultLanguage = "python"

// EnvironmentColab marks documents authored for Google Colab.
const EnvironmentColab = "colab"

// Document is an ordered sequence of cells plus notebook metadata.
type Document struct {
	Cells    []Cell
	Metadata Metadata
}

// Metadata carries the parts of the notebook metadata block the
// converter cares about.
type Metadata struct {
	DisplayName string // kernelspec.display_name
	Language    string // language_info.name
	Environment string // "colab" when the notebook has a colab block
}

// Cell is a closed variant over *MarkdownCell and *CodeCell.
// Use Match for exhaustive handling.
type Cell interface {
	// Ordinal is the 1-based position assigned when the cell was parsed.
	Ordinal() int
	// Source returns the cell's lines. Every line except the last ends
	// with "\n".
	Source() []string
	isCell()
}

// MarkdownCell is a prose cell.
type MarkdownCell struct {
	Position int
	Lines    []string
}

// CodeCell is an executable source cell.
type CodeCell struct {
	Position int
	Lines    []string
	Language string
	Outputs  []Output
}

func (c *MarkdownCell) Ordinal() int     { return c.Position }
func (c *MarkdownCell) Source() []string { return c.Lines }
func (*MarkdownCell) isCell()            {}

func (c *CodeCell) Ordinal() int     { return c.Position }
func (c *CodeCell) Source() []string { return c.Lines }
func (*CodeCell) isCell()            {}

// OutputKind tags the payload carried by an Output.
type OutputKind int

const (
	// OutputText is a stream output ("text" field).
	OutputText OutputKind = iota
	// OutputMimeText is the text/plain entry of a rich output.
	OutputMimeText
)

// String returns the output kind name.
func (k OutputKind) String() string {
	switch k {
	case OutputText:
		return "text"
	case OutputMimeText:
		return "mimeText"
	default:
		return fmt.Sprintf("OutputKind(%d)", int(k))
	}
}

// Output is a text-bearing execution output. Binary outputs are never
// represented.
type Output struct {
	Kind OutputKind
	Text string
}

// Match dispatches on the concrete cell type. Both handlers are required,
// so every caller handles every variant.
func Match[T any](c Cell, onMarkdown func(*MarkdownCell) T, onCode func(*CodeCell) T) T {
	switch cell := c.(type) {
	case *MarkdownCell:
		return onMarkdown(cell)
	case *CodeCell:
		return onCode(cell)
	default:
		panic(fmt.Sprintf("notebook: unexpected cell type %T", c))
	}
}

// Count returns the number of code and markdown cells in cells.
func Count(cells []Cell) (code, markdown int) {
	for _, c := range cells {
		Match(c,
			func(*MarkdownCell) struct{} { markdown++; return struct{}{} },
			func(*CodeCell) struct{} { code++; return struct{}{} },
		)
	}
	return code, markdown
}

// JoinSource concatenates source lines into a single text.
func JoinSource(lines []string) string {
	return strings.Join(lines, "")
}

// SplitSource splits text into notebook source lines: every line except
// the last keeps its trailing "\n". Empty text yields no lines.
func SplitSource(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// NormalizeSource drops leading blank lines and trailing whitespace.
// Indentation of the first non-blank line is kept.
func NormalizeSource(text string) string {
	text = strings.TrimRight(text, " \t\r\n\f\v")
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 || strings.TrimSpace(text[:i]) != "" {
			break
		}
		text = text[i+1:]
	}
	return text
}

// Compact returns new cells for those whose normalized source is
// non-empty, with the normalized source re-split into lines and ordinals
// renumbered from 1. The input cells are not modified.
func Compact(cells []Cell) []Cell {
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		text := NormalizeSource(JoinSource(c.Source()))
		if text == "" {
			continue
		}
		lines := SplitSource(text)
		position := len(out) + 1
		out = append(out, Match(c,
			func(*MarkdownCell) Cell {
				return &MarkdownCell{Position: position, Lines: lines}
			},
			func(code *CodeCell) Cell {
				return &CodeCell{Position: position, Lines: lines, Language: code.Language, Outputs: code.Outputs}
			},
		))
	}
	return out
}
