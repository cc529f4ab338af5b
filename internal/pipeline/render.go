package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-nbmd/internal/notebook"
)

// Markers shared by the renderer and the reverse parser.
const (
	FenceMarker   = "```"
	OutputMarker  = "**Output:**"
	LocatorPrefix = "## Code Cell"
)

// DefaultImagePlaceholder replaces inline images embedded as base64 data.
const DefaultImagePlaceholder = "[Image omitted]"

var (
	// ![alt](data:image/png;base64,...)
	embeddedImagePattern = regexp.MustCompile(`!\[.*?\]\(data:image/.*?;base64,.*?\)`)

	// "Open in Colab" badge links
	colabBadgePattern = regexp.MustCompile(`<a href="https://colab\.research\.google\.com/.*?</a>`)
)

// CellRenderer renders single cells into Markdown fragments.
type CellRenderer struct {
	// ImagePlaceholder replaces embedded images. Empty uses
	// DefaultImagePlaceholder.
	ImagePlaceholder string
	// IncludeOutputs appends text outputs after code blocks.
	IncludeOutputs bool
	// DefaultLanguage tags code cells whose notebook names no language.
	DefaultLanguage string
}

// NewCellRenderer returns a renderer with default placeholder and outputs on.
func NewCellRenderer() *CellRenderer {
	return &CellRenderer{
		ImagePlaceholder: DefaultImagePlaceholder,
		IncludeOutputs:   true,
		DefaultLanguage:  notebook.DefaultLanguage,
	}
}

// Render returns the Markdown fragment for c, or "" when the cell has
// nothing to show.
func (r *CellRenderer) Render(c notebook.Cell) string {
	return notebook.Match(c, r.renderMarkdown, r.renderCode)
}

func (r *CellRenderer) renderMarkdown(c *notebook.MarkdownCell) string {
	return CleanMarkdown(notebook.JoinSource(c.Lines), r.placeholder())
}

func (r *CellRenderer) renderCode(c *notebook.CodeCell) string {
	source := notebook.NormalizeSource(notebook.JoinSource(c.Lines))
	if source == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n\n", LocatorPrefix, c.Position)
	b.WriteString(FenceMarker + ResolveLanguage(c.Language, r.DefaultLanguage) + "\n")
	b.WriteString(source + "\n")
	b.WriteString(FenceMarker + "\n")

	if r.IncludeOutputs {
		if text, ok := outputText(c.Outputs); ok {
			b.WriteString("\n" + OutputMarker + "\n")
			b.WriteString(FenceMarker + "\n")
			if text != "" {
				b.WriteString(text + "\n")
			}
			b.WriteString(FenceMarker + "\n")
		}
	}
	return b.String()
}

func (r *CellRenderer) placeholder() string {
	if r.ImagePlaceholder == "" {
		return DefaultImagePlaceholder
	}
	return r.ImagePlaceholder
}

// CleanMarkdown replaces embedded images with placeholder, removes Colab
// badges, and drops surrounding blank lines.
func CleanMarkdown(text, placeholder string) string {
	text = embeddedImagePattern.ReplaceAllLiteralString(text, placeholder)
	text = colabBadgePattern.ReplaceAllLiteralString(text, "")
	return notebook.NormalizeSource(text)
}

// outputText concatenates text-bearing outputs in order. ok is false when
// there are none.
func outputText(outputs []notebook.Output) (text string, ok bool) {
	if len(outputs) == 0 {
		return "", false
	}
	var b strings.Builder
	for _, o := range outputs {
		b.WriteString(o.Text)
	}
	return strings.TrimRight(b.String(), "\n"), true
}
