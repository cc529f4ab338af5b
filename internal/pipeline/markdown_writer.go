package pipeline

import (
	"strings"

	"github.com/alnah/go-nbmd/internal/notebook"
)

// Provenance annotations written under the title. The reverse parser
// swallows lines starting with any of ProvenancePrefixes.
const (
	ColabAnnotation    = "*This notebook was created for Google Colab*"
	LanguagePrefix     = "*Language: "
	HorizontalRule     = "---"
	defaultTitle       = "Untitled"
	ProvenanceWindow   = 10 // lines (0-based index < 10) in which a bare rule is provenance
	colabPhrasePrefix  = "*This notebook was created"
	languagePhrasePref = "*Language:"
)

// ProvenancePrefixes lists the line prefixes recognized as converter
// annotations anywhere in a markdown cell.
var ProvenancePrefixes = []string{colabPhrasePrefix, languagePhrasePref}

// MarkdownWriter assembles rendered fragments into one Markdown document.
type MarkdownWriter struct{}

// Write returns the document: title header, provenance annotations, a
// horizontal rule, then each non-empty fragment separated by a blank line.
func (w *MarkdownWriter) Write(title string, meta notebook.Metadata, fragments []string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle
	}

	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	for _, line := range ProvenanceLines(meta) {
		b.WriteString(line + "\n\n")
	}
	b.WriteString(HorizontalRule + "\n")

	for _, f := range fragments {
		f = strings.TrimRight(f, "\n")
		if f == "" {
			continue
		}
		b.WriteString("\n" + f + "\n")
	}
	return b.String()
}

// ProvenanceLines returns the annotations implied by meta.
func ProvenanceLines(meta notebook.Metadata) []string {
	var lines []string
	if meta.Environment == notebook.EnvironmentColab {
		lines = append(lines, ColabAnnotation)
	}
	if meta.Language != "" {
		lines = append(lines, LanguagePrefix+meta.Language+"*")
	}
	return lines
}

// isProvenance reports whether line is a converter annotation. index is
// the 0-based line number in the document.
func isProvenance(line string, index int) bool {
	for _, p := range ProvenancePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return line == HorizontalRule && index < ProvenanceWindow
}
