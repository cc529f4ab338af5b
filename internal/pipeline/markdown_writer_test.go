package pipeline

import (
	"strings"
	"testing"

	"github.com/alnah/go-nbmd/internal/notebook"
)

func TestMarkdownWriter_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		title     string
		meta      notebook.Metadata
		fragments []string
		expected  string
	}{
		{
			name:      "no provenance",
			title:     "lesson",
			fragments: []string{"# Intro", "", "## Code Cell 2\n\n```python\nx\n```\n"},
			expected:  "# lesson\n\n---\n\n# Intro\n\n## Code Cell 2\n\n```python\nx\n```\n",
		},
		{
			name:      "colab and language",
			title:     "lesson",
			meta:      notebook.Metadata{Language: "python", Environment: notebook.EnvironmentColab},
			fragments: []string{"text"},
			expected: "# lesson\n\n" +
				"*This notebook was created for Google Colab*\n\n" +
				"*Language: python*\n\n" +
				"---\n\ntext\n",
		},
		{
			name:     "empty title",
			title:    "  ",
			expected: "# Untitled\n\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := &MarkdownWriter{}
			got := w.Write(tt.title, tt.meta, tt.fragments)
			if got != tt.expected {
				t.Errorf("Write() =\n%q\nwant\n%q", got, tt.expected)
			}
		})
	}
}

func TestIsProvenance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line  string
		index int
		want  bool
	}{
		{ColabAnnotation, 50, true},
		{"*Language: python*", 2, true},
		{"*Language:R*", 200, true},
		{"---", 4, true},
		{"---", 9, true},
		{"---", 10, false},
		{"----", 2, false},
		{"*This notebook was created by hand*", 30, true},
		{"*Languages are fun*", 1, false},
		{"plain text", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			if got := isProvenance(tt.line, tt.index); got != tt.want {
				t.Errorf("isProvenance(%q, %d) = %v, want %v", tt.line, tt.index, got, tt.want)
			}
		})
	}
}

func TestProvenanceLines_WrittenLinesAreSwallowed(t *testing.T) {
	t.Parallel()

	meta := notebook.Metadata{Language: "julia", Environment: notebook.EnvironmentColab}
	for _, line := range ProvenanceLines(meta) {
		if !isProvenance(line, 100) {
			t.Errorf("written annotation %q is not recognized as provenance", line)
		}
		if !strings.HasPrefix(line, "*") {
			t.Errorf("annotation %q should be emphasized", line)
		}
	}
}
