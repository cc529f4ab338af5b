package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-nbmd/internal/notebook"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// cellView flattens a cell for comparison.
type cellView struct {
	Kind     string
	Position int
	Source   string
	Language string
	Outputs  int
}

func viewCells(cells []notebook.Cell) []cellView {
	views := make([]cellView, 0, len(cells))
	for _, c := range cells {
		views = append(views, notebook.Match(c,
			func(m *notebook.MarkdownCell) cellView {
				return cellView{Kind: "markdown", Position: m.Position, Source: notebook.JoinSource(m.Lines)}
			},
			func(k *notebook.CodeCell) cellView {
				return cellView{
					Kind:     "code",
					Position: k.Position,
					Source:   notebook.JoinSource(k.Lines),
					Language: k.Language,
					Outputs:  len(k.Outputs),
				}
			},
		))
	}
	return views
}

func renderDocument(title string, meta notebook.Metadata, cells []notebook.Cell) string {
	r := NewCellRenderer()
	fragments := make([]string, 0, len(cells))
	for _, c := range cells {
		fragments = append(fragments, r.Render(c))
	}
	return (&MarkdownWriter{}).Write(title, meta, fragments)
}

// ---------------------------------------------------------------------------
// Round trip
// ---------------------------------------------------------------------------

func TestReconstruct_RoundTripDropsOutputsAndEmptyCells(t *testing.T) {
	t.Parallel()

	doc := []notebook.Cell{
		&notebook.MarkdownCell{Position: 1, Lines: []string{"# Title"}},
		&notebook.CodeCell{
			Position: 2,
			Lines:    []string{"print(1)"},
			Language: "python",
			Outputs:  []notebook.Output{{Kind: notebook.OutputText, Text: "1\n"}},
		},
		&notebook.MarkdownCell{Position: 3, Lines: []string{""}},
	}
	md := renderDocument("lesson", notebook.Metadata{Language: "python"}, doc)

	for _, want := range []string{"# Title\n", "```python\nprint(1)\n```\n", OutputMarker + "\n```\n1\n```\n"} {
		if !strings.Contains(md, want) {
			t.Errorf("rendered markdown missing %q:\n%s", want, md)
		}
	}
	if !strings.HasSuffix(md, "```\n") || strings.HasSuffix(md, "\n\n") {
		t.Errorf("rendered markdown has a trailing empty section:\n%q", md)
	}

	got := (&Reconstructor{Title: "lesson"}).Reconstruct(md)

	want := []cellView{
		{Kind: "markdown", Position: 1, Source: "# Title"},
		{Kind: "code", Position: 2, Source: "print(1)", Language: "python"},
	}
	if diff := cmp.Diff(want, viewCells(got.Cells)); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
	if got.Fences != 2 {
		t.Errorf("Fences = %d, want 2", got.Fences)
	}
	if n := CountKind(got.Diagnostics, DiagTitle); n != 1 {
		t.Errorf("title diagnostics = %d, want 1", n)
	}
	if n := CountKind(got.Diagnostics, DiagProvenance); n != 2 {
		t.Errorf("provenance diagnostics = %d, want 2 (language line and rule)", n)
	}
	if n := CountKind(got.Diagnostics, DiagOutput); n != 1 {
		t.Errorf("output diagnostics = %d, want 1", n)
	}
	if n := CountKind(got.Diagnostics, DiagLocator); n != 1 {
		t.Errorf("locator diagnostics = %d, want 1", n)
	}
}

func TestReconstruct_PreservesOrder(t *testing.T) {
	t.Parallel()

	doc := []notebook.Cell{
		&notebook.MarkdownCell{Position: 1, Lines: []string{"first"}},
		&notebook.CodeCell{Position: 2, Lines: []string{"a = 1"}},
		&notebook.MarkdownCell{Position: 3, Lines: []string{"second"}},
		&notebook.CodeCell{Position: 4, Lines: []string{"b = 2\n", "c = 3"}},
		&notebook.CodeCell{Position: 5, Lines: []string{"d = 4"}},
	}
	md := renderDocument("order", notebook.Metadata{}, doc)
	got := (&Reconstructor{Title: "order"}).Reconstruct(md)

	want := []cellView{
		{Kind: "markdown", Position: 1, Source: "first"},
		{Kind: "code", Position: 2, Source: "a = 1", Language: "python"},
		{Kind: "markdown", Position: 3, Source: "second"},
		{Kind: "code", Position: 4, Source: "b = 2\nc = 3", Language: "python"},
		{Kind: "code", Position: 5, Source: "d = 4", Language: "python"},
	}
	if diff := cmp.Diff(want, viewCells(got.Cells)); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Lexing rules
// ---------------------------------------------------------------------------

func TestReconstruct_Lexing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		input    string
		expected []cellView
		diags    map[DiagnosticKind]int
	}{
		{
			name:  "untagged fence defaults to python",
			input: "```\nx = 1\n```\n",
			expected: []cellView{
				{Kind: "code", Position: 1, Source: "x = 1", Language: "python"},
			},
		},
		{
			name:  "fence tag kept",
			input: "intro\n```sql\nSELECT 1;\n```\n",
			expected: []cellView{
				{Kind: "markdown", Position: 1, Source: "intro"},
				{Kind: "code", Position: 2, Source: "SELECT 1;", Language: "sql"},
			},
		},
		{
			name:  "unterminated fence keeps content",
			input: "```python\nx = 1\n",
			expected: []cellView{
				{Kind: "code", Position: 1, Source: "x = 1", Language: "python"},
			},
			diags: map[DiagnosticKind]int{DiagUnterminatedFence: 1},
		},
		{
			name:     "empty fence discarded",
			input:    "```python\n```\n",
			expected: []cellView{},
			diags:    map[DiagnosticKind]int{DiagEmptyCell: 1},
		},
		{
			name:  "output skip ends at heading",
			input: "**Output:**\nstray text\n# Next\nbody\n",
			expected: []cellView{
				{Kind: "markdown", Position: 1, Source: "# Next\nbody"},
			},
			diags: map[DiagnosticKind]int{DiagOutput: 1},
		},
		{
			name:  "output fence content never becomes code",
			input: "```python\nprint(2)\n```\n**Output:**\n```\n2\n```\nafter\n",
			expected: []cellView{
				{Kind: "code", Position: 1, Source: "print(2)", Language: "python"},
				{Kind: "markdown", Position: 2, Source: "after"},
			},
			diags: map[DiagnosticKind]int{DiagOutput: 1},
		},
		{
			name:  "tagged fence after output text opens a code cell",
			input: "Intro\n\n**Output:**\nsee below\n```python\nprint(3)\n```\n",
			expected: []cellView{
				{Kind: "markdown", Position: 1, Source: "Intro"},
				{Kind: "code", Position: 2, Source: "print(3)", Language: "python"},
			},
			diags: map[DiagnosticKind]int{DiagOutput: 1},
		},
		{
			name:  "tagged fence right after output marker is code",
			input: "**Output:**\n```r\nx <- 1\n```\n",
			expected: []cellView{
				{Kind: "code", Position: 1, Source: "x <- 1", Language: "r"},
			},
			diags: map[DiagnosticKind]int{DiagOutput: 1},
		},
		{
			name:  "untagged fence not adjacent to output marker is code",
			input: "**Output:**\nstray\n```\nx = 1\n```\n",
			expected: []cellView{
				{Kind: "code", Position: 1, Source: "x = 1", Language: "python"},
			},
			diags: map[DiagnosticKind]int{DiagOutput: 1},
		},
		{
			name:  "locator dropped",
			input: "## Code Cell 7\n\n```python\nx\n```\n",
			expected: []cellView{
				{Kind: "code", Position: 1, Source: "x", Language: "python"},
			},
			diags: map[DiagnosticKind]int{DiagLocator: 1},
		},
		{
			name:  "provenance phrase swallowed anywhere",
			input: strings.Repeat("text\n", 20) + "*Language: r*\nmore\n",
			expected: []cellView{
				{Kind: "markdown", Position: 1, Source: strings.Repeat("text\n", 20) + "more"},
			},
			diags: map[DiagnosticKind]int{DiagProvenance: 1},
		},
		{
			name:  "rule after window kept",
			input: strings.Repeat("text\n", 12) + "---\nend\n",
			expected: []cellView{
				{Kind: "markdown", Position: 1, Source: strings.Repeat("text\n", 12) + "---\nend"},
			},
		},
		{
			name:  "title without rule kept",
			title: "doc",
			input: "# doc\n\nbody\n",
			expected: []cellView{
				{Kind: "markdown", Position: 1, Source: "# doc\n\nbody"},
			},
		},
		{
			name:  "other heading not swallowed",
			title: "doc",
			input: "# Something else\n\n---\n\nbody\n",
			expected: []cellView{
				{Kind: "markdown", Position: 1, Source: "# Something else\n\n\nbody"},
			},
			diags: map[DiagnosticKind]int{DiagTitle: 0, DiagProvenance: 1},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []cellView{},
		},
		{
			name:  "indentation inside fence preserved",
			input: "```python\ndef f():\n    return 1\n```\n",
			expected: []cellView{
				{Kind: "code", Position: 1, Source: "def f():\n    return 1", Language: "python"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := (&Reconstructor{Title: tt.title}).Reconstruct(tt.input)

			if diff := cmp.Diff(tt.expected, viewCells(got.Cells)); diff != "" {
				t.Errorf("cells mismatch (-want +got):\n%s", diff)
			}
			for kind, n := range tt.diags {
				if c := CountKind(got.Diagnostics, kind); c != n {
					t.Errorf("%s diagnostics = %d, want %d (all: %v)", kind, c, n, got.Diagnostics)
				}
			}
		})
	}
}

func TestReconstruct_FreshStatePerCall(t *testing.T) {
	t.Parallel()

	r := &Reconstructor{}
	first := r.Reconstruct("```python\nunclosed\n")
	second := r.Reconstruct("plain\n")

	if len(first.Cells) != 1 {
		t.Fatalf("first call: got %d cells, want 1", len(first.Cells))
	}
	want := []cellView{{Kind: "markdown", Position: 1, Source: "plain"}}
	if diff := cmp.Diff(want, viewCells(second.Cells)); diff != "" {
		t.Errorf("second call inherited state (-want +got):\n%s", diff)
	}
	if len(second.Diagnostics) != 0 {
		t.Errorf("second call diagnostics = %v, want none", second.Diagnostics)
	}
}

func TestDiagnostic_String(t *testing.T) {
	t.Parallel()

	d := Diagnostic{Kind: DiagOutput, Line: 4, Message: "output block discarded"}
	if got, want := d.String(), "line 4: output: output block discarded"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	d = Diagnostic{Kind: DiagFenceAudit, Message: "mismatch"}
	if got, want := d.String(), "fence-audit: mismatch"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
