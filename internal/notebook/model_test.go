package notebook_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-nbmd/internal/notebook"
)

// ---------------------------------------------------------------------------
// TestSplitSource - Line splitting with trailing newline semantics
// ---------------------------------------------------------------------------

func TestSplitSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single line", input: "print(1)", want: []string{"print(1)"}},
		{name: "two lines", input: "a\nb", want: []string{"a\n", "b"}},
		{name: "trailing newline", input: "a\nb\n", want: []string{"a\n", "b\n"}},
		{name: "blank line kept", input: "a\n\nb", want: []string{"a\n", "\n", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := notebook.SplitSource(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitSource(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if notebook.JoinSource(got) != tt.input {
				t.Errorf("JoinSource(SplitSource(%q)) = %q", tt.input, notebook.JoinSource(got))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeSource - Surrounding whitespace removal
// ---------------------------------------------------------------------------

func TestNormalizeSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \n\t\n  ", want: ""},
		{name: "leading blank lines", input: "\n\n# Title", want: "# Title"},
		{name: "trailing newlines", input: "x = 1\n\n\n", want: "x = 1"},
		{name: "first line indentation kept", input: "\n    indented\nnext", want: "    indented\nnext"},
		{name: "inner blank lines kept", input: "a\n\n\nb\n", want: "a\n\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := notebook.NormalizeSource(tt.input); got != tt.want {
				t.Errorf("NormalizeSource(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCompact - Empty cells are discarded, ordinals renumbered
// ---------------------------------------------------------------------------

func TestCompact(t *testing.T) {
	t.Parallel()

	cells := []notebook.Cell{
		&notebook.MarkdownCell{Position: 1, Lines: []string{"\n", "# Title\n", "\n"}},
		&notebook.MarkdownCell{Position: 2, Lines: []string{"   \n"}},
		&notebook.CodeCell{Position: 3, Lines: nil, Language: "python"},
		&notebook.CodeCell{Position: 4, Lines: []string{"a = 1\n", "b = 2\n"}, Language: "python"},
	}

	got := notebook.Compact(cells)
	want := []notebook.Cell{
		&notebook.MarkdownCell{Position: 1, Lines: []string{"# Title"}},
		&notebook.CodeCell{Position: 2, Lines: []string{"a = 1\n", "b = 2"}, Language: "python"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compact() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompact_Idempotent(t *testing.T) {
	t.Parallel()

	withEmpty := []notebook.Cell{
		&notebook.MarkdownCell{Position: 1, Lines: []string{"intro"}},
		&notebook.MarkdownCell{Position: 2, Lines: []string{""}},
		&notebook.CodeCell{Position: 3, Lines: []string{"\n"}},
		&notebook.CodeCell{Position: 4, Lines: []string{"x"}},
	}
	preRemoved := []notebook.Cell{withEmpty[0], withEmpty[3]}

	a := notebook.Compact(withEmpty)
	b := notebook.Compact(preRemoved)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("compaction differs (-with empty +pre-removed):\n%s", diff)
	}
	if diff := cmp.Diff(a, notebook.Compact(a)); diff != "" {
		t.Errorf("Compact is not idempotent:\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestMatch - Variant dispatch
// ---------------------------------------------------------------------------

func TestMatch(t *testing.T) {
	t.Parallel()

	kind := func(c notebook.Cell) string {
		return notebook.Match(c,
			func(*notebook.MarkdownCell) string { return "markdown" },
			func(*notebook.CodeCell) string { return "code" },
		)
	}

	if got := kind(&notebook.MarkdownCell{}); got != "markdown" {
		t.Errorf("Match(markdown) = %q", got)
	}
	if got := kind(&notebook.CodeCell{}); got != "code" {
		t.Errorf("Match(code) = %q", got)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	code, md := notebook.Count([]notebook.Cell{
		&notebook.MarkdownCell{},
		&notebook.CodeCell{},
		&notebook.CodeCell{},
	})
	if code != 2 || md != 1 {
		t.Errorf("Count() = (%d, %d), want (2, 1)", code, md)
	}
}
