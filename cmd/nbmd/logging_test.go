package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	nbmd "github.com/alnah/go-nbmd"
)

// ---------------------------------------------------------------------------
// TestLogDiagnostics - Levels per verbosity
// ---------------------------------------------------------------------------

func TestLogDiagnostics(t *testing.T) {
	t.Parallel()

	diags := []nbmd.Diagnostic{
		{Kind: nbmd.DiagTitle, Line: 1, Message: "generated title swallowed"},
		{Kind: nbmd.DiagUnterminatedFence, Line: 5, Message: "code fence not closed"},
	}

	tests := []struct {
		name    string
		quiet   bool
		verbose bool
		want    []string
		exclude []string
	}{
		{
			name:    "default",
			want:    []string{`level=WARN msg="code fence not closed" file=a.md kind=unterminated-fence line=5`},
			exclude: []string{"kind=title"},
		},
		{
			name:    "verbose",
			verbose: true,
			want:    []string{`level=DEBUG msg="generated title swallowed" file=a.md kind=title line=1`, "kind=unterminated-fence"},
		},
		{
			name:    "quiet",
			quiet:   true,
			exclude: []string{"kind="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logDiagnostics(context.Background(), newLogger(&buf, tt.quiet, tt.verbose), "a.md", diags)

			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("log missing %q:\n%s", want, out)
				}
			}
			for _, bad := range tt.exclude {
				if strings.Contains(out, bad) {
					t.Errorf("log should not contain %q:\n%s", bad, out)
				}
			}
			if strings.Contains(out, "time=") {
				t.Errorf("log should not carry timestamps:\n%s", out)
			}
		})
	}
}
