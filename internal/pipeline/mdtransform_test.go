package pipeline

import (
	"context"
	"testing"
)

func TestLineEndingPreprocessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lf unchanged", "a\nb\n", "a\nb\n"},
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"bare cr", "a\rb", "a\nb"},
		{"bom stripped", "\ufeff# Title\n", "# Title\n"},
		{"inner bom kept", "a\ufeffb", "a\ufeffb"},
	}

	p := &LineEndingPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.expected {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLineEndingPreprocessor_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "a\r\nb"
	if got := (&LineEndingPreprocessor{}).PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("canceled context should return input unchanged, got %q", got)
	}
}
