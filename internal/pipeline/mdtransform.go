package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// utf8BOM is dropped from the start of Markdown input.
const utf8BOM = "\ufeff"

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// LineEndingPreprocessor prepares Markdown for line-oriented parsing.
type LineEndingPreprocessor struct{}

// PreprocessMarkdown strips a leading BOM and converts \r\n and \r to \n.
func (p *LineEndingPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, utf8BOM)
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
