package pipeline

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CountFencedBlocks returns the number of fenced code blocks a CommonMark
// parser finds in markdown, including ones nested in lists or quotes and
// ones opened with tildes or indentation.
func CountFencedBlocks(markdown string) int {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	n := 0
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && node.Kind() == ast.KindFencedCodeBlock {
			n++
		}
		return ast.WalkContinue, nil
	})
	return n
}

// AuditFences compares the lexer's fence count with CommonMark's and
// returns a diagnostic when they disagree. Disagreement means some fences
// were read differently than a Markdown renderer would read them.
func AuditFences(markdown string, lexed int) []Diagnostic {
	commonMark := CountFencedBlocks(markdown)
	if commonMark == lexed {
		return nil
	}
	return []Diagnostic{{
		Kind:    DiagFenceAudit,
		Message: fmt.Sprintf("line lexer saw %d fenced block(s), CommonMark sees %d", lexed, commonMark),
	}}
}
