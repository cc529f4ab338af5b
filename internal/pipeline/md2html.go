package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLPreview indicates the HTML preview could not be rendered.
var ErrHTMLPreview = errors.New("HTML preview rendering failed")

// previewTemplate wraps Goldmark's fragment output in a complete HTML5
// document. Code blocks use inline chroma styles so the file stands alone.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
%s</head>
<body>
%s
</body>
</html>`

// HTMLRenderer abstracts Markdown to HTML rendering.
type HTMLRenderer interface {
	ToHTML(ctx context.Context, title, content string) (string, error)
}

// HTMLPreviewer renders converted Markdown to a standalone HTML page.
type HTMLPreviewer struct {
	md  goldmark.Markdown
	css string
}

// NewHTMLPreviewer creates an HTMLPreviewer with GFM and syntax highlighting.
// A non-empty css is embedded in a <style> element.
func NewHTMLPreviewer(css string) *HTMLPreviewer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithXHTML(),
			// No WithUnsafe: raw HTML left in notebook markdown is not emitted.
		),
	)
	return &HTMLPreviewer{md: md, css: css}
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Goldmark has no context support, so rendering runs in a goroutine and
// the call returns early on cancellation.
func (p *HTMLPreviewer) ToHTML(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := p.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLPreview, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, html.EscapeString(title), p.styleBlock(), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// styleBlock returns the <style> element for the head, or "".
// A literal "</style" in the sheet is broken up so it cannot close the element.
func (p *HTMLPreviewer) styleBlock() string {
	if strings.TrimSpace(p.css) == "" {
		return ""
	}
	css := strings.ReplaceAll(p.css, "</style", "<\\/style")
	return "<style>\n" + strings.TrimRight(css, "\n") + "\n</style>\n"
}
