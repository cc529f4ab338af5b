package nbmd

import (
	"context"
	"fmt"

	"github.com/alnah/go-nbmd/internal/notebook"
	"github.com/alnah/go-nbmd/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.LineEndingPreprocessor)(nil)
	_ pipeline.HTMLRenderer         = (*pipeline.HTMLPreviewer)(nil)
)

// Converter runs both conversion directions between notebooks and Markdown.
// A Converter holds no per-call state and is safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	preprocessor pipeline.MarkdownPreprocessor
	renderer     *pipeline.CellRenderer
	writer       *pipeline.MarkdownWriter
	htmlRenderer pipeline.HTMLRenderer
	script       *pipeline.ScriptExtractor
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithOutputs, WithKernel).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg:          defaultConverterConfig(),
		preprocessor: &pipeline.LineEndingPreprocessor{},
		writer:       &pipeline.MarkdownWriter{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.renderer = &pipeline.CellRenderer{
		ImagePlaceholder: c.cfg.imagePlaceholder,
		IncludeOutputs:   c.cfg.includeOutputs,
		DefaultLanguage:  c.cfg.defaultLanguage,
	}
	c.script = &pipeline.ScriptExtractor{Now: c.cfg.now}

	// Goldmark setup is skipped unless the preview is wanted
	if c.cfg.htmlPreview && c.htmlRenderer == nil {
		c.htmlRenderer = pipeline.NewHTMLPreviewer(c.cfg.htmlStyle)
	}

	return c
}

// NotebookToMarkdown renders a notebook as Markdown.
// Returns ErrMalformedDocument when the notebook cannot be decoded.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) NotebookToMarkdown(ctx context.Context, input NotebookInput) (result *MarkdownResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if len(input.Notebook) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, ErrEmptyInput)
	}

	doc, err := notebook.Decode(input.Notebook)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	meta := doc.Metadata
	if meta.Language != "" {
		meta.Language = pipeline.ResolveLanguage(meta.Language, c.cfg.defaultLanguage)
	}

	fragments := make([]string, 0, len(doc.Cells))
	for _, cell := range doc.Cells {
		fragments = append(fragments, c.renderer.Render(cell))
	}
	md := c.writer.Write(input.Title, meta, fragments)

	code, prose := notebook.Count(doc.Cells)
	result = &MarkdownResult{
		Markdown: md,
		Language: pipeline.ResolveLanguage(meta.Language, c.cfg.defaultLanguage),
		Stats: Stats{
			CodeCells:     code,
			MarkdownCells: prose,
			InputBytes:    len(input.Notebook),
			OutputBytes:   len(md),
		},
	}

	if c.htmlRenderer != nil {
		page, err := c.htmlRenderer.ToHTML(ctx, input.Title, md)
		if err != nil {
			return nil, fmt.Errorf("rendering HTML preview: %w", err)
		}
		result.HTML = page
	}

	return result, nil
}

// MarkdownToNotebook rebuilds a notebook from Markdown. Parsing never
// fails: lossy decisions are reported in the result's Diagnostics.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) MarkdownToNotebook(ctx context.Context, input MarkdownInput) (result *NotebookResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rec := (&pipeline.Reconstructor{Title: input.Title}).Reconstruct(md)
	diags := append(rec.Diagnostics, pipeline.AuditFences(md, rec.Fences)...)

	data, err := notebook.Encode(rec.Cells, c.cfg.kernel)
	if err != nil {
		return nil, fmt.Errorf("encoding notebook: %w", err)
	}

	code, prose := notebook.Count(rec.Cells)
	result = &NotebookResult{
		Notebook:    data,
		Diagnostics: diags,
		Stats: Stats{
			CodeCells:     code,
			MarkdownCells: prose,
			InputBytes:    len(input.Markdown),
			OutputBytes:   len(data),
		},
	}

	if c.cfg.script {
		result.Script = c.script.Extract(md, input.SourceName)
	}

	return result, nil
}
