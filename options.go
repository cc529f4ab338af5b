package nbmd

import (
	"time"

	"github.com/alnah/go-nbmd/internal/notebook"
	"github.com/alnah/go-nbmd/internal/pipeline"
)

// DefaultNotebookSuffix is appended to the stem of notebooks rebuilt from
// Markdown, so they never overwrite the notebook the Markdown came from.
const DefaultNotebookSuffix = "_from_md"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	imagePlaceholder string
	includeOutputs   bool
	defaultLanguage  string
	htmlPreview      bool
	htmlStyle        string
	kernel           notebook.Kernel
	script           bool
	notebookSuffix   string
	now              func() time.Time
}

func defaultConverterConfig() converterConfig {
	return converterConfig{
		imagePlaceholder: pipeline.DefaultImagePlaceholder,
		includeOutputs:   true,
		defaultLanguage:  notebook.DefaultLanguage,
		kernel:           notebook.DefaultKernel(),
		script:           true,
		notebookSuffix:   DefaultNotebookSuffix,
		now:              time.Now,
	}
}

// WithImagePlaceholder sets the text that replaces base64 images embedded
// in markdown cells. Empty keeps the default.
func WithImagePlaceholder(s string) Option {
	return func(c *Converter) {
		if s != "" {
			c.cfg.imagePlaceholder = s
		}
	}
}

// WithOutputs controls whether code cell text outputs are rendered.
func WithOutputs(include bool) Option {
	return func(c *Converter) {
		c.cfg.includeOutputs = include
	}
}

// WithDefaultLanguage sets the fence tag for notebooks that name no language.
func WithDefaultLanguage(lang string) Option {
	return func(c *Converter) {
		if lang != "" {
			c.cfg.defaultLanguage = lang
		}
	}
}

// WithHTMLPreview enables rendering the produced Markdown to HTML.
func WithHTMLPreview(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.htmlPreview = enabled
	}
}

// WithHTMLStyle sets the CSS embedded in the HTML preview. Empty leaves
// the page unstyled apart from code highlighting.
func WithHTMLStyle(css string) Option {
	return func(c *Converter) {
		c.cfg.htmlStyle = css
	}
}

// WithKernel sets the kernel metadata written into notebooks.
func WithKernel(k Kernel) Option {
	return func(c *Converter) {
		c.cfg.kernel = k
	}
}

// WithScript controls whether MarkdownToNotebook extracts a Python script.
func WithScript(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.script = enabled
	}
}

// WithNotebookSuffix sets the suffix ConvertFile appends to the stem of
// notebooks rebuilt from Markdown. Empty is allowed.
func WithNotebookSuffix(suffix string) Option {
	return func(c *Converter) {
		c.cfg.notebookSuffix = suffix
	}
}

// WithClock sets the time source for script headers.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("nbmd: WithClock requires a non-nil function")
	}
	return func(c *Converter) {
		c.cfg.now = now
	}
}
