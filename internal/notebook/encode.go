package notebook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Kernel describes the fixed top-level metadata written into generated
// notebooks so that Jupyter and Colab recognize them.
type Kernel struct {
	DisplayName     string
	Language        string
	Name            string
	LanguageVersion string
	Colab           bool
}

// DefaultKernel returns the Python 3 kernel descriptor with a Colab block.
func DefaultKernel() Kernel {
	return Kernel{
		DisplayName:     "Python 3",
		Language:        "python",
		Name:            "python3",
		LanguageVersion: "3.9.0",
		Colab:           true,
	}
}

type encodedNotebook struct {
	Cells         []any           `json:"cells"`
	Metadata      encodedMetadata `json:"metadata"`
	NBFormat      int             `json:"nbformat"`
	NBFormatMinor int             `json:"nbformat_minor"`
}

type encodedMetadata struct {
	KernelSpec   kernelSpec   `json:"kernelspec"`
	LanguageInfo languageInfo `json:"language_info"`
	Colab        *colabBlock  `json:"colab,omitempty"`
}

type kernelSpec struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
	Name        string `json:"name"`
}

type codeMirrorMode struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

type languageInfo struct {
	CodeMirrorMode    *codeMirrorMode `json:"codemirror_mode,omitempty"`
	FileExtension     string          `json:"file_extension,omitempty"`
	MimeType          string          `json:"mimetype,omitempty"`
	Name              string          `json:"name"`
	NBConvertExporter string          `json:"nbconvert_exporter,omitempty"`
	PygmentsLexer     string          `json:"pygments_lexer,omitempty"`
	Version           string          `json:"version,omitempty"`
}

type colabBlock struct {
	Provenance     []any `json:"provenance"`
	PrivateOutputs bool  `json:"private_outputs"`
}

type encodedMarkdownCell struct {
	CellType string         `json:"cell_type"`
	Metadata map[string]any `json:"metadata"`
	Source   []string       `json:"source"`
}

type encodedCodeCell struct {
	CellType       string         `json:"cell_type"`
	Metadata       map[string]any `json:"metadata"`
	Source         []string       `json:"source"`
	Outputs        []any          `json:"outputs"`
	ExecutionCount *int           `json:"execution_count"`
}

// Encode serializes cells as a format 4.4 notebook. Code cells are written
// with an empty outputs list and a null execution count.
func Encode(cells []Cell, k Kernel) ([]byte, error) {
	nb := encodedNotebook{
		Cells:         make([]any, 0, len(cells)),
		Metadata:      buildMetadata(k),
		NBFormat:      FormatMajor,
		NBFormatMinor: FormatMinor,
	}
	for _, c := range cells {
		source := c.Source()
		if source == nil {
			source = []string{}
		}
		nb.Cells = append(nb.Cells, Match(c,
			func(*MarkdownCell) any {
				return encodedMarkdownCell{CellType: cellTypeMarkdown, Metadata: map[string]any{}, Source: source}
			},
			func(code *CodeCell) any {
				return encodedCodeCell{CellType: cellTypeCode, Metadata: codeMetadata(code, k), Source: source, Outputs: []any{}}
			},
		))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nb); err != nil {
		return nil, fmt.Errorf("encoding notebook: %w", err)
	}
	return buf.Bytes(), nil
}

func buildMetadata(k Kernel) encodedMetadata {
	md := encodedMetadata{
		KernelSpec: kernelSpec{DisplayName: k.DisplayName, Language: k.Language, Name: k.Name},
		LanguageInfo: languageInfo{
			Name:    k.Language,
			Version: k.LanguageVersion,
		},
	}
	if k.Language == "python" {
		md.LanguageInfo.CodeMirrorMode = &codeMirrorMode{Name: "ipython", Version: 3}
		md.LanguageInfo.FileExtension = ".py"
		md.LanguageInfo.MimeType = "text/x-python"
		md.LanguageInfo.NBConvertExporter = "python"
		md.LanguageInfo.PygmentsLexer = "ipython3"
	}
	if k.Colab {
		md.Colab = &colabBlock{Provenance: []any{}, PrivateOutputs: true}
	}
	return md
}

// codeMetadata records a cell language that differs from the kernel's
// under vscode.languageId, where Decode reads it back.
func codeMetadata(c *CodeCell, k Kernel) map[string]any {
	if c.Language == "" || strings.EqualFold(c.Language, k.Language) {
		return map[string]any{}
	}
	return map[string]any{"vscode": map[string]any{"languageId": c.Language}}
}
