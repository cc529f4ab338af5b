package notebook

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Container format version written by Encode.
const (
	FormatMajor = 4
	FormatMinor = 4
)

// ErrMalformed indicates the input is not a structurally valid notebook.
var ErrMalformed = errors.New("malformed notebook document")

// Cell type tags used by the container format.
const (
	cellTypeMarkdown = "markdown"
	cellTypeCode     = "code"
)

// Source is a cell or output text field. The container format allows
// either a single string or a list of strings.
type Source []string

// UnmarshalJSON accepts a string, a list of strings, or null.
func (s *Source) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Source{text}
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("source must be a string or a list of strings: %w", err)
	}
	*s = lines
	return nil
}

// Text returns the concatenated source.
func (s Source) Text() string {
	return JoinSource(s)
}

type rawNotebook struct {
	Cells         *[]rawCell  `json:"cells"`
	Metadata      rawMetadata `json:"metadata"`
	NBFormat      int         `json:"nbformat"`
	NBFormatMinor int         `json:"nbformat_minor"`
}

type rawMetadata struct {
	KernelSpec *struct {
		DisplayName string `json:"display_name"`
	} `json:"kernelspec"`
	LanguageInfo *struct {
		Name string `json:"name"`
	} `json:"language_info"`
	Colab json.RawMessage `json:"colab"`
}

type rawCell struct {
	CellType string `json:"cell_type"`
	Source   Source `json:"source"`
	Metadata struct {
		VSCode *struct {
			LanguageID string `json:"languageId"`
		} `json:"vscode"`
	} `json:"metadata"`
	Outputs []rawOutput `json:"outputs"`
}

type rawOutput struct {
	Text *Source                   `json:"text"`
	Data map[string]json.RawMessage `json:"data"`
}

// Decode parses a notebook container into a Document. Cells are kept
// verbatim, empty ones included; cell types other than markdown and code
// are skipped but still consume an ordinal. Errors wrap ErrMalformed.
func Decode(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	var raw rawNotebook
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw.Cells == nil {
		return nil, fmt.Errorf("%w: missing \"cells\"", ErrMalformed)
	}
	if raw.NBFormat != 0 && raw.NBFormat < FormatMajor {
		return nil, fmt.Errorf("%w: unsupported nbformat %d (need %d or later)", ErrMalformed, raw.NBFormat, FormatMajor)
	}

	doc := &Document{Metadata: decodeMetadata(raw.Metadata)}
	for i, rc := range *raw.Cells {
		position := i + 1
		switch rc.CellType {
		case cellTypeMarkdown:
			doc.Cells = append(doc.Cells, &MarkdownCell{Position: position, Lines: rc.Source})
		case cellTypeCode:
			outputs, err := decodeOutputs(rc.Outputs)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %d: %v", ErrMalformed, position, err)
			}
			lang := doc.Metadata.Language
			if rc.Metadata.VSCode != nil && rc.Metadata.VSCode.LanguageID != "" {
				lang = rc.Metadata.VSCode.LanguageID
			}
			doc.Cells = append(doc.Cells, &CodeCell{
				Position: position,
				Lines:    rc.Source,
				Language: lang,
				Outputs:  outputs,
			})
		case "":
			return nil, fmt.Errorf("%w: cell %d has no cell_type", ErrMalformed, position)
		default:
			// raw and other dialect cells are not represented
		}
	}
	return doc, nil
}

func decodeMetadata(m rawMetadata) Metadata {
	var md Metadata
	if m.KernelSpec != nil {
		md.DisplayName = m.KernelSpec.DisplayName
	}
	if m.LanguageInfo != nil {
		md.Language = m.LanguageInfo.Name
	}
	if len(m.Colab) > 0 && !bytes.Equal(bytes.TrimSpace(m.Colab), []byte("null")) {
		md.Environment = EnvironmentColab
	}
	return md
}

// decodeOutputs keeps text-bearing outputs in order and drops the rest.
func decodeOutputs(raw []rawOutput) ([]Output, error) {
	var outputs []Output
	for _, ro := range raw {
		if ro.Text != nil {
			outputs = append(outputs, Output{Kind: OutputText, Text: ro.Text.Text()})
			continue
		}
		plain, ok := ro.Data["text/plain"]
		if !ok {
			continue
		}
		var s Source
		if err := json.Unmarshal(plain, &s); err != nil {
			return nil, fmt.Errorf("text/plain output: %w", err)
		}
		outputs = append(outputs, Output{Kind: OutputMimeText, Text: s.Text()})
	}
	return outputs, nil
}
