package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-nbmd/internal/notebook"
)

// Comment prefixes for notebook-only lines in extracted scripts.
const (
	ShellEscapePrefix = "# COLAB ONLY: "
	MagicPrefix       = "# JUPYTER MAGIC: "
)

// ScriptExtractor pulls the contents of python fences out of Markdown and
// comments out shell escapes (!) and magics (%).
type ScriptExtractor struct {
	// Now stamps the header. Nil uses time.Now.
	Now func() time.Time
}

// Extract returns the header followed by every python fence body.
// sourceName is recorded in the header.
func (e *ScriptExtractor) Extract(markdown, sourceName string) string {
	return e.Header(sourceName) + ExtractBody(markdown)
}

// Header returns the generated docstring block, ending with a blank line.
func (e *ScriptExtractor) Header(sourceName string) string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	var b strings.Builder
	b.WriteString("#!/usr/bin/env python3\n")
	b.WriteString(`"""` + "\n")
	fmt.Fprintf(&b, "Python script generated from: %s\n", sourceName)
	fmt.Fprintf(&b, "Generated on: %s\n", now().Format(time.RFC3339))
	b.WriteString("Note: Colab-specific commands (!pip, %magic) have been commented out\n")
	b.WriteString(`"""` + "\n\n")
	return b.String()
}

// ExtractBody returns the filtered python fence bodies, each followed by
// one blank separator line. Untagged fences count as python, except an
// untagged fence on the line right after an output marker, which is an
// output block and is skipped.
func ExtractBody(markdown string) string {
	var (
		b          strings.Builder
		inFence    bool
		inPython   bool
		nextOutput bool
	)

	for _, line := range strings.Split(markdown, "\n") {
		afterMarker := nextOutput
		nextOutput = false

		if strings.HasPrefix(line, FenceMarker) {
			if inFence {
				if inPython {
					b.WriteString("\n")
				}
				inFence, inPython = false, false
				continue
			}
			lang := strings.TrimSpace(line[len(FenceMarker):])
			if lang == "" {
				lang = notebook.DefaultLanguage
			}
			inFence = true
			inPython = lang == "python" && !(afterMarker && isOutputFence(line))
			continue
		}

		if !inFence {
			nextOutput = line == OutputMarker
			continue
		}
		if !inPython {
			continue
		}

		b.WriteString(filterScriptLine(line) + "\n")
	}
	return b.String()
}

// filterScriptLine comments out shell escapes and magic commands.
func filterScriptLine(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "!"):
		return ShellEscapePrefix + line
	case strings.HasPrefix(trimmed, "%"):
		return MagicPrefix + line
	default:
		return line
	}
}
