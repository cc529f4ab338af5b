// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-nbmd/internal/fileutil"
)

// ForInputNotFound returns a hint when the input path does not exist.
// Suggests a sibling file with a convertible extension when one is present.
func ForInputNotFound(path string) string {
	for _, ext := range []string{".ipynb", ".md"} {
		candidate := fileutil.ReplaceExt(path, "", ext)
		if candidate != path && fileutil.FileExists(candidate) {
			return format("did you mean " + candidate + "?")
		}
	}
	return format("check the path; directories convert every matching file")
}

// ForUnsupportedExtension returns a hint listing the accepted extensions.
func ForUnsupportedExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return format("input needs an .ipynb or .md extension")
	}
	return format("supported: .ipynb (to Markdown), .md (to notebook); got " + ext)
}

// ForMalformedDocument returns hints for notebook files that fail to parse.
func ForMalformedDocument() string {
	return formatHints([]string{
		"the file must be a JSON object with a \"cells\" list",
		"nbformat 4 or later is required",
	})
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (lives under go-nbmd/) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-nbmd/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForBatchMode returns a hint when a directory holds nothing to convert.
func ForBatchMode(from string) string {
	other := "md"
	if from == "md" {
		other = "ipynb"
	}
	return format("use --from " + other + " to convert ." + other + " files instead")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
