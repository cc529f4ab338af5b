package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// EmbeddedLoader loads the stylesheets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style by name, without the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrStyleNotFound, name, strings.Join(e.Styles(), ", "))
	}

	return string(content), nil
}

// Styles returns the embedded style names, sorted.
func (e *EmbeddedLoader) Styles() []string {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}

// ValidateAssetName checks that a style name is a bare word. Path
// separators and dots are rejected so a name never escapes styles/.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
