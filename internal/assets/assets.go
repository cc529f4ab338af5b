package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alnah/go-nbmd/internal/fileutil"
)

// Style names with special meaning.
const (
	DefaultStyle = "default"
	NoStyle      = "none"
)

// MaxStyleSize caps style files read from disk.
const MaxStyleSize = 1 << 20

// defaultLoader serves named styles.
var defaultLoader = NewEmbeddedLoader()

// ResolveStyle returns the CSS for nameOrPath. A value containing a path
// separator or ending in .css is read from disk; anything else names an
// embedded style. Empty selects DefaultStyle and NoStyle yields "".
func ResolveStyle(nameOrPath string) (string, error) {
	switch nameOrPath {
	case "":
		nameOrPath = DefaultStyle
	case NoStyle:
		return "", nil
	}

	if fileutil.IsFilePath(nameOrPath) || fileutil.Ext(nameOrPath) == ".css" {
		return loadStyleFile(nameOrPath)
	}
	return defaultLoader.LoadStyle(nameOrPath)
}

func loadStyleFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrStyleNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrAssetRead, path)
	}
	if info.Size() > MaxStyleSize {
		return "", fmt.Errorf("%w: %s (%d bytes, max %d)", ErrStyleTooLarge, path, info.Size(), MaxStyleSize)
	}

	content, err := os.ReadFile(path) // #nosec G304 -- style path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}
