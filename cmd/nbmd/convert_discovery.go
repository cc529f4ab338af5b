package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	nbmd "github.com/alnah/go-nbmd"
	"github.com/alnah/go-nbmd/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidFrom        = errors.New("invalid --from value")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// checkpointDir holds Jupyter autosaves, which are never converted.
const checkpointDir = ".ipynb_checkpoints"

// fromExtension maps a --from value to the file extension it selects.
// Empty means ipynb.
func fromExtension(from string) (string, error) {
	switch strings.ToLower(from) {
	case "", "ipynb":
		return nbmd.ExtNotebook, nil
	case "md":
		return nbmd.ExtMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q (want ipynb or md)", ErrInvalidFrom, from)
	}
}

// discoverFiles finds every file with extension ext under root. Hidden
// directories and Jupyter checkpoints are skipped. When outputDir is set,
// each file's subdirectory relative to root is mirrored under it.
func discoverFiles(root, ext, outputDir string) ([]nbmd.FileInput, error) {
	var files []nbmd.FileInput
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != root && (d.Name() == checkpointDir || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if fileutil.Ext(path) != ext {
			return nil
		}
		files = append(files, nbmd.FileInput{
			Path:      path,
			OutputDir: mirrorDir(root, path, outputDir),
		})
		return nil
	})

	return files, err
}

// mirrorDir returns the output directory for path, keeping its position
// relative to root. Empty outputDir means next to the input.
func mirrorDir(root, path, outputDir string) string {
	if outputDir == "" {
		return ""
	}
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return outputDir
	}
	return filepath.Join(outputDir, rel)
}

// isDirOutput reports whether an --output value names a directory rather
// than a file: anything without a convertible output extension.
func isDirOutput(path string) bool {
	switch fileutil.Ext(path) {
	case nbmd.ExtMarkdown, nbmd.ExtNotebook:
		return false
	}
	return true
}

// checkOutputExt rejects an output file whose extension belongs to the
// other direction, such as writing Markdown into a .ipynb file.
func checkOutputExt(input, output string) error {
	var want string
	switch fileutil.Ext(input) {
	case nbmd.ExtNotebook:
		want = nbmd.ExtMarkdown
	case nbmd.ExtMarkdown:
		want = nbmd.ExtNotebook
	default:
		return nil
	}
	if fileutil.Ext(output) != want {
		return fmt.Errorf("%w: output %s must end in %s when converting %s", ErrUsage, output, want, filepath.Base(input))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
