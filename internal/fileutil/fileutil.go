// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFileAtomic writes data to path through a temp file in the same
// directory, then renames it into place. Readers never see a partial file
// and a failed write leaves any previous file untouched.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if chmodErr := os.Chmod(tmpPath, perm); chmodErr != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", renameErr)
	}

	return nil
}

// Stem returns the base name of path without its extension.
//
// Examples:
//   - "lesson.ipynb" -> "lesson"
//   - "dir/week1.md" -> "week1"
//   - "archive.tar.gz" -> "archive.tar"
//   - ".hidden" -> ".hidden"
func Stem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// ReplaceExt returns path with its extension replaced by suffix+ext,
// keeping the directory. ext must include the leading dot.
//
// Examples:
//   - ("dir/a.md", "", ".ipynb") -> "dir/a.ipynb"
//   - ("a.md", "_from_md", ".ipynb") -> "a_from_md.ipynb"
func ReplaceExt(path, suffix, ext string) string {
	return filepath.Join(filepath.Dir(path), Stem(path)+suffix+ext)
}

// Ext returns the lowercased extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "work" -> false (name)
//   - "./nbmd.yaml" -> true (relative path)
//   - "../shared/nbmd.yaml" -> true (parent path)
//   - "/absolute/nbmd.yaml" -> true (absolute)
//   - "C:\config\nbmd.yaml" -> true (Windows)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
