package nbmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-nbmd/internal/fileutil"
)

// File extensions ConvertFile dispatches on.
const (
	ExtNotebook = ".ipynb"
	ExtMarkdown = ".md"
	ExtScript   = ".py"
	ExtHTML     = ".html"
)

// Permissions for written files and created directories.
const (
	filePerm = 0o644
	dirPerm  = 0o750
)

// pendingWrite is an output produced in memory and not yet on disk.
type pendingWrite struct {
	path string
	data []byte
}

// ConvertFile converts one file, choosing the direction from its extension:
// .ipynb is rendered to <stem>.md, .md is rebuilt into
// <stem><suffix>.ipynb with a sibling <stem>.py script.
// Every output is computed before the first write, and each write is
// atomic, so a failed conversion leaves no partial files.
func (c *Converter) ConvertFile(ctx context.Context, input FileInput) (*FileResult, error) {
	start := c.cfg.now()

	info, err := os.Stat(input.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, input.Path)
		}
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedExtension, input.Path)
	}

	var (
		result *FileResult
		writes []pendingWrite
	)
	switch fileutil.Ext(input.Path) {
	case ExtNotebook:
		result, writes, err = c.notebookFile(ctx, input)
	case ExtMarkdown:
		result, writes, err = c.markdownFile(ctx, input)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s, %s)", ErrUnsupportedExtension, filepath.Ext(input.Path), ExtNotebook, ExtMarkdown)
	}
	if err != nil {
		return nil, err
	}

	if err := c.flush(ctx, input, writes); err != nil {
		return nil, err
	}

	for _, w := range writes {
		result.Outputs = append(result.Outputs, w.path)
	}
	result.Input = input.Path
	result.Duration = c.cfg.now().Sub(start)
	return result, nil
}

func (c *Converter) notebookFile(ctx context.Context, input FileInput) (*FileResult, []pendingWrite, error) {
	data, err := os.ReadFile(input.Path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}

	stem := fileutil.Stem(input.Path)
	res, err := c.NotebookToMarkdown(ctx, NotebookInput{Notebook: data, Title: stem})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", input.Path, err)
	}

	mdPath := outputPath(input, "", ExtMarkdown)
	writes := []pendingWrite{{path: mdPath, data: []byte(res.Markdown)}}
	if res.HTML != "" {
		writes = append(writes, pendingWrite{
			path: fileutil.ReplaceExt(mdPath, "", ExtHTML),
			data: []byte(res.HTML),
		})
	}

	return &FileResult{Direction: ToMarkdown, Stats: res.Stats}, writes, nil
}

func (c *Converter) markdownFile(ctx context.Context, input FileInput) (*FileResult, []pendingWrite, error) {
	data, err := os.ReadFile(input.Path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}

	res, err := c.MarkdownToNotebook(ctx, MarkdownInput{
		Markdown:   string(data),
		Title:      fileutil.Stem(input.Path),
		SourceName: filepath.Base(input.Path),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", input.Path, err)
	}

	writes := []pendingWrite{{path: outputPath(input, c.cfg.notebookSuffix, ExtNotebook), data: res.Notebook}}
	if c.cfg.script {
		scriptInput := FileInput{Path: input.Path, OutputDir: input.OutputDir}
		writes = append(writes, pendingWrite{
			path: outputPath(scriptInput, "", ExtScript),
			data: []byte(res.Script),
		})
	}

	return &FileResult{Direction: ToNotebook, Stats: res.Stats, Diagnostics: res.Diagnostics}, writes, nil
}

// flush writes every pending output. It refuses to overwrite the input.
// Cancellation is honored only before the first write, so the outputs of
// one conversion are written together or not at all.
func (c *Converter) flush(ctx context.Context, input FileInput, writes []pendingWrite) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inAbs, err := filepath.Abs(input.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	for _, w := range writes {
		outAbs, err := filepath.Abs(w.path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		if outAbs == inAbs {
			return fmt.Errorf("%w: %s would overwrite the input", ErrWriteOutput, w.path)
		}
	}

	if input.Output == "" && input.OutputDir != "" {
		if err := os.MkdirAll(input.OutputDir, dirPerm); err != nil {
			return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
		}
	}

	for _, w := range writes {
		if err := fileutil.WriteFileAtomic(w.path, w.data, filePerm); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, w.path, err)
		}
	}
	return nil
}

// outputPath returns the explicit output, or <stem><suffix><ext> in the
// output directory, or next to the input.
func outputPath(input FileInput, suffix, ext string) string {
	if input.Output != "" {
		return input.Output
	}
	name := fileutil.Stem(input.Path) + suffix + ext
	if input.OutputDir != "" {
		return filepath.Join(input.OutputDir, name)
	}
	return filepath.Join(filepath.Dir(input.Path), name)
}
