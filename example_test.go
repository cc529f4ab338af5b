package nbmd_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-nbmd"
)

// Example demonstrates rendering a notebook as Markdown.
func Example() {
	notebook := `{
	  "cells": [
	    {"cell_type": "markdown", "source": ["# Hello"]},
	    {"cell_type": "code", "source": ["print('hi')"], "outputs": []}
	  ],
	  "metadata": {},
	  "nbformat": 4,
	  "nbformat_minor": 4
	}`

	conv := nbmd.NewConverter()
	result, err := conv.NotebookToMarkdown(context.Background(), nbmd.NotebookInput{
		Notebook: []byte(notebook),
		Title:    "demo",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(result.Markdown)
	// Output:
	// # demo
	//
	// ---
	//
	// # Hello
	//
	// ## Code Cell 2
	//
	// ```python
	// print('hi')
	// ```
}

// Example_markdownToNotebook demonstrates rebuilding cells and extracting
// the Python script.
func Example_markdownToNotebook() {
	markdown := "Setup\n\n```python\n!pip install numpy\nimport numpy as np\n```\n"

	conv := nbmd.NewConverter(nbmd.WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}))
	result, err := conv.MarkdownToNotebook(context.Background(), nbmd.MarkdownInput{
		Markdown:   markdown,
		SourceName: "setup.md",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%d code, %d markdown\n", result.Stats.CodeCells, result.Stats.MarkdownCells)
	fmt.Print(result.Script)
	// Output:
	// 1 code, 1 markdown
	// #!/usr/bin/env python3
	// """
	// Python script generated from: setup.md
	// Generated on: 2025-06-01T00:00:00Z
	// Note: Colab-specific commands (!pip, %magic) have been commented out
	// """
	//
	// # COLAB ONLY: !pip install numpy
	// import numpy as np
}

// Example_diagnostics demonstrates inspecting what the Markdown parser dropped.
func Example_diagnostics() {
	markdown := "# notes\n\n---\n\n## Code Cell 1\n\n```python\nx = 1\n```\n\n**Output:**\n```\n1\n```\n"

	result, err := nbmd.NewConverter().MarkdownToNotebook(context.Background(), nbmd.MarkdownInput{
		Markdown: markdown,
		Title:    "notes",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, d := range result.Diagnostics {
		fmt.Println(d)
	}
	// Output:
	// line 1: title: generated title "# notes" swallowed
	// line 3: provenance: converter annotation "---" swallowed
	// line 5: locator: cell locator "## Code Cell 1" dropped
	// line 11: output: output block discarded
}

// ExampleConverter_ConvertFile demonstrates converting a file on disk.
func ExampleConverter_ConvertFile() {
	dir, err := os.MkdirTemp("", "nbmd-example-*")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "lesson.md")
	if err := os.WriteFile(input, []byte("```python\nprint(1)\n```\n"), 0o644); err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := nbmd.NewConverter().ConvertFile(context.Background(), nbmd.FileInput{Path: input})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Direction)
	for _, out := range result.Outputs {
		fmt.Println(filepath.Base(out))
	}
	// Output:
	// markdown to notebook
	// lesson_from_md.ipynb
	// lesson.py
}
