// Package nbmd converts Jupyter notebooks to Markdown and back.
//
// # Quick Start
//
// Create a converter and render a notebook:
//
//	conv := nbmd.NewConverter()
//
//	result, err := conv.NotebookToMarkdown(ctx, nbmd.NotebookInput{
//	    Notebook: data,
//	    Title:    "lesson",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("lesson.md", []byte(result.Markdown), 0644)
//
// Going back, MarkdownToNotebook rebuilds the cells from fenced code
// blocks and also extracts a runnable Python script:
//
//	result, err := conv.MarkdownToNotebook(ctx, nbmd.MarkdownInput{
//	    Markdown:   string(md),
//	    Title:      "lesson",
//	    SourceName: "lesson.md",
//	})
//
// ConvertFile does either, choosing the direction from the file extension
// and writing the outputs next to the input.
//
// # Conversion Pipeline
//
// Notebook to Markdown:
//
//  1. Decode the notebook JSON into markdown and code cells
//  2. Render each cell (embedded images replaced, Colab badges removed,
//     code fenced with its language and followed by its text output)
//  3. Write the title, provenance notes, and a rule, then the fragments
//
// Markdown to notebook:
//
//  1. Normalize line endings
//  2. Lex lines into cells, swallowing the generated title, provenance
//     notes, cell locators, and output blocks
//  3. Audit fence counts against a CommonMark parse
//  4. Encode nbformat 4.4 JSON and extract the python fences as a script
//
// Markdown parsing never fails. Everything it drops is reported as a
// Diagnostic so callers can see what a round trip lost.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := nbmd.NewConverter(
//	    nbmd.WithOutputs(false),
//	    nbmd.WithHTMLPreview(true),
//	    nbmd.WithKernel(nbmd.Kernel{DisplayName: "R", Language: "R", Name: "ir"}),
//	)
//
// # Errors
//
// Sentinel errors support errors.Is: ErrInputNotFound,
// ErrUnsupportedExtension, ErrMalformedDocument, ErrWriteOutput.
package nbmd
