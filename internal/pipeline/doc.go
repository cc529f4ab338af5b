// Package pipeline implements the notebook/Markdown conversion stages.
//
// Forward direction (notebook to Markdown):
//   - CellRenderer turns each cell into a Markdown fragment
//   - MarkdownWriter joins fragments under a title and provenance header
//   - HTMLPreviewer optionally renders the result via Goldmark
//
// Reverse direction (Markdown to notebook and script):
//   - PreprocessMarkdown normalizes line endings
//   - Reconstructor runs the line-oriented fence state machine and returns
//     compacted cells plus diagnostics
//   - AuditFences cross-checks fence structure with a CommonMark parser
//   - ScriptExtractor pulls runnable Python out of python fences
//
// Reading the container format and writing notebooks is handled by the
// notebook package; this package only transforms text and cells.
package pipeline
