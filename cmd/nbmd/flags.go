package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for argument handling.
var (
	ErrUsage   = errors.New("invalid usage")
	ErrNoInput = errors.New("no input specified")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// markdownFlags holds notebook to Markdown flags.
type markdownFlags struct {
	noOutputs        bool
	html             bool
	style            string
	imagePlaceholder string
	language         string
}

// notebookFlags holds Markdown to notebook flags.
type notebookFlags struct {
	noScript bool
	suffix   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	from     string
	markdown markdownFlags
	notebook notebookFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show statistics, timing, and diagnostics")
}

// addMarkdownFlags adds notebook to Markdown flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.BoolVar(&f.noOutputs, "no-outputs", false, "omit code cell outputs")
	fs.BoolVar(&f.html, "html", false, "also write an HTML preview")
	fs.StringVar(&f.style, "style", "", "preview style name, .css path, or none")
	fs.StringVar(&f.imagePlaceholder, "image-placeholder", "", "text that replaces embedded images")
	fs.StringVar(&f.language, "language", "", "fence language when the notebook names none")
}

// addNotebookFlags adds Markdown to notebook flags to a FlagSet.
func addNotebookFlags(fs *flag.FlagSet, f *notebookFlags) {
	fs.BoolVar(&f.noScript, "no-script", false, "do not write the .py script")
	fs.StringVar(&f.suffix, "suffix", "", "suffix for rebuilt notebooks (default \"_from_md\")")
}

// newConvertFlagSet registers every convert flag into f. Parsing and
// shell completion share it so both see the same flags.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file, or directory for batch input")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.from, "from", "", "batch input format: ipynb or md (default ipynb)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	addNotebookFlags(fs, &f.notebook)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// The returned FlagSet reports which flags were set explicitly.
func parseConvertFlags(args []string) (*convertFlags, *flag.FlagSet, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, nil, err
		}
		return nil, nil, nil, errUsage(err)
	}

	if f.common.quiet && f.common.verbose {
		return nil, nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	return f, fs, fs.Args(), nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string) (*commonFlags, []string, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &commonFlags{}
	addCommonFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, errUsage(err)
	}
	return f, fs.Args(), nil
}
