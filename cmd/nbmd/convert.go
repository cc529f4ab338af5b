package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	nbmd "github.com/alnah/go-nbmd"
	"github.com/alnah/go-nbmd/internal/assets"
	"github.com/alnah/go-nbmd/internal/config"
	"github.com/alnah/go-nbmd/internal/fileutil"
	"github.com/alnah/go-nbmd/internal/hints"
)

// ErrConversionFailed reports that at least one file in a batch failed.
var ErrConversionFailed = errors.New("conversion failed")

// convertRun holds everything resolved before the first conversion.
type convertRun struct {
	flags   *convertFlags
	cfg     *config.Config
	workers int
	from    string
	input   string
	output  string
	logger  *slog.Logger
	env     *Environment
}

// runConvert converts a file or every matching file in a directory.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, fs, positional, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(logger, env.Environ())

	envCfg, err := loadEnvConfig(env.LookupEnv)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, fs, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	run := &convertRun{
		flags:   flags,
		cfg:     cfg,
		workers: flags.workers,
		from:    flags.from,
		output:  flags.output,
		logger:  logger,
		env:     env,
	}
	if !fs.Changed("workers") && envCfg.Workers > 0 {
		run.workers = envCfg.Workers
	}
	if run.from == "" {
		run.from = envCfg.From
	}
	if err := validateWorkers(run.workers); err != nil {
		return err
	}

	switch len(positional) {
	case 0:
		return fmt.Errorf("%w: usage: nbmd convert <input> [output]", ErrNoInput)
	case 1:
	case 2:
		run.output = positional[1]
	default:
		return fmt.Errorf("%w: too many arguments: %v", ErrUsage, positional[2:])
	}
	run.input = positional[0]

	opts, err := converterOptions(cfg, env.Now)
	if err != nil {
		return err
	}
	conv := nbmd.NewConverter(opts...)

	if info, err := os.Stat(run.input); err == nil && info.IsDir() {
		return run.directory(ctx, conv)
	}
	return run.single(ctx, conv)
}

// single converts one file. An output with a convertible extension is
// the output file; any other output is a directory.
func (r *convertRun) single(ctx context.Context, conv FileConverter) error {
	input := nbmd.FileInput{Path: r.input, OutputDir: r.cfg.Output.DefaultDir}
	if r.output != "" {
		if isDirOutput(r.output) {
			input.OutputDir = r.output
		} else {
			if err := checkOutputExt(r.input, r.output); err != nil {
				return err
			}
			input.Output = r.output
		}
	}

	result := convertOne(ctx, conv, input)
	if result.Err != nil {
		return fmt.Errorf("%w%s", result.Err, hintFor(result.Err, r.input))
	}

	logDiagnostics(ctx, r.logger, r.input, result.Diagnostics)
	printResults([]ConversionResult{result}, r.flags.common.quiet, r.flags.common.verbose, r.env)
	return nil
}

// directory converts every file selected by --from under the input.
func (r *convertRun) directory(ctx context.Context, conv FileConverter) error {
	ext, err := fromExtension(r.from)
	if err != nil {
		return err
	}

	outDir := r.cfg.Output.DefaultDir
	if r.output != "" {
		outDir = r.output
	}

	files, err := discoverFiles(r.input, ext, outDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no %s files in %s%s", ErrNoInput, ext, r.input, hints.ForBatchMode(r.from))
	}

	r.logger.Debug("converting directory",
		slog.String("dir", r.input),
		slog.Int("files", len(files)),
		slog.Int("workers", resolveWorkerCount(r.workers, len(files))),
	)

	results := convertBatch(ctx, conv, files, r.workers)
	for _, res := range results {
		logDiagnostics(ctx, r.logger, res.InputPath, res.Diagnostics)
	}

	if failed := printResults(results, r.flags.common.quiet, r.flags.common.verbose, r.env); failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrConversionFailed, failed, len(results))
	}
	return nil
}

// loadConfig loads the named config, preferring the flag over
// NBMD_CONFIG. With neither set it returns the defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies explicitly set flags on top of cfg.
func mergeFlags(f *convertFlags, fs *flag.FlagSet, cfg *config.Config) {
	if f.markdown.noOutputs {
		cfg.Markdown.IncludeOutputs = false
	}
	if f.markdown.html {
		cfg.Markdown.HTMLPreview = true
	}
	if f.markdown.style != "" {
		cfg.Markdown.HTMLStyle = f.markdown.style
	}
	if f.markdown.imagePlaceholder != "" {
		cfg.Markdown.ImagePlaceholder = f.markdown.imagePlaceholder
	}
	if f.markdown.language != "" {
		cfg.Markdown.DefaultLanguage = f.markdown.language
	}
	if f.notebook.noScript {
		cfg.Script.Enabled = false
	}
	if fs.Changed("suffix") {
		cfg.Notebook.Suffix = f.notebook.suffix
	}
}

// converterOptions translates a config into Converter options. The
// preview stylesheet is resolved only when the preview is enabled.
func converterOptions(cfg *config.Config, now func() time.Time) ([]nbmd.Option, error) {
	var css string
	if cfg.Markdown.HTMLPreview {
		var err error
		if css, err = assets.ResolveStyle(cfg.Markdown.HTMLStyle); err != nil {
			return nil, err
		}
	}

	k := cfg.Notebook.Kernel
	return []nbmd.Option{
		nbmd.WithImagePlaceholder(cfg.Markdown.ImagePlaceholder),
		nbmd.WithOutputs(cfg.Markdown.IncludeOutputs),
		nbmd.WithDefaultLanguage(cfg.Markdown.DefaultLanguage),
		nbmd.WithHTMLPreview(cfg.Markdown.HTMLPreview),
		nbmd.WithHTMLStyle(css),
		nbmd.WithKernel(nbmd.Kernel{
			DisplayName:     k.DisplayName,
			Language:        k.Language,
			Name:            k.Name,
			LanguageVersion: k.LanguageVersion,
			Colab:           cfg.Notebook.Colab,
		}),
		nbmd.WithScript(cfg.Script.Enabled),
		nbmd.WithNotebookSuffix(cfg.Notebook.Suffix),
		nbmd.WithClock(now),
	}, nil
}

// hintFor returns the hint matching a conversion error, or "".
func hintFor(err error, path string) string {
	switch {
	case errors.Is(err, nbmd.ErrInputNotFound):
		return hints.ForInputNotFound(path)
	case errors.Is(err, nbmd.ErrUnsupportedExtension):
		return hints.ForUnsupportedExtension(path)
	case errors.Is(err, nbmd.ErrMalformedDocument):
		return hints.ForMalformedDocument()
	case errors.Is(err, nbmd.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
