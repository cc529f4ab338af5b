package main

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-nbmd/internal/config"
)

// ErrInvalidEnv reports an NBMD_* variable whose value cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envPrefix marks the variables this CLI reads.
const envPrefix = "NBMD_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
// Nil pointers mean the variable is unset.
type envConfig struct {
	ConfigPath       string  // NBMD_CONFIG: config file name or path
	OutputDir        string  // NBMD_OUTPUT_DIR: default output directory
	Workers          int     // NBMD_WORKERS: parallel workers
	From             string  // NBMD_FROM: batch input format
	ImagePlaceholder string  // NBMD_IMAGE_PLACEHOLDER: replaces embedded images
	Language         string  // NBMD_LANGUAGE: default fence language
	Style            string  // NBMD_STYLE: HTML preview style
	Suffix           *string // NBMD_SUFFIX: rebuilt notebook suffix, may be empty
	IncludeOutputs   *bool   // NBMD_INCLUDE_OUTPUTS: render code cell outputs
	HTMLPreview      *bool   // NBMD_HTML: write the HTML preview
	Script           *bool   // NBMD_SCRIPT: write the .py script
}

// knownEnvVars lists valid NBMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NBMD_CONFIG":            true,
	"NBMD_OUTPUT_DIR":        true,
	"NBMD_WORKERS":           true,
	"NBMD_FROM":              true,
	"NBMD_IMAGE_PLACEHOLDER": true,
	"NBMD_LANGUAGE":          true,
	"NBMD_STYLE":             true,
	"NBMD_SUFFIX":            true,
	"NBMD_INCLUDE_OUTPUTS":   true,
	"NBMD_HTML":              true,
	"NBMD_SCRIPT":            true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns ErrInvalidEnv for malformed numbers or booleans.
func loadEnvConfig(lookup func(string) (string, bool)) (*envConfig, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	cfg := &envConfig{
		ConfigPath:       get("NBMD_CONFIG"),
		OutputDir:        get("NBMD_OUTPUT_DIR"),
		From:             get("NBMD_FROM"),
		ImagePlaceholder: get("NBMD_IMAGE_PLACEHOLDER"),
		Language:         get("NBMD_LANGUAGE"),
		Style:            get("NBMD_STYLE"),
	}

	if v, ok := lookup("NBMD_SUFFIX"); ok {
		cfg.Suffix = &v
	}

	if v := get("NBMD_WORKERS"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil || w < 0 {
			return nil, fmt.Errorf("%w: NBMD_WORKERS=%q (want a non-negative integer)", ErrInvalidEnv, v)
		}
		cfg.Workers = w
	}

	bools := []struct {
		key string
		dst **bool
	}{
		{"NBMD_INCLUDE_OUTPUTS", &cfg.IncludeOutputs},
		{"NBMD_HTML", &cfg.HTMLPreview},
		{"NBMD_SCRIPT", &cfg.Script},
	}
	for _, b := range bools {
		v := get(b.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q (want true or false)", ErrInvalidEnv, b.key, v)
		}
		*b.dst = &parsed
	}

	return cfg, nil
}

// warnUnknownEnvVars logs a warning for each unrecognized NBMD_* variable.
// Helps catch typos like NBMD_OUTPUTDIR instead of NBMD_OUTPUT_DIR.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		logger.Warn("unknown environment variable (typo?)", slog.String("name", name))
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Flags are applied afterwards, giving: flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ImagePlaceholder != "" {
		cfg.Markdown.ImagePlaceholder = env.ImagePlaceholder
	}
	if env.Language != "" {
		cfg.Markdown.DefaultLanguage = env.Language
	}
	if env.Style != "" {
		cfg.Markdown.HTMLStyle = env.Style
	}
	if env.IncludeOutputs != nil {
		cfg.Markdown.IncludeOutputs = *env.IncludeOutputs
	}
	if env.HTMLPreview != nil {
		cfg.Markdown.HTMLPreview = *env.HTMLPreview
	}
	if env.Suffix != nil {
		cfg.Notebook.Suffix = *env.Suffix
	}
	if env.Script != nil {
		cfg.Script.Enabled = *env.Script
	}
}
