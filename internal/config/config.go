package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nbmd/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// appDir is the directory name under os.UserConfigDir.
const appDir = "go-nbmd"

// Field length limits.
const (
	MaxPlaceholderLength = 200  // "[Image omitted]"
	MaxLanguageLength    = 50   // "python", "r", "julia"
	MaxSuffixLength      = 50   // "_from_md"
	MaxKernelFieldLength = 100  // "Python 3"
	MaxVersionLength     = 30   // "3.9.0"
	MaxPathLength        = 4096 // PATH_MAX on Linux
)

// Config holds all configuration for notebook conversion.
type Config struct {
	Markdown MarkdownConfig `yaml:"markdown"`
	Notebook NotebookConfig `yaml:"notebook"`
	Script   ScriptConfig   `yaml:"script"`
	Output   OutputConfig   `yaml:"output"`
}

// MarkdownConfig defines notebook to Markdown options.
type MarkdownConfig struct {
	ImagePlaceholder string `yaml:"imagePlaceholder"` // Replaces base64 images
	IncludeOutputs   bool   `yaml:"includeOutputs"`   // Append text outputs after code
	DefaultLanguage  string `yaml:"defaultLanguage"`  // When the notebook names none
	HTMLPreview      bool   `yaml:"htmlPreview"`      // Also write <stem>.html
	HTMLStyle        string `yaml:"htmlStyle"`        // Style name, .css path, or "none"
}

// NotebookConfig defines Markdown to notebook options.
type NotebookConfig struct {
	Suffix string       `yaml:"suffix"` // Appended to the stem: <stem><suffix>.ipynb
	Kernel KernelConfig `yaml:"kernel"`
	Colab  bool         `yaml:"colab"` // Write the colab metadata block
}

// KernelConfig defines the kernelspec and language_info written to notebooks.
type KernelConfig struct {
	DisplayName     string `yaml:"displayName"`
	Language        string `yaml:"language"`
	Name            string `yaml:"name"`
	LanguageVersion string `yaml:"languageVersion"`
}

// ScriptConfig defines script extraction options.
type ScriptConfig struct {
	Enabled bool `yaml:"enabled"` // Write <stem>.py next to the notebook
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = same as source
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("markdown.imagePlaceholder", c.Markdown.ImagePlaceholder, MaxPlaceholderLength); err != nil {
		return err
	}
	if err := validateFieldLength("markdown.defaultLanguage", c.Markdown.DefaultLanguage, MaxLanguageLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Markdown.DefaultLanguage, " \t\n`") {
		return fmt.Errorf("%w: markdown.defaultLanguage %q must be a single word", ErrInvalidField, c.Markdown.DefaultLanguage)
	}

	if err := validateFieldLength("markdown.htmlStyle", c.Markdown.HTMLStyle, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("notebook.suffix", c.Notebook.Suffix, MaxSuffixLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Notebook.Suffix, "/\\\x00") {
		return fmt.Errorf("%w: notebook.suffix %q contains a path separator", ErrInvalidField, c.Notebook.Suffix)
	}

	kernelFields := []struct {
		name  string
		value string
		max   int
	}{
		{"notebook.kernel.displayName", c.Notebook.Kernel.DisplayName, MaxKernelFieldLength},
		{"notebook.kernel.language", c.Notebook.Kernel.Language, MaxLanguageLength},
		{"notebook.kernel.name", c.Notebook.Kernel.Name, MaxKernelFieldLength},
		{"notebook.kernel.languageVersion", c.Notebook.Kernel.LanguageVersion, MaxVersionLength},
	}
	for _, f := range kernelFields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// Values mirror the library defaults.
func DefaultConfig() *Config {
	return &Config{
		Markdown: MarkdownConfig{
			ImagePlaceholder: "[Image omitted]",
			IncludeOutputs:   true,
			DefaultLanguage:  "python",
			HTMLPreview:      false,
			HTMLStyle:        "default",
		},
		Notebook: NotebookConfig{
			Suffix: "_from_md",
			Kernel: KernelConfig{
				DisplayName:     "Python 3",
				Language:        "python",
				Name:            "python3",
				LanguageVersion: "3.9.0",
			},
			Colab: true,
		},
		Script: ScriptConfig{Enabled: true},
		Output: OutputConfig{DefaultDir: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the paths tried for a config name, in order.
// Tries extensions .yaml then .yml, in the current directory then
// the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
