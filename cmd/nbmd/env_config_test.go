package main

// Notes:
// - loadEnvConfig takes a lookup function, so tests never touch the
//   process environment and can run in parallel.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-nbmd/internal/config"
)

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Parsing NBMD_* variables
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	got, err := loadEnvConfig(lookupFrom(map[string]string{
		"NBMD_CONFIG":            "work",
		"NBMD_OUTPUT_DIR":        "build",
		"NBMD_WORKERS":           "4",
		"NBMD_FROM":              "md",
		"NBMD_IMAGE_PLACEHOLDER": "[img]",
		"NBMD_LANGUAGE":          "julia",
		"NBMD_STYLE":             "dark",
		"NBMD_SUFFIX":            "",
		"NBMD_INCLUDE_OUTPUTS":   "false",
		"NBMD_HTML":              "1",
		"NBMD_SCRIPT":            "TRUE",
	}))
	if err != nil {
		t.Fatalf("loadEnvConfig() error = %v", err)
	}

	want := &envConfig{
		ConfigPath:       "work",
		OutputDir:        "build",
		Workers:          4,
		From:             "md",
		ImagePlaceholder: "[img]",
		Language:         "julia",
		Style:            "dark",
		Suffix:           ptr(""),
		IncludeOutputs:   ptr(false),
		HTMLPreview:      ptr(true),
		Script:           ptr(true),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvConfig_Unset(t *testing.T) {
	t.Parallel()

	got, err := loadEnvConfig(lookupFrom(nil))
	if err != nil {
		t.Fatalf("loadEnvConfig() error = %v", err)
	}
	if diff := cmp.Diff(&envConfig{}, got); diff != "" {
		t.Errorf("unset environment should yield zero config (-want +got):\n%s", diff)
	}
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"workers not a number", map[string]string{"NBMD_WORKERS": "many"}, "NBMD_WORKERS"},
		{"negative workers", map[string]string{"NBMD_WORKERS": "-1"}, "NBMD_WORKERS"},
		{"bad bool", map[string]string{"NBMD_HTML": "yes please"}, "NBMD_HTML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadEnvConfig(lookupFrom(tt.vars))
			if !errors.Is(err, ErrInvalidEnv) {
				t.Fatalf("loadEnvConfig() error = %v, want ErrInvalidEnv", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should name %s", err, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment overrides the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Notebook.Suffix = "_file"
	cfg.Output.DefaultDir = "from-file"

	applyEnvConfig(&envConfig{
		OutputDir:        "from-env",
		ImagePlaceholder: "[img]",
		Language:         "r",
		Style:            "none",
		Suffix:           ptr(""),
		IncludeOutputs:   ptr(false),
		HTMLPreview:      ptr(true),
		Script:           ptr(false),
	}, cfg)

	want := config.DefaultConfig()
	want.Output.DefaultDir = "from-env"
	want.Markdown.ImagePlaceholder = "[img]"
	want.Markdown.DefaultLanguage = "r"
	want.Markdown.HTMLStyle = "none"
	want.Notebook.Suffix = ""
	want.Markdown.IncludeOutputs = false
	want.Markdown.HTMLPreview = true
	want.Script.Enabled = false

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("applyEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnvConfig_EmptyKeepsFile(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Notebook.Suffix = "_file"
	want := *cfg

	applyEnvConfig(&envConfig{}, cfg)

	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Errorf("empty env should not change config (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, false, false)

	warnUnknownEnvVars(logger, []string{
		"HOME=/root",
		"NBMD_CONFIG=work",
		"NBMD_WORKRES=4",
		"NBMD_OUTPUTDIR=x",
	})

	out := buf.String()
	if strings.Count(out, "unknown environment variable") != 2 {
		t.Errorf("want two warnings, got:\n%s", out)
	}
	if i, j := strings.Index(out, "NBMD_OUTPUTDIR"), strings.Index(out, "NBMD_WORKRES"); i < 0 || j < 0 || i > j {
		t.Errorf("warnings should be sorted by name:\n%s", out)
	}
	if strings.Contains(out, "NBMD_CONFIG") || strings.Contains(out, "HOME") {
		t.Errorf("known variables should not warn:\n%s", out)
	}
}
