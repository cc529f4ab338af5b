package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and fixtures
// ---------------------------------------------------------------------------

const sampleNotebook = `{
 "cells": [
  {"cell_type": "markdown", "metadata": {}, "source": ["# Intro\n", "Some text"]},
  {
   "cell_type": "code",
   "metadata": {},
   "execution_count": 1,
   "source": ["print(1)"],
   "outputs": [{"output_type": "stream", "name": "stdout", "text": ["1\n"]}]
  }
 ],
 "metadata": {"language_info": {"name": "python"}},
 "nbformat": 4,
 "nbformat_minor": 5
}`

const sampleMarkdown = "# Setup\n\n```python\n!pip install numpy\nimport numpy as np\n```\n\n```sql\nSELECT 1;\n```\n"

var fixedNow = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

// testEnv returns an Environment with captured output and the given
// variables as the whole process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
		LookupEnv: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
	}
	return env, stdout, stderr
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
