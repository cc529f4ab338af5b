package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command and returns the process exit code.
// A bare file or directory argument is treated as "convert <arg>".
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && looksLikeInput(cmd) {
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "convert":
		setMaxProcs(env, hasVerboseFlag(rest))
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return exitWith(env, runConvert(ctx, rest, env))
	case "config":
		return exitWith(env, runConfig(rest, env))
	case "completion":
		return exitWith(env, runCompletion(rest, env))
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-nbmd %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return exitWith(env, runHelp(rest, env))
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// exitWith prints err, if any, and maps it to an exit code.
func exitWith(env *Environment, err error) int {
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(env *Environment, verbose bool) {
	logf := func(string, ...interface{}) {}
	if verbose {
		logf = func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}

func isCommand(s string) bool {
	switch s {
	case "convert", "config", "completion", "version", "help":
		return true
	}
	return false
}

// looksLikeInput reports whether s names a convertible file or an
// existing directory.
func looksLikeInput(s string) bool {
	if strings.HasPrefix(s, "-") {
		return false
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".ipynb", ".md":
		return true
	}
	info, err := os.Stat(s)
	return err == nil && info.IsDir()
}

// hasVerboseFlag scans raw args before flag parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// errUsage wraps a flag or argument problem so it maps to ExitUsage.
func errUsage(err error) error {
	if errors.Is(err, ErrUsage) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
