package main

import (
	"errors"
	"os"

	nbmd "github.com/alnah/go-nbmd"
	"github.com/alnah/go-nbmd/internal/assets"
	"github.com/alnah/go-nbmd/internal/config"
)

// Exit codes for the nbmd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Every conversion succeeded
	ExitGeneral = 1 // A conversion failed
	ExitUsage   = 2 // Invalid flags, arguments, or config
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Conversion failures (exit 1), checked first so a missing input
	// never reads as a usage error.
	if errors.Is(err, nbmd.ErrInputNotFound) ||
		errors.Is(err, nbmd.ErrUnsupportedExtension) ||
		errors.Is(err, nbmd.ErrMalformedDocument) ||
		errors.Is(err, nbmd.ErrWriteOutput) ||
		errors.Is(err, ErrConversionFailed) ||
		errors.Is(err, os.ErrNotExist) {
		return ExitGeneral
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidFrom) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrStyleTooLarge) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitUsage
	}

	return ExitGeneral
}
