package main

import (
	"errors"
	"os"

	"github.com/alnah/go-plumber/internal/bitbucket"
	"github.com/alnah/go-plumber/internal/config"
)

// Exit codes for the plumber CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All repositories processed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or credentials
	ExitIO      = 3 // Local file errors
	ExitRemote  = 4 // Bitbucket API errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Remote API errors (exit 4)
	if errors.Is(err, bitbucket.ErrRemoteAPI) ||
		errors.Is(err, bitbucket.ErrNoCommits) ||
		errors.Is(err, bitbucket.ErrFileNotFound) {
		return ExitRemote
	}

	// Local I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrNoWorkspace) ||
		errors.Is(err, config.ErrNoRepositories) ||
		errors.Is(err, config.ErrNoSteps) ||
		errors.Is(err, config.ErrEmptyStepName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
