package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/clogfmt/internal/changelog"
	clierrors "github.com/ariel-frischer/clogfmt/internal/errors"
)

// Exit codes for the clogfmt CLI
// These codes support CI usage: a pipeline can tell a formatting drift
// from a broken changelog.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitWouldReformat indicates --check found a file that is not canonical
	ExitWouldReformat = 1

	// ExitInvalidChangelog indicates a changelog could not be parsed
	ExitInvalidChangelog = 2

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitIOFailure indicates a file could not be read or written
	ExitIOFailure = 4
)

// ExitError carries an exit code for an error that has already been
// reported to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns a silent error that exits with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if changelog.IsParseError(err) {
		return ExitInvalidChangelog
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument, clierrors.Configuration:
			return ExitInvalidArguments
		}
	}
	return ExitIOFailure
}

// isSilent reports whether err was already reported.
func isSilent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
