// Package errors defines the user-facing errors of the clogfmt CLI. Each
// error has a category, which the CLI maps to an exit status, and may carry
// a usage line and remediation steps.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError.
type ErrorCategory int

const (
	// Argument errors come from flags and positional arguments.
	Argument ErrorCategory = iota
	// Configuration errors come from config files or CLOGFMT_* variables.
	Configuration
	// Input errors occur when a changelog cannot be found, read or written.
	Input
)

func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Input:
		return "Input Error"
	default:
		return "Error"
	}
}

// CLIError is an error meant to be shown to the user as is.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Usage       string   // correct command syntax, for argument errors
	Remediation []string // steps that resolve the error
	Err         error    // underlying cause, if any
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewArgumentError returns an argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage returns an argument error that shows usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// NewConfigError returns a configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewInputError returns an input error.
func NewInputError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Input, Message: message, Remediation: remediation}
}

// InputFailure reports err, typically from reading or writing a changelog,
// as an input error.
func InputFailure(err error) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: Input, Message: err.Error(), Err: err}
}

// WrapWithMessage prefixes err with message under category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Err:         err,
	}
}

// AsCLIError returns the CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
