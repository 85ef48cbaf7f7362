package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the clogfmt CLI.

// ChangelogNotFound creates an error for a changelog path that does not exist.
func ChangelogNotFound(path string) *CLIError {
	return NewInputError(
		fmt.Sprintf("%s not found", path),
		"Pass the changelog path explicitly: clogfmt <path>",
		"Or create one with: clogfmt new",
		"Or set 'path' in .clogfmt.yml",
	)
}

// ChangelogExists creates an error for 'new' refusing to overwrite a file.
func ChangelogExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("%s exists (use --force to overwrite)", path),
	)
}

// InvalidOutputFormat creates an error for an unsupported --format value.
func InvalidOutputFormat(provided string, allowed []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid format: %s", provided),
		"--format "+strings.Join(allowed, "|"),
		fmt.Sprintf("Supported formats: %s", strings.Join(allowed, ", ")),
	)
}

// InvalidColorMode creates an error for an unsupported --color value.
func InvalidColorMode(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid color mode: %s", provided),
		"--color auto|always|never",
	)
}

// StdinNotAllowed creates an error when '-' is combined with other paths.
func StdinNotAllowed() *CLIError {
	return NewArgumentError(
		"'-' (stdin) cannot be combined with other paths",
		"Format stdin on its own: cat CHANGELOG.md | clogfmt -",
	)
}

// ConflictingFlags creates an error for two flags that cannot be used together.
func ConflictingFlags(a, b string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("--%s and --%s cannot be used together", a, b),
	)
}

// ConfigInvalid wraps a configuration load failure.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration, "invalid configuration",
		"Check .clogfmt.yml and ~/.config/clogfmt/config.yml",
		"Run 'clogfmt config show' to see the effective values",
	)
}
