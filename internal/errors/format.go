package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Colors follow color.NoColor, which the CLI sets from --color.
var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// FormatFailure formats err for stderr. A CLIError with usage or
// remediation gets the structured layout:
//
//	Error [Argument Error]: invalid format: xml
//
//	Usage: --format json|yaml|toml
//
//	To fix this:
//	  • Supported formats: json, yaml, toml
//
// Any other error, parse errors included, is a single "ERROR: <message>"
// line.
func FormatFailure(err error) string {
	if err == nil {
		return ""
	}

	cliErr := AsCLIError(err)
	if cliErr == nil || (cliErr.Usage == "" && len(cliErr.Remediation) == 0) {
		return errorLabel("ERROR:") + " " + err.Error() + "\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", errorLabel("Error"), categoryFmt(cliErr.Category), errorMsg(cliErr.Message))
	if cliErr.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", usageLabel("Usage: "), usageText(cliErr.Usage))
	}
	if len(cliErr.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", fixLabel("To fix this:"))
		for _, step := range cliErr.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", bullet("•"), step)
		}
	}
	return sb.String()
}

// FprintFailure writes FormatFailure(err) to w.
func FprintFailure(w io.Writer, err error) {
	fmt.Fprint(w, FormatFailure(err))
}
