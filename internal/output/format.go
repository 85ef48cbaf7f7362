// Package output provides terminal output helpers for the clogfmt CLI:
// color mode handling and the per-file status lines.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color modes accepted by --color and the color config key.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// TerminalWidth returns the width of the terminal w is attached to, or 0
// when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return 0
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ValidColorMode reports whether mode is one of auto, always or never.
func ValidColorMode(mode string) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// ApplyColorMode enables or disables colors globally. In auto mode colors
// are used only when w is a terminal and NO_COLOR is unset.
func ApplyColorMode(mode string, w io.Writer) {
	switch mode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	default:
		_, noColor := os.LookupEnv("NO_COLOR")
		color.NoColor = noColor || !IsTerminal(w)
	}
}

var (
	pathText = color.New(color.FgCyan).SprintFunc()
	okText   = color.New(color.FgGreen).SprintFunc()
	warnText = color.New(color.FgYellow, color.Bold).SprintFunc()
	errLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

// PrintReformatted prints "<path> was reformatted".
func PrintReformatted(out io.Writer, path string) {
	fmt.Fprintf(out, "%s %s\n", pathText(path), warnText("was reformatted"))
}

// PrintWellFormatted prints "<path> is well-formatted".
func PrintWellFormatted(out io.Writer, path string) {
	fmt.Fprintf(out, "%s %s\n", pathText(path), okText("is well-formatted"))
}

// PrintWouldReformat prints "ERROR: <path> would be reformatted".
func PrintWouldReformat(out io.Writer, path string) {
	fmt.Fprintf(out, "%s %s would be reformatted\n", errLabel("ERROR:"), pathText(path))
}

// PrintFileError prints "ERROR: <path>: <err>".
func PrintFileError(out io.Writer, path string, err error) {
	fmt.Fprintf(out, "%s %s: %v\n", errLabel("ERROR:"), pathText(path), err)
}

// PrintSummary prints a dimmed summary line.
func PrintSummary(out io.Writer, summary string) {
	fmt.Fprintln(out, dimText(summary))
}
