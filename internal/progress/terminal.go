// Package progress shows a spinner on interactive terminals while clogfmt
// waits on something slow, such as fetching a remote changelog.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// TerminalCapabilities describes what the output terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsUnicode bool
}

// ProgressSymbols holds the spinner character set for a terminal.
type ProgressSymbols struct {
	SpinnerSet int
}

// DetectTerminalCapabilities detects terminal features of w.
// Checks: w isatty, CLOGFMT_ASCII env.
func DetectTerminalCapabilities(w io.Writer) TerminalCapabilities {
	f, ok := w.(*os.File)
	isTTY := ok && term.IsTerminal(int(f.Fd()))
	forceASCII := os.Getenv("CLOGFMT_ASCII") == "1"

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// SelectSymbols returns the spinner set for the terminal.
// Unicode: braille dots (set 14). ASCII: |/-\ (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{SpinnerSet: 14}
	}
	return ProgressSymbols{SpinnerSet: 9}
}

// Spinner is a running spinner. The zero value is a no-op.
type Spinner struct {
	s *spinner.Spinner
}

// Start shows a spinner with message on w. Nothing is drawn when w is not
// a terminal.
func Start(w io.Writer, message string) *Spinner {
	caps := DetectTerminalCapabilities(w)
	if !caps.IsTTY {
		return &Spinner{}
	}

	set := SelectSymbols(caps).SpinnerSet
	s := spinner.New(spinner.CharSets[set], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()
	return &Spinner{s: s}
}

// Stop removes the spinner. It is safe to call on a no-op spinner and more
// than once.
func (sp *Spinner) Stop() {
	if sp == nil || sp.s == nil {
		return
	}
	sp.s.Stop()
	sp.s = nil
}
