package changelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ErrorKind classifies structural parse failures.
type ErrorKind int

const (
	ErrUnprocessable ErrorKind = iota + 1
	ErrHeadingLevel
	ErrChangeTitle
	ErrDuplicateVersion
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnprocessable:
		return "unprocessable text"
	case ErrHeadingLevel:
		return "wrong heading level"
	case ErrChangeTitle:
		return "unexpected change title"
	case ErrDuplicateVersion:
		return "duplicate version"
	default:
		return "parse error"
	}
}

// ParseError is a located structural error. Row is 0-based and the column
// span [ColStart, ColEnd) is half-open, counted in runes. The carets in
// Excerpt are aligned by display width.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Row      int
	ColStart int
	ColEnd   int
	Hint     string
	// Excerpt is the message followed by the annotated source lines.
	Excerpt string

	// ExpectedLevel and FoundLevel are set for ErrHeadingLevel.
	// FoundLevel is 0 when a list appears with no heading at all.
	ExpectedLevel int
	FoundLevel    int
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return e.Excerpt + "\n\nHint: " + e.Hint
	}
	return e.Excerpt
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// AsParseError returns the *ParseError in err's chain, or nil.
func AsParseError(err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}

// annotate renders the location line and a source excerpt with carets
// under [colStart, colEnd).
func annotate(lines []string, row, colStart, colEnd int) string {
	if row >= len(lines) {
		row = len(lines) - 1
	}
	if row < 0 {
		row = 0
	}

	var prev, line string
	if row < len(lines) {
		line = lines[row]
	}
	if row > 0 {
		prev = lines[row-1]
	}

	if colStart < 0 {
		colStart = 0
	}
	if colEnd < colStart+1 {
		colEnd = colStart + 1
	}
	pad, width := displaySpan([]rune(line), colStart, colEnd)

	var sb strings.Builder
	fmt.Fprintf(&sb, "at line %d, column %d:\n\n", row+1, colStart+1)
	if prev != "" {
		sb.WriteString("  " + prev + "\n")
	}
	sb.WriteString("  " + line + "\n")
	sb.WriteString("  " + strings.Repeat(" ", pad) + strings.Repeat("^", width))
	return sb.String()
}

// displaySpan converts the rune span [start, end) of line into terminal
// columns: the padding before it and its width, at least 1. Runes past the
// end of line count one column each.
func displaySpan(line []rune, start, end int) (pad, width int) {
	cols := func(from, to int) int {
		n := 0
		for i := from; i < to; i++ {
			if i < len(line) {
				n += runewidth.RuneWidth(line[i])
			} else {
				n++
			}
		}
		return n
	}
	return cols(0, start), max(cols(start, end), 1)
}

// splitLines splits source into lines without their terminators.
func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
