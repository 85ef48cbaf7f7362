package driver

import (
	"fmt"
	"strings"
)

// Summary counts results by outcome.
type Summary struct {
	Total       int
	Reformatted int
	Unchanged   int
	Invalid     int
	Failed      int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Invalid():
			s.Invalid++
		case r.Failed():
			s.Failed++
		case r.Changed:
			s.Reformatted++
		default:
			s.Unchanged++
		}
	}
	return s
}

// String renders the summary line, e.g. "2 files reformatted, 1 file
// left unchanged, 1 file invalid".
func (s Summary) String(check bool) string {
	verb := "reformatted"
	if check {
		verb = "would be reformatted"
	}

	var parts []string
	if s.Reformatted > 0 {
		parts = append(parts, fmt.Sprintf("%s %s", plural(s.Reformatted), verb))
	}
	if s.Unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%s left unchanged", plural(s.Unchanged)))
	}
	if s.Invalid > 0 {
		parts = append(parts, fmt.Sprintf("%s invalid", plural(s.Invalid)))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%s could not be read", plural(s.Failed)))
	}
	if len(parts) == 0 {
		return "no files processed"
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
