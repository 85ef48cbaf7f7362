package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// CategoryStyle defines the color and icon for a change type.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

var categoryStyles = map[ChangeType]CategoryStyle{
	Added:      {Color: color.New(color.FgGreen), Icon: "✓"},
	Changed:    {Color: color.New(color.FgBlue), Icon: "~"},
	Deprecated: {Color: color.New(color.FgRed), Icon: "⚠"},
	Removed:    {Color: color.New(color.FgRed), Icon: "✗"},
	Fixed:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	Security:   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = 80 columns)
}

// FormatTerminal writes entries grouped by version with color-coded
// category headers.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, group := range groupEntriesByVersion(entries) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeVersionHeader(group.version, "", w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, err)
		}
		if err := writeCategories(group.entries, w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, err)
		}
	}

	return nil
}

// FormatVersion writes a single version's entries to the writer.
func FormatVersion(v *Version, w io.Writer, opts FormatOptions) error {
	if err := writeVersionHeader(v.Number, v.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return writeCategories(v.Entries(), w, opts, resolveWidth(opts.MaxWidth))
}

type versionGroup struct {
	version string
	entries []Entry
}

// groupEntriesByVersion groups consecutive entries by version, preserving order.
func groupEntriesByVersion(entries []Entry) []versionGroup {
	var groups []versionGroup
	for _, e := range entries {
		if len(groups) == 0 || groups[len(groups)-1].version != e.Version {
			groups = append(groups, versionGroup{version: e.Version})
		}
		last := &groups[len(groups)-1]
		last.entries = append(last.entries, e)
	}
	return groups
}

func writeCategories(entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	grouped := make(map[ChangeType][]Entry)
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}

	for _, ct := range changeTypeOrder {
		list, ok := grouped[ct]
		if !ok {
			continue
		}
		style := categoryStyles[ct]
		if err := writeCategoryHeader(ct, style, w, opts); err != nil {
			return err
		}
		for _, entry := range list {
			if err := writeEntry(entry, style, w, opts, width); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeVersionHeader(version, date string, w io.Writer, opts FormatOptions) error {
	header := version
	if date != "" {
		header = fmt.Sprintf("%s (%s)", version, date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func writeCategoryHeader(ct ChangeType, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", ct)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(string(ct)))
	return err
}

func writeEntry(entry Entry, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	indent := "  " + strings.Repeat(" ", max(entry.Level, 0)*IndentWidth)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s- %s\n", indent, entry.Text)
		return err
	}

	lines := wrap(entry.Text, width, indent+"- ", indent+"  ")
	if len(lines) == 0 {
		lines = []string{indent + "-"}
	}
	colored := style.Color.SprintFunc()
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, colored(line)); err != nil {
			return err
		}
	}
	return nil
}

// resolveWidth returns maxWidth, or 80 when it is unset.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return 80
}
