package changelog

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// LineWidth is the maximum display width of wrapped lines.
const LineWidth = 90

// wrap fills the words of text into lines of at most width display columns.
// The first line starts with first, later ones with rest. Words longer than
// the width are never split.
func wrap(text string, width int, first, rest string) []string {
	words := glueMarkers(strings.Fields(text))
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 1)
	line := first + words[0]
	lineWidth := runewidth.StringWidth(line)
	for _, w := range words[1:] {
		ww := runewidth.StringWidth(w)
		if lineWidth+1+ww <= width {
			line += " " + w
			lineWidth += 1 + ww
			continue
		}
		lines = append(lines, line)
		line = rest + w
		lineWidth = runewidth.StringWidth(line)
	}
	return append(lines, line)
}

// glueMarkers attaches words starting with '-' or '#' to the preceding word
// so a wrapped line never begins with a list or heading marker.
func glueMarkers(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(out) > 0 && (w[0] == '-' || w[0] == '#') {
			out[len(out)-1] += " " + w
			continue
		}
		out = append(out, w)
	}
	return out
}

// wrapParagraph wraps each line of text on its own, keeping blank lines.
func wrapParagraph(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		wrapped := wrap(line, LineWidth, "", "")
		if len(wrapped) == 0 {
			out = append(out, "")
			continue
		}
		out = append(out, wrapped...)
	}
	return strings.Join(out, "\n")
}

// wrapItem renders a list item as a bullet with hanging indent, shifted
// right by its nesting level.
func wrapItem(item ListItem) string {
	lines := wrap(item.Text, LineWidth, "- ", strings.Repeat(" ", IndentWidth))
	if len(lines) == 0 {
		lines = []string{"-"}
	}

	indent := strings.Repeat(" ", max(item.Level, 0)*IndentWidth)
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}
