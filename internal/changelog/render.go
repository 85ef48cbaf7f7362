package changelog

import (
	"io"
	"strings"
)

// Render formats doc as canonical markdown. Versions are ordered newest
// first, sections follow the ChangeTypes order, and text is wrapped to
// LineWidth columns. Render never fails.
func Render(doc *Document) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	if doc.Title != "" {
		sb.WriteString("# " + doc.Title + "\n\n")
	}
	if doc.Intro != "" {
		sb.WriteString(wrapParagraph(doc.Intro) + "\n")
	}

	for _, v := range sortVersions(doc.Versions) {
		renderVersion(&sb, v)
	}

	return sb.String()
}

// RenderTo writes Render(doc) to w.
func RenderTo(w io.Writer, doc *Document) error {
	_, err := io.WriteString(w, Render(doc))
	return err
}

func renderVersion(sb *strings.Builder, v Version) {
	sb.WriteString("\n\n## " + versionLabel(v.Number))
	if v.Date != "" {
		sb.WriteString(" - " + v.Date)
	}
	sb.WriteString("\n")

	for _, s := range v.Sections() {
		sb.WriteString("\n### " + string(s.Type) + "\n\n")
		for _, item := range s.Items {
			sb.WriteString(wrapItem(item) + "\n")
		}
		if s.Footer != "" {
			sb.WriteString("\n" + s.Footer + "\n")
		}
	}
}

// versionLabel returns number as written in a version heading. Numbers that
// would read back as a list or heading marker keep their brackets.
func versionLabel(number string) string {
	if number == "" || strings.HasPrefix(number, "-") || strings.HasPrefix(number, "#") {
		return "[" + number + "]"
	}
	return number
}
