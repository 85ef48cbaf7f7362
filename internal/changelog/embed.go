package changelog

import (
	_ "embed"
	"strings"
	"time"
)

//go:embed template_intro.md
var templateIntro string

const (
	templateTitle   = "Changelog"
	templateVersion = "0.1.0"
	templateItem    = "Initial version."
	dateLayout      = "2006-01-02"
)

// TemplateIntro returns the boilerplate intro used for new changelogs.
func TemplateIntro() string {
	return strings.TrimSpace(templateIntro)
}

// NewTemplate builds the Document for a fresh changelog with a single
// 0.1.0 release dated today.
func NewTemplate(today time.Time) *Document {
	return &Document{
		Title: templateTitle,
		Intro: TemplateIntro(),
		Versions: []Version{{
			Number: templateVersion,
			Date:   today.Format(dateLayout),
			Changes: map[ChangeType]ChangeSection{
				Added: {Items: []ListItem{{Text: templateItem}}},
			},
		}},
	}
}

// RenderNewTemplate renders NewTemplate for the current local date.
func RenderNewTemplate() string {
	return Render(NewTemplate(time.Now()))
}
