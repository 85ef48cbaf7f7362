package changelog

import "strings"

// IndentWidth is the number of spaces per list nesting level.
const IndentWidth = 2

// ChangeType is one of the Keep a Changelog section names.
type ChangeType string

const (
	Added      ChangeType = "Added"
	Changed    ChangeType = "Changed"
	Deprecated ChangeType = "Deprecated"
	Removed    ChangeType = "Removed"
	Fixed      ChangeType = "Fixed"
	Security   ChangeType = "Security"
)

var changeTypeOrder = []ChangeType{Added, Changed, Deprecated, Removed, Fixed, Security}

var changeTypesByName = map[string]ChangeType{
	"Added":      Added,
	"Changed":    Changed,
	"Deprecated": Deprecated,
	"Removed":    Removed,
	"Fixed":      Fixed,
	"Security":   Security,
}

// ChangeTypes returns the section names in their rendering order.
func ChangeTypes() []ChangeType {
	out := make([]ChangeType, len(changeTypeOrder))
	copy(out, changeTypeOrder)
	return out
}

// LookupChangeType resolves a section title. The match is exact and case-sensitive.
func LookupChangeType(name string) (ChangeType, bool) {
	ct, ok := changeTypesByName[name]
	return ct, ok
}

// Document is a parsed changelog file.
type Document struct {
	Title    string    `json:"title" yaml:"title" toml:"title"`
	Intro    string    `json:"intro" yaml:"intro" toml:"intro"`
	Versions []Version `json:"versions" yaml:"versions" toml:"versions"`
}

// Version is one release block, introduced by an H2 heading.
// Number has surrounding brackets removed; Date is whatever followed " - ".
type Version struct {
	Number  string                       `json:"number" yaml:"number" toml:"number"`
	Date    string                       `json:"date" yaml:"date" toml:"date"`
	Changes map[ChangeType]ChangeSection `json:"changes" yaml:"changes" toml:"changes"`
}

// ChangeSection holds the items of one H3 section and any trailing
// link-reference footer.
type ChangeSection struct {
	Items  []ListItem `json:"items" yaml:"items" toml:"items"`
	Footer string     `json:"footer" yaml:"footer" toml:"footer"`
}

// ListItem is a single dash entry. Level is the nesting depth.
type ListItem struct {
	Text  string `json:"text" yaml:"text" toml:"text"`
	Level int    `json:"level" yaml:"level" toml:"level"`
}

// Entry is a flattened view of a single item with its version and section.
type Entry struct {
	Text     string     `json:"text" yaml:"text"`
	Level    int        `json:"level" yaml:"level"`
	Category ChangeType `json:"category" yaml:"category"`
	Version  string     `json:"version" yaml:"version"`
}

// Merge returns a section holding the items of c followed by those of other.
// Footers are joined with a blank line.
func (c ChangeSection) Merge(other ChangeSection) ChangeSection {
	items := make([]ListItem, 0, len(c.Items)+len(other.Items))
	items = append(items, c.Items...)
	items = append(items, other.Items...)

	return ChangeSection{
		Items:  items,
		Footer: joinBlocks("\n\n", c.Footer, other.Footer),
	}
}

// IsEmpty reports whether the section has neither items nor footer.
func (c ChangeSection) IsEmpty() bool {
	return len(c.Items) == 0 && c.Footer == ""
}

// Section is a ChangeSection paired with its type.
type Section struct {
	Type ChangeType
	ChangeSection
}

// Sections returns the sections present in v in canonical order.
func (v Version) Sections() []Section {
	var out []Section
	for _, ct := range changeTypeOrder {
		if cs, ok := v.Changes[ct]; ok {
			out = append(out, Section{Type: ct, ChangeSection: cs})
		}
	}
	return out
}

// IsUnreleased reports whether v is the "Unreleased" placeholder block.
func (v Version) IsUnreleased() bool {
	return strings.EqualFold(v.Number, "unreleased")
}

// Count returns the number of items across all sections.
func (v Version) Count() int {
	n := 0
	for _, cs := range v.Changes {
		n += len(cs.Items)
	}
	return n
}

// Entries returns a flattened list of all items in v, in section order.
func (v Version) Entries() []Entry {
	entries := make([]Entry, 0, v.Count())
	for _, s := range v.Sections() {
		for _, item := range s.Items {
			entries = append(entries, Entry{
				Text:     item.Text,
				Level:    item.Level,
				Category: s.Type,
				Version:  v.Number,
			})
		}
	}
	return entries
}

// joinBlocks joins the non-empty parts with sep and trims the result.
func joinBlocks(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.TrimSpace(strings.Join(kept, sep))
}
