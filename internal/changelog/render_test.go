package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc  *Document
		want string
	}{
		"nil document": {
			doc:  nil,
			want: "",
		},
		"round trip example": {
			doc: &Document{
				Title: "Changelog",
				Versions: []Version{{
					Number: "1.0.0",
					Date:   "2020-01-01",
					Changes: map[ChangeType]ChangeSection{
						Added: {Items: []ListItem{{Text: "Thing one."}}},
					},
				}},
			},
			want: "# Changelog\n\n\n\n## 1.0.0 - 2020-01-01\n\n### Added\n\n- Thing one.\n",
		},
		"title and intro only": {
			doc:  &Document{Title: "T", Intro: "Line one.\n\nLine two."},
			want: "# T\n\nLine one.\n\nLine two.\n",
		},
		"sections in canonical order": {
			doc: &Document{
				Versions: []Version{{
					Number: "1.0",
					Changes: map[ChangeType]ChangeSection{
						Security: {Items: []ListItem{{Text: "s"}}},
						Added:    {Items: []ListItem{{Text: "a"}}},
						Fixed:    {Items: []ListItem{{Text: "f"}}},
					},
				}},
			},
			want: "\n\n## 1.0\n\n### Added\n\n- a\n\n### Fixed\n\n- f\n\n### Security\n\n- s\n",
		},
		"footer after items": {
			doc: &Document{
				Versions: []Version{{
					Number: "1.0",
					Changes: map[ChangeType]ChangeSection{
						Changed: {Items: []ListItem{{Text: "c"}}, Footer: "[1.0]: https://example.com"},
					},
				}},
			},
			want: "\n\n## 1.0\n\n### Changed\n\n- c\n\n[1.0]: https://example.com\n",
		},
		"marker-like labels keep brackets": {
			doc: &Document{
				Versions: []Version{
					{Number: "", Date: "2020-01-01"},
					{Number: "-rc"},
				},
			},
			want: "\n\n## [] - 2020-01-01\n\n\n## [-rc]\n",
		},
		"nested and empty items": {
			doc: &Document{
				Versions: []Version{{
					Number: "1.0",
					Changes: map[ChangeType]ChangeSection{
						Removed: {Items: []ListItem{{Text: "top"}, {Text: "child", Level: 1}, {Text: "", Level: 2}}},
					},
				}},
			},
			want: "\n\n## 1.0\n\n### Removed\n\n- top\n  - child\n    -\n",
		},
		"empty version": {
			doc:  &Document{Versions: []Version{{Number: "2.0", Date: "soon"}}},
			want: "\n\n## 2.0 - soon\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(tt.doc))
		})
	}
}

func TestRender_VersionOrder(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		numbers []string
		want    []string
	}{
		"unreleased sorts above releases": {
			numbers: []string{"1.0.0", "unreleased"},
			want:    []string{"unreleased", "1.0.0"},
		},
		"semantic not lexical order": {
			numbers: []string{"1.2.0", "1.10.0", "1.9.1"},
			want:    []string{"1.10.0", "1.9.1", "1.2.0"},
		},
		"prerelease below release": {
			numbers: []string{"2.0.0-rc.1", "2.0.0", "v1.0.0"},
			want:    []string{"2.0.0", "2.0.0-rc.1", "v1.0.0"},
		},
		"invalid numbers keep their relative order": {
			numbers: []string{"foo", "1.0.0", "bar", "2.0.0"},
			want:    []string{"foo", "bar", "2.0.0", "1.0.0"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := &Document{}
			for _, n := range tt.numbers {
				doc.Versions = append(doc.Versions, Version{Number: n})
			}

			var got []string
			for _, line := range strings.Split(Render(doc), "\n") {
				if number, ok := strings.CutPrefix(line, "## "); ok {
					got = append(got, number)
				}
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.numbers[0], doc.Versions[0].Number, "input must not be reordered")
		})
	}
}

func TestRender_Wrapping(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		item ListItem
		want string
	}{
		"hanging indent": {
			item: ListItem{Text: words("word", 30)},
			want: "- " + words("word", 17) + "\n  " + words("word", 13),
		},
		"nested block shifts right": {
			item: ListItem{Text: words("word", 30), Level: 1},
			want: "  - " + words("word", 17) + "\n    " + words("word", 13),
		},
		"whitespace is reflowed": {
			item: ListItem{Text: "spread\nover   lines"},
			want: "- spread over lines",
		},
		"marker words stay on the previous line": {
			item: ListItem{Text: words("word", 17) + " -xyzw"},
			want: "- " + words("word", 16) + "\n  word -xyzw",
		},
		"long words are not split": {
			item: ListItem{Text: "see " + strings.Repeat("x", 100)},
			want: "- see\n  " + strings.Repeat("x", 100),
		},
		"wide runes count double": {
			item: ListItem{Text: words("漢字", 30)},
			want: "- " + words("漢字", 17) + "\n  " + words("漢字", 13),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapItem(tt.item))
		})
	}
}

func TestRender_IntroWrapsLinesIndependently(t *testing.T) {
	t.Parallel()

	doc := &Document{Intro: words("lorem", 20) + "\nshort line\n\n[ref]: https://example.com"}
	want := words("lorem", 15) + "\n" + words("lorem", 5) + "\nshort line\n\n[ref]: https://example.com\n"
	assert.Equal(t, want, Render(doc))
}

func TestRenderNewTemplate(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	want := "# Changelog\n\n" +
		"All notable changes to this project will be documented in this file.\n\n" +
		"The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/),\n" +
		"and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).\n" +
		"\n\n## 0.1.0 - 2024-05-01\n\n### Added\n\n- Initial version.\n"

	got := Render(NewTemplate(today))
	assert.Equal(t, want, got)

	doc, err := Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, Render(doc))

	assert.Contains(t, RenderNewTemplate(), "## 0.1.0 - "+time.Now().Format("2006-01-02"))
}

func TestRenderTo(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	doc := &Document{Title: "T"}
	require.NoError(t, RenderTo(&sb, doc))
	assert.Equal(t, Render(doc), sb.String())
}

func TestRender_SectionFootersCollapse(t *testing.T) {
	t.Parallel()

	doc, err := Parse("## 1.0\n\n### Added\n\n- a\n\n[1]: u\n\n[2]: v\n")
	require.NoError(t, err)
	assert.Equal(t, "[1]: u\n[2]: v", doc.Versions[0].Changes[Added].Footer)
	assert.Equal(t, "\n\n## 1.0\n\n### Added\n\n- a\n\n[1]: u\n[2]: v\n", Render(doc))
}

func TestIdempotence(t *testing.T) {
	t.Parallel()

	sources := map[string]string{
		"messy spacing": "\n# Changelog\nIntro   text\n## [0.1.0]\n### Fixed\n- x\n### Added\n-   y\n      - deep\n",
		"footers everywhere": "# C\n\nIntro.\n\n[a]: x\n\n## 1.0\n### Added\n- a\n\n[1]: u\n\n[2]: v\n\n### Added\n- b\n\n[3]: w\n",
		"unsorted versions": "## 1.0.0\n### Added\n- old\n## Unreleased\n### Added\n- new\n## 2.0.0\n",
		"long items": "## 1.0\n### Changed\n- " + words("alpha -beta #gamma", 12) + "\n  - " + words("delta", 25) + "\n",
		"long intro": words("intro", 40) + "\n\n## 1.0\n",
		"empty label": "## [] - 2020-01-01\n### Added\n- a\n",
		"dash label": "## [-rc] - 2020-01-01\n",
		"hash label": "## [#5]\n",
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse(src)
			require.NoError(t, err)
			first := Render(doc)

			again, err := Parse(first)
			require.NoError(t, err, "rendered output must parse:\n%s", first)
			assert.Equal(t, first, Render(again))
		})
	}
}

func TestGolden(t *testing.T) {
	t.Parallel()

	inputs, err := filepath.Glob(filepath.Join("testdata", "*.in.md"))
	require.NoError(t, err)
	require.NotEmpty(t, inputs)

	for _, in := range inputs {
		name := strings.TrimSuffix(filepath.Base(in), ".in.md")
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src, err := os.ReadFile(in)
			require.NoError(t, err)
			want, err := os.ReadFile(filepath.Join("testdata", name+".out.md"))
			require.NoError(t, err)

			doc, err := Parse(string(src))
			require.NoError(t, err)
			assert.Equal(t, string(want), Render(doc))
		})
	}
}

func TestGoldenErrors(t *testing.T) {
	t.Parallel()

	inputs, err := filepath.Glob(filepath.Join("testdata", "*.err.md"))
	require.NoError(t, err)
	require.NotEmpty(t, inputs)

	for _, in := range inputs {
		name := strings.TrimSuffix(filepath.Base(in), ".err.md")
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src, err := os.ReadFile(in)
			require.NoError(t, err)
			want, err := os.ReadFile(filepath.Join("testdata", name+".err.txt"))
			require.NoError(t, err)

			_, err = Parse(string(src))
			require.Error(t, err)
			assert.Equal(t, strings.TrimSpace(string(want)), err.Error())
		})
	}
}
