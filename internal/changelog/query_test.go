package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		Title: "Changelog",
		Versions: []Version{
			{Number: "1.0.0", Date: "2024-01-15", Changes: map[ChangeType]ChangeSection{
				Added: {Items: []ListItem{{Text: "A1"}, {Text: "A2"}}},
			}},
			{Number: "Unreleased", Changes: map[ChangeType]ChangeSection{
				Fixed: {Items: []ListItem{{Text: "U1"}}},
			}},
			{Number: "1.1.0", Date: "2024-02-01", Changes: map[ChangeType]ChangeSection{
				Changed: {Items: []ListItem{{Text: "C1"}}},
			}},
		},
	}
}

func TestDocument_Version(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		version string
		wantErr bool
		wantVer string
	}{
		"exact match":        {version: "1.0.0", wantVer: "1.0.0"},
		"with v prefix":      {version: "v1.0.0", wantVer: "1.0.0"},
		"uppercase v prefix": {version: "V1.1.0", wantVer: "1.1.0"},
		"bracketed":          {version: "[1.0.0]", wantVer: "1.0.0"},
		"unreleased":         {version: "unreleased", wantVer: "Unreleased"},
		"version not found":  {version: "2.0.0", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := sampleDocument().Version(tt.version)
			if tt.wantErr {
				require.Error(t, err)
				var notFound *VersionNotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, []string{"Unreleased", "1.1.0", "1.0.0"}, notFound.AvailableVersions)
				assert.Contains(t, err.Error(), `version "2.0.0" not found`)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVer, v.Number)
		})
	}
}

func TestDocument_Queries(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()

	assert.Equal(t, []string{"Unreleased", "1.1.0", "1.0.0"}, doc.ListVersions())
	assert.Equal(t, "Unreleased", doc.Unreleased().Number)
	assert.Equal(t, "1.1.0", doc.LatestRelease().Number)
	assert.Equal(t, 4, doc.EntryCount())

	all := doc.AllEntries()
	require.Len(t, all, 4)
	assert.Equal(t, "U1", all[0].Text)
	assert.Equal(t, "C1", all[1].Text)

	assert.Equal(t, []Entry{}, doc.LastN(0))
	assert.Len(t, doc.LastN(2), 2)
	assert.Len(t, doc.LastN(10), 4)

	assert.Equal(t, "Unreleased", doc.ListVersions()[0])
	assert.Equal(t, "1.0.0", doc.Versions[0].Number)

	empty := &Document{}
	assert.Nil(t, empty.Unreleased())
	assert.Nil(t, empty.LatestRelease())
}

func TestNormalizeVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"bare":       {in: "1.2.3", want: "1.2.3"},
		"v prefix":   {in: "v1.2.3", want: "1.2.3"},
		"brackets":   {in: " [V1.2.3] ", want: "1.2.3"},
		"unreleased": {in: "Unreleased", want: "unreleased"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeVersion(tt.in))
		})
	}
}
