package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupChangeType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name   string
		want   ChangeType
		wantOK bool
	}{
		"exact":         {name: "Deprecated", want: Deprecated, wantOK: true},
		"lowercase":     {name: "deprecated", wantOK: false},
		"trailing text": {name: "Added stuff", wantOK: false},
		"empty":         {name: "", wantOK: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := LookupChangeType(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChangeTypes_Order(t *testing.T) {
	t.Parallel()

	got := ChangeTypes()
	assert.Equal(t, []ChangeType{Added, Changed, Deprecated, Removed, Fixed, Security}, got)

	got[0] = "Mutated"
	assert.Equal(t, Added, ChangeTypes()[0], "callers must not be able to reorder sections")
}

func TestChangeSection_Merge(t *testing.T) {
	t.Parallel()

	a := ChangeSection{Items: []ListItem{{Text: "one"}}, Footer: "[a]: x\n"}
	b := ChangeSection{Items: []ListItem{{Text: "two", Level: 1}}, Footer: "  [b]: y"}

	merged := a.Merge(b)
	assert.Equal(t, []ListItem{{Text: "one"}, {Text: "two", Level: 1}}, merged.Items)
	assert.Equal(t, "[a]: x\n\n[b]: y", merged.Footer)
	assert.Len(t, a.Items, 1, "receiver is left untouched")

	assert.Equal(t, "[b]: y", ChangeSection{}.Merge(b).Footer)
	assert.True(t, ChangeSection{}.Merge(ChangeSection{}).IsEmpty())
}

func TestVersion_Entries(t *testing.T) {
	t.Parallel()

	v := Version{
		Number: "1.0",
		Changes: map[ChangeType]ChangeSection{
			Fixed: {Items: []ListItem{{Text: "f"}}},
			Added: {Items: []ListItem{{Text: "a"}, {Text: "a2", Level: 1}}},
		},
	}

	assert.Equal(t, []Entry{
		{Text: "a", Category: Added, Version: "1.0"},
		{Text: "a2", Level: 1, Category: Added, Version: "1.0"},
		{Text: "f", Category: Fixed, Version: "1.0"},
	}, v.Entries())
	assert.Equal(t, 3, v.Count())
	assert.False(t, v.IsUnreleased())
	assert.True(t, Version{Number: "Unreleased"}.IsUnreleased())
}
