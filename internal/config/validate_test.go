package config

import (
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLKeyOrigins(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data    string
		want    map[string]keyOrigin
		wantErr *ValidationError
	}{
		"empty": {
			data: "   \n",
			want: map[string]keyOrigin{},
		},
		"comments only": {
			data: "# nothing set\n",
			want: map[string]keyOrigin{},
		},
		"nested keys": {
			data: "jobs: 2\nshow:\n  last: 3\n",
			want: map[string]keyOrigin{
				"jobs":      {source: "c.yml", line: 1, column: 1},
				"show.last": {source: "c.yml", line: 3, column: 3},
			},
		},
		"unknown key": {
			data:    "jobs: 2\ncolour: never\n",
			wantErr: &ValidationError{Source: "c.yml", Line: 2, Column: 1, Key: "colour", Message: "unknown configuration key"},
		},
		"unknown nested key": {
			data:    "show:\n  first: 1\n",
			wantErr: &ValidationError{Source: "c.yml", Line: 2, Column: 3, Key: "show.first", Message: "unknown configuration key"},
		},
		"scalar document": {
			data:    "just text\n",
			wantErr: &ValidationError{Source: "c.yml", Line: 1, Column: 1, Message: "expected a mapping of configuration keys"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := yamlKeyOrigins("c.yml", []byte(tt.data))
			if tt.wantErr != nil {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantErr, vErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYAMLKeyOrigins_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := yamlKeyOrigins("c.yml", []byte("path: CHANGELOG.md\njobs: [1\n"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "c.yml", vErr.Source)
	assert.GreaterOrEqual(t, vErr.Line, 2)
	assert.NotContains(t, vErr.Message, "yaml:")
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  ValidationError
		want string
	}{
		"located key":     {err: ValidationError{Source: "a.yml", Line: 2, Column: 3, Key: "show.last", Message: "must be at least 1"}, want: "a.yml:2:3: show.last: must be at least 1"},
		"line only":       {err: ValidationError{Source: "a.yml", Line: 4, Message: "bad"}, want: "a.yml:4: bad"},
		"env variable":    {err: ValidationError{Source: "CLOGFMT_JOBS", Key: "jobs", Message: "must be at most 256"}, want: "CLOGFMT_JOBS: jobs: must be at most 256"},
		"no key, no line": {err: ValidationError{Source: "a.json", Message: "bad"}, want: "a.json: bad"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	t.Parallel()

	template := GetDefaultConfigTemplate()
	origins, err := yamlKeyOrigins("template", []byte(template))
	require.NoError(t, err)
	assert.Len(t, origins, len(KnownKeys))

	path := writeConfig(t, t.TempDir(), ".clogfmt.yml", template)
	k := koanf.New(".")
	require.NoError(t, k.Load(file.Provider(path), yaml.Parser()))

	for key, schema := range KnownKeys {
		assert.True(t, k.Exists(key), "template missing key %s", key)
		assert.EqualValues(t, schema.Default, k.Get(key), "key %s", key)
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key     string
		value   string
		want    interface{}
		wantErr bool
	}{
		"bool":        {key: "recursive", value: "true", want: true},
		"bad bool":    {key: "recursive", value: "maybe", wantErr: true},
		"int":         {key: "show.last", value: "7", want: 7},
		"bad int":     {key: "jobs", value: "many", wantErr: true},
		"enum":        {key: "color", value: "never", want: "never"},
		"bad enum":    {key: "color", value: "blue", wantErr: true},
		"string":      {key: "path", value: "HISTORY.md", want: "HISTORY.md"},
		"unknown key": {key: "nope", value: "x", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseValue(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"color", "jobs", "path", "recursive", "repo_root_fallback", "show.last"}, SortedKeys())
}
