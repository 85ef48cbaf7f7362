package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"input":         {category: Input, want: "Input Error"},
		"unknown":       {category: ErrorCategory(42), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	base := ChangelogExists("CHANGELOG.md")
	wrapped := fmt.Errorf("new: %w", base)

	assert.Same(t, base, AsCLIError(wrapped))
	assert.Nil(t, AsCLIError(fmt.Errorf("plain")))
	assert.Nil(t, AsCLIError(nil))
}

func TestInputFailure(t *testing.T) {
	t.Parallel()

	assert.Nil(t, InputFailure(nil))

	cause := &fs.PathError{Op: "open", Path: "CHANGELOG.md", Err: fs.ErrPermission}
	err := InputFailure(cause)
	assert.Equal(t, Input, err.Category)
	assert.Equal(t, cause.Error(), err.Error())
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestConfigInvalid_KeepsCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("bad jobs")
	err := ConfigInvalid(cause)
	assert.Equal(t, Configuration, err.Category)
	assert.Equal(t, "invalid configuration: bad jobs", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, WrapWithMessage(nil, Configuration, "unused"))
}

func TestChangelogNotFound(t *testing.T) {
	t.Parallel()

	err := ChangelogNotFound("docs/CHANGELOG.md")
	require.NotNil(t, err)
	assert.Equal(t, Input, err.Category)
	assert.Equal(t, "docs/CHANGELOG.md not found", err.Error())
	assert.Len(t, err.Remediation, 3)
}

func TestFormatFailure(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want string
	}{
		"nil": {
			err:  nil,
			want: "",
		},
		"plain error": {
			err:  fmt.Errorf("CHANGELOG.md would be reformatted"),
			want: "ERROR: CHANGELOG.md would be reformatted\n",
		},
		"bare cli error": {
			err:  ChangelogExists("CHANGELOG.md"),
			want: "ERROR: CHANGELOG.md exists (use --force to overwrite)\n",
		},
		"usage and remediation": {
			err: InvalidOutputFormat("xml", []string{"json", "yaml"}),
			want: "Error [Argument Error]: invalid format: xml\n" +
				"\nUsage: --format json|yaml\n" +
				"\nTo fix this:\n  • Supported formats: json, yaml\n",
		},
		"wrapped config error": {
			err: fmt.Errorf("setup: %w", ConfigInvalid(fmt.Errorf("bad jobs"))),
			want: "Error [Configuration Error]: invalid configuration: bad jobs\n" +
				"\nTo fix this:\n" +
				"  • Check .clogfmt.yml and ~/.config/clogfmt/config.yml\n" +
				"  • Run 'clogfmt config show' to see the effective values\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			// fatih/color disables itself when stdout is not a terminal,
			// which is always the case under go test.
			assert.Equal(t, tt.want, FormatFailure(tt.err))
		})
	}
}
