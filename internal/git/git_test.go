package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with a nested directory and returns both.
func initRepo(t *testing.T) (root, nested string) {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	_, err = git.PlainInit(root, false)
	require.NoError(t, err)

	nested = filepath.Join(root, "pkg", "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	return root, nested
}

func TestRepositoryRoot(t *testing.T) {
	t.Parallel()

	root, nested := initRepo(t)

	tests := map[string]struct {
		dir string
	}{
		"from root":   {dir: root},
		"from nested": {dir: nested},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := RepositoryRoot(tt.dir)
			require.NoError(t, err)
			assert.Equal(t, root, got)
		})
	}
}

func TestRepositoryRoot_NotRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := RepositoryRoot(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestFindAtRoot(t *testing.T) {
	t.Parallel()

	root, nested := initRepo(t)
	changelog := filepath.Join(root, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(changelog, []byte("# Changelog\n"), 0o644))

	path, ok := FindAtRoot(nested, "CHANGELOG.md")
	assert.True(t, ok)
	assert.Equal(t, changelog, path)

	_, ok = FindAtRoot(nested, "HISTORY.md")
	assert.False(t, ok)

	_, ok = FindAtRoot(t.TempDir(), "CHANGELOG.md")
	assert.False(t, ok)
}

func TestSetDebugLogger(t *testing.T) {
	var messages []string
	SetDebugLogger(func(format string, args ...any) {
		messages = append(messages, format)
	})
	defer SetDebugLogger(nil)

	root, _ := initRepo(t)
	_, err := RepositoryRoot(root)
	require.NoError(t, err)
	assert.NotEmpty(t, messages)
}
