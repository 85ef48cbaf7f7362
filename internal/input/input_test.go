package input

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ariel-frischer/clogfmt/internal/changelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# Changelog

## [1.0.0] - 2024-01-01

### Added

- First release.
`

func TestIsRemote(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		want bool
	}{
		"https url":  {path: "https://example.com/CHANGELOG.md", want: true},
		"http url":   {path: "http://example.com/CHANGELOG.md", want: true},
		"local file": {path: "CHANGELOG.md"},
		"stdin":      {path: "-"},
		"ftp url":    {path: "ftp://example.com/CHANGELOG.md"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsRemote(tt.path))
		})
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/CHANGELOG.md":
			_, _ = w.Write([]byte(sample))
		case "/broken.md":
			_, _ = w.Write([]byte("# Changelog\n\n## 1.0.0\n\n### Nope\n\n- x\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	file := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(file, []byte(sample), 0o644))

	tests := map[string]struct {
		path         string
		stdin        string
		wantErr      string
		wantParseErr bool
	}{
		"local file": {path: file},
		"stdin":      {path: StdinPath, stdin: sample},
		"remote":     {path: server.URL + "/CHANGELOG.md"},
		"remote not found": {
			path:    server.URL + "/missing.md",
			wantErr: "unexpected status code: 404",
		},
		"remote parse error": {
			path:         server.URL + "/broken.md",
			wantParseErr: true,
		},
		"missing file": {
			path:    filepath.Join(t.TempDir(), "nope.md"),
			wantErr: "reading",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := Loader{Stdin: strings.NewReader(tt.stdin), Client: server.Client()}
			doc, err := l.Load(context.Background(), tt.path)
			switch {
			case tt.wantParseErr:
				require.Error(t, err)
				assert.True(t, changelog.IsParseError(err))
			case tt.wantErr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			default:
				require.NoError(t, err)
				require.Len(t, doc.Versions, 1)
				assert.Equal(t, "1.0.0", doc.Versions[0].Number)
			}
		})
	}
}

func TestLoader_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	l := Loader{Client: server.Client(), Timeout: 50 * time.Millisecond}
	_, err := l.Read(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
