// Package input reads changelog sources from files, standard input or
// http(s) URLs.
package input

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ariel-frischer/clogfmt/internal/changelog"
)

// DefaultRemoteTimeout bounds remote changelog fetches.
const DefaultRemoteTimeout = 5 * time.Second

// StdinPath names standard input.
const StdinPath = "-"

// maxRemoteSize caps how much of a remote response is read.
const maxRemoteSize = 8 << 20

// Loader reads changelog sources. The zero value reads from os.Stdin and
// uses http.DefaultClient.
type Loader struct {
	Stdin   io.Reader
	Client  *http.Client
	Timeout time.Duration
}

// IsRemote reports whether path is an http(s) URL.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Read returns the raw contents of path.
func (l Loader) Read(ctx context.Context, path string) ([]byte, error) {
	switch {
	case path == StdinPath:
		stdin := l.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	case IsRemote(path):
		return l.fetch(ctx, path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, nil
	}
}

// Load reads and parses path. Parse failures are returned unwrapped so
// callers can detect them with changelog.IsParseError.
func (l Loader) Load(ctx context.Context, path string) (*changelog.Document, error) {
	data, err := l.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return changelog.Parse(string(data))
}

func (l Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
