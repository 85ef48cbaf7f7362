package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/ariel-frischer/clogfmt/internal/changelog"
	"github.com/ariel-frischer/clogfmt/internal/input"
	"golang.org/x/sync/errgroup"
)

// Options configures FormatPaths.
type Options struct {
	// Check reports whether files would change without writing them.
	Check bool
	// Stdout returns formatted content in the results instead of writing.
	Stdout bool
	// Jobs caps the number of files processed at once (0 = NumCPU).
	Jobs int
	// Stdin is read when a path is StdinPath (default os.Stdin).
	Stdin io.Reader
}

// Result captures the outcome of formatting a single file.
type Result struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// Invalid reports whether the file failed to parse.
func (r Result) Invalid() bool {
	return changelog.IsParseError(r.Err)
}

// Failed reports whether the file could not be processed for any reason
// other than a parse error (missing file, permissions, ...).
func (r Result) Failed() bool {
	return r.Err != nil && !r.Invalid()
}

// FormatSource parses and renders src. changed is false when src is
// already in canonical form.
func FormatSource(src []byte) (formatted []byte, changed bool, err error) {
	doc, err := changelog.Parse(string(src))
	if err != nil {
		return nil, false, err
	}
	formatted = []byte(changelog.Render(doc))
	return formatted, !bytes.Equal(src, formatted), nil
}

// FormatPaths formats each file in paths concurrently. Results are returned
// in the order of paths. Per-file failures are recorded in Result.Err; the
// returned error is only set when ctx is cancelled.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("format: no changelog files given")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(paths))

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(gctx, path, opts)
			logDebug("[driver] %s: changed=%v err=%v", path, results[i].Changed, results[i].Err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(ctx context.Context, path string, opts Options) Result {
	result := Result{Path: path}

	src, err := input.Loader{Stdin: opts.Stdin}.Read(ctx, path)
	if err != nil {
		result.Err = err
		return result
	}

	formatted, changed, err := FormatSource(src)
	if err != nil {
		result.Err = err
		return result
	}
	result.Changed = changed

	if opts.Check {
		return result
	}
	// Remote sources cannot be written back.
	if opts.Stdout || path == StdinPath || input.IsRemote(path) {
		result.Formatted = formatted
		return result
	}

	if changed {
		if err := writePreservingMode(path, formatted); err != nil {
			result.Err = err
		}
	}
	return result
}

func writePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, data, mode.Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
