package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/clogfmt/internal/input"
)

// DefaultFileName is the changelog looked up inside directories.
const DefaultFileName = "CHANGELOG.md"

// StdinPath names standard input/output.
const StdinPath = input.StdinPath

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// ResolveOptions controls how Resolve expands directories.
type ResolveOptions struct {
	// Recursive walks directories for every DefaultFileName instead of
	// only looking at the top level.
	Recursive bool
}

// Resolve expands paths into the list of files to format. A directory
// becomes <dir>/CHANGELOG.md, or every CHANGELOG.md below it when
// Recursive is set. StdinPath and URLs are passed through. Duplicates are dropped and
// the input order is kept.
func Resolve(ctx context.Context, paths []string, opts ResolveOptions) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		clean := path
		if path != StdinPath && !input.IsRemote(path) {
			clean = filepath.Clean(path)
		}
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p == StdinPath || input.IsRemote(p) {
			add(p)
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Missing files are reported per file by FormatPaths.
				add(p)
				continue
			}
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		if !opts.Recursive {
			add(filepath.Join(p, DefaultFileName))
			continue
		}

		found, err := walkChangelogs(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	logDebug("[driver] resolved %d path(s) to %d file(s)", len(paths), len(files))
	return files, nil
}

func walkChangelogs(ctx context.Context, root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(d.Name(), DefaultFileName) {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}
