package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/ariel-frischer/clogfmt/internal/changelog"
	"github.com/ariel-frischer/clogfmt/internal/config"
	"github.com/ariel-frischer/clogfmt/internal/driver"
	clierrors "github.com/ariel-frischer/clogfmt/internal/errors"
	"github.com/ariel-frischer/clogfmt/internal/git"
	"github.com/ariel-frischer/clogfmt/internal/input"
	"github.com/ariel-frischer/clogfmt/internal/output"
	"github.com/ariel-frischer/clogfmt/internal/progress"
	"github.com/spf13/cobra"
)

// formatOptions holds the root command's formatting flags.
type formatOptions struct {
	paths     []string
	check     bool
	stdout    bool
	recursive bool
	jobs      int
}

func (fo *formatOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVarP(&fo.paths, "path", "p", nil, "Changelog path, directory or '-' for stdin (repeatable)")
	f.BoolVar(&fo.check, "check", false, "Don't write files; exit 1 if any would be reformatted")
	f.BoolVar(&fo.stdout, "stdout", false, "Print formatted output instead of writing files")
	f.BoolVarP(&fo.recursive, "recursive", "r", false, "Format every CHANGELOG.md below directories")
	f.IntVarP(&fo.jobs, "jobs", "j", 0, "Files formatted in parallel (default from config, 0 = one per CPU)")
}

func runFormat(cmd *cobra.Command, g *globalOptions, fo *formatOptions, args []string) error {
	if fo.check && fo.stdout {
		return clierrors.ConflictingFlags("check", "stdout")
	}
	if fo.jobs < 0 {
		return clierrors.NewArgumentError("--jobs must not be negative")
	}

	paths := append(append([]string{}, args...), fo.paths...)
	if len(paths) == 0 {
		path, err := defaultChangelogPath(g.cfg)
		if err != nil {
			return err
		}
		paths = []string{path}
	}
	if len(paths) > 1 && slices.Contains(paths, driver.StdinPath) {
		return clierrors.StdinNotAllowed()
	}

	recursive := fo.recursive
	jobs := fo.jobs
	if g.cfg != nil {
		recursive = recursive || g.cfg.Recursive
		if !cmd.Flags().Changed("jobs") {
			jobs = g.cfg.Jobs
		}
	}

	files, err := driver.Resolve(cmd.Context(), paths, driver.ResolveOptions{Recursive: recursive})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return clierrors.NewInputError("no changelog files found",
			"Directories are searched for "+driver.DefaultFileName)
	}

	results, err := driver.FormatPaths(cmd.Context(), files, driver.Options{
		Check:  fo.check,
		Stdout: fo.stdout,
		Jobs:   jobs,
		Stdin:  cmd.InOrStdin(),
	})
	if err != nil {
		return err
	}

	return reportResults(cmd, results, fo)
}

// reportResults prints one line per file and returns the aggregated exit
// status: an invalid changelog wins over an I/O failure, which wins over
// a pending reformat.
func reportResults(cmd *cobra.Command, results []driver.Result, fo *formatOptions) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	single := len(results) == 1

	for _, r := range results {
		switch {
		case r.Err != nil && single:
			clierrors.FprintFailure(stderr, r.Err)
		case r.Err != nil:
			output.PrintFileError(stderr, r.Path, r.Err)
		case r.Formatted != nil:
			if _, err := stdout.Write(r.Formatted); err != nil {
				return err
			}
		case fo.check && r.Changed:
			output.PrintWouldReformat(stderr, displayPath(r.Path))
		case r.Changed:
			output.PrintReformatted(stdout, r.Path)
		case r.Path == driver.StdinPath || input.IsRemote(r.Path):
			// Already-canonical stdin or remote input under --check prints nothing.
		default:
			output.PrintWellFormatted(stdout, r.Path)
		}
	}

	summary := driver.Summarize(results)
	if !single {
		w := stdout
		if fo.stdout {
			w = stderr
		}
		output.PrintSummary(w, summary.String(fo.check))
	}

	switch {
	case summary.Invalid > 0:
		return NewExitError(ExitInvalidChangelog)
	case summary.Failed > 0:
		return NewExitError(ExitIOFailure)
	case fo.check && summary.Reformatted > 0:
		return NewExitError(ExitWouldReformat)
	}
	return nil
}

// defaultChangelogPath returns the configured changelog path, falling back
// to the one at the git repository root when it does not exist here.
func defaultChangelogPath(cfg *config.Configuration) (string, error) {
	path, fallback := driver.DefaultFileName, true
	if cfg != nil {
		path, fallback = cfg.Path, cfg.RepoRootFallback
	}

	if _, err := os.Stat(path); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return path, nil
	}
	if fallback && !filepath.IsAbs(path) {
		if found, ok := git.FindAtRoot("", path); ok {
			return found, nil
		}
	}
	return "", clierrors.ChangelogNotFound(path)
}

func displayPath(path string) string {
	if path == driver.StdinPath {
		return "<stdin>"
	}
	return path
}

// loadDocument reads and parses path. Parse errors are printed and mapped
// to ExitInvalidChangelog.
func loadDocument(cmd *cobra.Command, path string) (*changelog.Document, error) {
	loader := input.Loader{Stdin: cmd.InOrStdin()}
	var sp *progress.Spinner
	if input.IsRemote(path) {
		sp = progress.Start(cmd.ErrOrStderr(), "Fetching "+path)
	}
	doc, err := loader.Load(cmd.Context(), path)
	sp.Stop()
	if err == nil {
		return doc, nil
	}
	if changelog.IsParseError(err) {
		clierrors.FprintFailure(cmd.ErrOrStderr(), err)
		return nil, NewExitError(ExitInvalidChangelog)
	}
	return nil, clierrors.InputFailure(err)
}

// targetPath picks the single changelog a subcommand operates on: the
// argument when given, otherwise the configured default.
func targetPath(g *globalOptions, arg string) (string, error) {
	if arg == "" {
		return defaultChangelogPath(g.cfg)
	}
	if arg == driver.StdinPath || input.IsRemote(arg) {
		return arg, nil
	}
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return filepath.Join(arg, driver.DefaultFileName), nil
	}
	return arg, nil
}
