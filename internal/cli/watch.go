package cli

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/clogfmt/internal/driver"
	"github.com/ariel-frischer/clogfmt/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(g *globalOptions) *cobra.Command {
	var (
		write    bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [path...]",
		Short: "Re-check changelogs whenever they change",
		Long: `Watch changelogs and report their status every time they are saved. With
--write, files are reformatted in place instead. Stops on Ctrl-C.`,
		Example: `  clogfmt watch
  clogfmt watch --write CHANGELOG.md docs/CHANGELOG.md`,
		GroupID: GroupFormatting,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				path, err := defaultChangelogPath(g.cfg)
				if err != nil {
					return err
				}
				paths = []string{path}
			}

			files, err := driver.Resolve(cmd.Context(), paths, driver.ResolveOptions{Recursive: g.cfg != nil && g.cfg.Recursive})
			if err != nil {
				return err
			}

			w, err := watch.New(files, debounce)
			if err != nil {
				return err
			}
			defer w.Close()

			fo := &formatOptions{check: !write}
			check := func(path string) {
				results, err := driver.FormatPaths(cmd.Context(), []string{path}, driver.Options{Check: !write})
				if err != nil {
					return
				}
				// Exit codes only matter for one-shot runs.
				_ = reportResults(cmd, results, fo)
			}

			for _, f := range files {
				check(f)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d file(s). Press Ctrl-C to stop.\n", len(files))
			return w.Run(cmd.Context(), check)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Reformat files in place on change")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before a change is handled")
	return cmd
}
