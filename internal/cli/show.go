package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/clogfmt/internal/changelog"
	"github.com/ariel-frischer/clogfmt/internal/output"
	"github.com/spf13/cobra"
)

type showOptions struct {
	path  string
	last  int
	plain bool
}

func newShowCmd(g *globalOptions) *cobra.Command {
	so := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show [version]",
		Short: "View changelog entries in the terminal",
		Long: `View changelog entries with color-coded change types.

By default, shows the most recent entries (show.last in the config, 5 unless
changed). Use a version argument to see all entries for one version. The
changelog may be a local path, '-' for stdin, or an http(s) URL.`,
		Example: `  clogfmt show              # Most recent entries
  clogfmt show v1.2.0       # All entries for 1.2.0 (v prefix optional)
  clogfmt show unreleased   # Unreleased changes
  clogfmt show latest       # Newest released version
  clogfmt show --last 10    # 10 most recent entries
  clogfmt show -p https://raw.githubusercontent.com/owner/repo/main/CHANGELOG.md`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: GroupInspect,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, g, so, args)
		},
	}

	cmd.Flags().StringVarP(&so.path, "path", "p", "", "Changelog path, '-' or URL (default from config)")
	cmd.Flags().IntVar(&so.last, "last", 0, "Number of entries to show (default from config)")
	cmd.Flags().BoolVar(&so.plain, "plain", false, "Plain text output (no colors/icons)")
	return cmd
}

func runShow(cmd *cobra.Command, g *globalOptions, so *showOptions, args []string) error {
	path, err := targetPath(g, so.path)
	if err != nil {
		return err
	}
	doc, err := loadDocument(cmd, path)
	if err != nil {
		return err
	}

	opts := changelog.FormatOptions{
		Plain:    so.plain,
		MaxWidth: output.TerminalWidth(cmd.OutOrStdout()),
	}
	if len(args) == 1 {
		return showVersion(cmd, doc, args[0], opts)
	}

	last := so.last
	if last <= 0 {
		last = 5
		if g.cfg != nil {
			last = g.cfg.Show.Last
		}
	}
	return showLastEntries(cmd, doc, last, opts)
}

func showVersion(cmd *cobra.Command, doc *changelog.Document, version string, opts changelog.FormatOptions) error {
	if strings.EqualFold(version, "latest") {
		v := doc.LatestRelease()
		if v == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "No released versions found.")
			return NewExitError(ExitInvalidArguments)
		}
		return changelog.FormatVersion(v, cmd.OutOrStdout(), opts)
	}

	v, err := doc.Version(version)
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
			for _, ver := range doc.ListVersions() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments)
		}
		return fmt.Errorf("getting version: %w", err)
	}

	return changelog.FormatVersion(v, cmd.OutOrStdout(), opts)
}

func showLastEntries(cmd *cobra.Command, doc *changelog.Document, n int, opts changelog.FormatOptions) error {
	entries := doc.LastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := doc.EntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}
	return nil
}
