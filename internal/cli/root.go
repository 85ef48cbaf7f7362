// Package cli implements the clogfmt command line: the formatter itself on
// the root command plus new, show, ast, tokens, watch, config and version.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/clogfmt/internal/config"
	"github.com/ariel-frischer/clogfmt/internal/driver"
	clierrors "github.com/ariel-frischer/clogfmt/internal/errors"
	"github.com/ariel-frischer/clogfmt/internal/git"
	"github.com/ariel-frischer/clogfmt/internal/output"
	"github.com/ariel-frischer/clogfmt/internal/version"
	"github.com/ariel-frischer/clogfmt/internal/watch"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupFormatting = "formatting"
	GroupInspect    = "inspect"
	GroupSettings   = "settings"
)

// skipConfigAnnotation marks commands that must run even with a broken
// configuration file.
const skipConfigAnnotation = "clogfmt/skip-config"

// globalOptions holds the persistent flags and the configuration loaded
// from them.
type globalOptions struct {
	configPath string
	color      string
	debug      bool

	cfg *config.Configuration
}

// Execute runs the clogfmt command line with os.Args and returns the
// error to be mapped with ExitCode.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil && !isSilent(err) {
		clierrors.FprintFailure(cmd.ErrOrStderr(), err)
	}
	return err
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	fo := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "clogfmt [path...]",
		Short: "Format Keep a Changelog files",
		Long: `clogfmt parses a changelog written in the Keep a Changelog style and
rewrites it in canonical form: versions newest first, change sections in a
fixed order, and text wrapped at 90 columns.

Paths may be files, directories (their CHANGELOG.md is used) or '-' for
stdin. Without a path the configured changelog is formatted.

Exit codes:
  0  success
  1  a file would be reformatted (--check)
  2  a changelog is invalid
  3  invalid arguments or configuration
  4  a file could not be read or written`,
		Example: `  # Format ./CHANGELOG.md in place
  clogfmt

  # Verify formatting in CI
  clogfmt --check

  # Format stdin to stdout
  cat CHANGELOG.md | clogfmt -

  # Every CHANGELOG.md in a monorepo, 4 at a time
  clogfmt -r -j 4 .`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, g, fo, args)
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.Flags().BoolP("version", "V", false, "Print the version and exit")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine())
	})

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default .clogfmt.yml)")
	cmd.PersistentFlags().StringVar(&g.color, "color", "", "Colored output: auto|always|never (default from config)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Print debug logs to stderr")
	fo.register(cmd)

	cmd.AddGroup(
		&cobra.Group{ID: GroupFormatting, Title: "Formatting:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection:"},
		&cobra.Group{ID: GroupSettings, Title: "Settings:"},
	)
	cmd.AddCommand(
		newNewCmd(g),
		newWatchCmd(g),
		newShowCmd(g),
		newASTCmd(g),
		newTokensCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	cmd.SetHelpCommandGroupID(GroupSettings)
	cmd.SetCompletionCommandGroupID(GroupSettings)
	wrapArgValidators(cmd)

	return cmd
}

// wrapArgValidators turns positional argument errors into argument errors
// carrying the command's usage line, so they exit with ExitInvalidArguments.
func wrapArgValidators(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		wrapArgValidators(c)
	}
	validate := cmd.Args
	if validate == nil {
		return
	}
	cmd.Args = func(c *cobra.Command, args []string) error {
		if err := validate(c, args); err != nil {
			return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine())
		}
		return nil
	}
}

// setup loads the configuration and applies color and debug settings.
func (g *globalOptions) setup(cmd *cobra.Command) error {
	if g.debug {
		enableDebug(cmd.ErrOrStderr())
	} else {
		enableDebug(nil)
	}

	if cmd.Annotations[skipConfigAnnotation] == "" {
		cfg, err := config.Load(g.configPath)
		if err != nil {
			return clierrors.ConfigInvalid(err)
		}
		g.cfg = cfg
	}

	mode := g.color
	if mode == "" && g.cfg != nil {
		mode = g.cfg.Color
	}
	if mode == "" {
		mode = output.ColorAuto
	}
	if !output.ValidColorMode(mode) {
		return clierrors.InvalidColorMode(mode)
	}
	output.ApplyColorMode(mode, cmd.OutOrStdout())
	return nil
}

// enableDebug routes every package debug logger to w, or disables them
// when w is nil.
func enableDebug(w io.Writer) {
	var logger func(format string, args ...any)
	if w != nil {
		logger = func(format string, args ...any) {
			fmt.Fprintf(w, "[debug] "+format+"\n", args...)
		}
	}
	driver.SetDebugLogger(logger)
	git.SetDebugLogger(logger)
	watch.SetDebugLogger(logger)
}
