package cli

import (
	"os"
	"path/filepath"

	"github.com/ariel-frischer/clogfmt/internal/changelog"
	"github.com/ariel-frischer/clogfmt/internal/driver"
	clierrors "github.com/ariel-frischer/clogfmt/internal/errors"
	"github.com/spf13/cobra"
)

func newNewCmd(g *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new [path]",
		Short: "Create a new changelog",
		Long: `Create a changelog with the Keep a Changelog intro and a first 0.1.0
release dated today. The path defaults to the configured changelog; a
directory gets a CHANGELOG.md inside it.`,
		Example: `  clogfmt new
  clogfmt new docs/
  clogfmt new --force CHANGELOG.md`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: GroupFormatting,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := driver.DefaultFileName
			if g.cfg != nil {
				path = g.cfg.Path
			}
			if len(args) == 1 {
				path = args[0]
			}
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, driver.DefaultFileName)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return clierrors.ChangelogExists(path)
			}

			if err := os.WriteFile(path, []byte(changelog.RenderNewTemplate()), 0o644); err != nil {
				return clierrors.InputFailure(err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing file")
	return cmd
}
