package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/clogfmt/internal/config"
	clierrors "github.com/ariel-frischer/clogfmt/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage clogfmt configuration",
		Long: `Manage clogfmt configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CLOGFMT_*, e.g. CLOGFMT_SHOW_LAST=10)
  2. Project config (.clogfmt.yml, .clogfmt.yaml or .clogfmt.json, or --config)
  3. User config (~/.config/clogfmt/config.yml)
  4. Built-in defaults`,
		Example: `  # Show the effective configuration
  clogfmt config show

  # Show where each value came from
  clogfmt config show --sources

  # Create .clogfmt.yml with every option documented
  clogfmt config init

  # Change one value in the project config
  clogfmt config set show.last 10

  # Change one value in the user config
  clogfmt config set --user color never`,
		GroupID: GroupSettings,
	}

	cmd.AddCommand(
		newConfigShowCmd(g),
		newConfigGetCmd(g),
		newConfigSetCmd(g),
		newConfigInitCmd(),
		newConfigKeysCmd(),
	)
	return cmd
}

func newConfigShowCmd(g *globalOptions) *cobra.Command {
	var sources bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if sources {
				dim := color.New(color.Faint).SprintFunc()
				for _, key := range config.SortedKeys() {
					fmt.Fprintf(out, "%-20s %-14v %s\n", key, configValue(g.cfg, key), dim(g.cfg.Sources[key]))
				}
				return nil
			}

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(g.cfg); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&sources, "sources", false, "Show the source of each value")
	return cmd
}

// configValue returns the effective value of a known key.
func configValue(cfg *config.Configuration, key string) any {
	switch key {
	case "path":
		return cfg.Path
	case "jobs":
		return cfg.Jobs
	case "color":
		return cfg.Color
	case "recursive":
		return cfg.Recursive
	case "repo_root_fallback":
		return cfg.RepoRootFallback
	case "show.last":
		return cfg.Show.Last
	}
	return nil
}

func newConfigGetCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print the effective value of a key and where it came from",
		Example: `  clogfmt config get show.last`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, err := config.GetKeySchema(key); err != nil {
				return clierrors.NewArgumentError(err.Error(), "List the keys with: clogfmt config keys")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v (%s)\n", key, configValue(g.cfg, key), g.cfg.Sources[key])
			return nil
		},
	}
}

func newConfigSetCmd(g *globalOptions) *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a value in the project or user config file",
		Long: `Set one key in a YAML config file, creating the file if needed. The
project file is --config, the existing .clogfmt.yml or .clogfmt.yaml, or a
new .clogfmt.yml. Comments and other keys are kept.`,
		Example: `  clogfmt config set jobs 4
  clogfmt config set --user repo_root_fallback false`,
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			if _, err := config.GetKeySchema(key); err != nil {
				return clierrors.NewArgumentError(err.Error(), "List the keys with: clogfmt config keys")
			}

			path, scope := g.configPath, "project"
			if path == "" {
				path = config.FindProjectConfig()
			}
			if path == "" {
				path = config.ProjectConfigPath()
			}
			if user {
				p, err := config.UserConfigPath()
				if err != nil {
					return clierrors.NewConfigError(fmt.Sprintf("locating user config: %v", err))
				}
				path, scope = p, "user"
			}

			value, err := config.SetValue(path, key, raw)
			if err != nil {
				return clierrors.WrapWithMessage(err, clierrors.Configuration, "cannot set "+key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v in %s config (%s)\n", key, value, scope, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level config")
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		user  bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file",
		Long: `Write a config file documenting every option with its default value.
By default .clogfmt.yml is created in the current directory; --user writes
the user-level config instead.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigPath()
			if user {
				p, err := config.UserConfigPath()
				if err != nil {
					return clierrors.NewConfigError(fmt.Sprintf("locating user config: %v", err))
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return clierrors.NewArgumentError(fmt.Sprintf("%s exists (use --force to overwrite)", path))
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return clierrors.InputFailure(err)
			}
			if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
				return clierrors.InputFailure(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level config")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func newConfigKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "keys",
		Short:       "List all configuration keys",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, key := range config.SortedKeys() {
				schema := config.KnownKeys[key]
				typ := schema.Type.String()
				if len(schema.AllowedValues) > 0 {
					typ = fmt.Sprintf("%s(%v)", typ, schema.AllowedValues)
				}
				fmt.Fprintf(out, "%-20s %-30s default: %v\n", key, typ, schema.Default)
				fmt.Fprintf(out, "%-20s %s\n", "", schema.Description)
			}
			return nil
		},
	}
}
