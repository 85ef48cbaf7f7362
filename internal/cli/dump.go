package cli

import (
	"fmt"
	"slices"

	"github.com/ariel-frischer/clogfmt/internal/changelog"
	clierrors "github.com/ariel-frischer/clogfmt/internal/errors"
	"github.com/ariel-frischer/clogfmt/internal/input"
	"github.com/spf13/cobra"
)

var (
	astFormats    = []string{string(changelog.DumpJSON), string(changelog.DumpYAML), string(changelog.DumpTOML)}
	tokensFormats = []string{string(changelog.DumpPretty), string(changelog.DumpJSON)}
)

func newASTCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ast [path]",
		Short: "Print the parsed changelog as JSON, YAML or TOML",
		Example: `  clogfmt ast
  clogfmt ast --format yaml docs/CHANGELOG.md
  cat CHANGELOG.md | clogfmt ast -`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: GroupInspect,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(astFormats, format) {
				return clierrors.InvalidOutputFormat(format, astFormats)
			}
			path, err := targetPath(g, firstArg(args))
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd, path)
			if err != nil {
				return err
			}
			return changelog.Encode(cmd.OutOrStdout(), doc, changelog.DumpFormat(format))
		},
	}

	cmd.Flags().StringVar(&format, "format", string(changelog.DumpJSON), "Output format: json|yaml|toml")
	return cmd
}

func newTokensCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tokens [path]",
		Short: "Print the token stream of a changelog",
		Long: `Print the tokens the parser sees. Useful when a changelog fails to parse
and the error position is not obvious. Rows and columns are 1-based.`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: GroupInspect,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(tokensFormats, format) {
				return clierrors.InvalidOutputFormat(format, tokensFormats)
			}
			path, err := targetPath(g, firstArg(args))
			if err != nil {
				return err
			}
			src, err := input.Loader{Stdin: cmd.InOrStdin()}.Read(cmd.Context(), path)
			if err != nil {
				return clierrors.InputFailure(err)
			}
			if err := changelog.EncodeTokens(cmd.OutOrStdout(), changelog.Tokenize(string(src)), changelog.DumpFormat(format)); err != nil {
				return fmt.Errorf("writing tokens: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(changelog.DumpPretty), "Output format: pretty|json")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
