package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/clogfmt/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Display version information",
		Args:        cobra.NoArgs,
		GroupID:     GroupSettings,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if plain {
				fmt.Fprintf(out, "clogfmt %s\n", version.Version)
				return
			}
			fmt.Fprintln(out, version.String())
			fmt.Fprintf(out, "go: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print only the version number")
	return cmd
}
