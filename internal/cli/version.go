package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	release "github.com/mesh-intelligence/topics/pkg/topics"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the topics version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"version": release.Version,
					"module":  release.ModulePath,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "topics v%s\nmodule: %s\n", release.Version, release.ModulePath)
			return nil
		},
	}
}
