package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize topics storage",
		Long: `Create the configuration and data directories, then open the store.
On first run the built-in topics are saved so later sessions load them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{
						"config_dir": a.configDir,
						"data_dir":   s.config.DataDir,
						"backend":    s.config.Backend,
						"source":     s.store.Source(),
						"topics":     s.store.Len(),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Topics initialized successfully")
				fmt.Fprintln(out, "  config: ", a.configDir)
				fmt.Fprintln(out, "  data:   ", s.config.DataDir)
				fmt.Fprintln(out, "  backend:", s.config.Backend)
				fmt.Fprintf(out, "  topics:  %d (%s)\n", s.store.Len(), s.store.Source())
				return nil
			})
		},
	}
}
