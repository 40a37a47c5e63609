package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/topics/internal/query"
	"github.com/mesh-intelligence/topics/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var (
		search string
		where  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List topics, optionally filtered by name or expression",
		Long: `List prints the topics in insertion order.

--search keeps topics whose name contains the text, ignoring case.
--where keeps topics for which the expression is true. The expression
sees id, name, links, image and asset (true for bundled images).

Example:
  topics list
  topics list --search script
  topics list --where 'len(links) > 2 && !asset'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var program *query.Program
			if where != "" {
				p, err := query.Compile(where)
				if err != nil {
					return userError(err)
				}
				program = p
			}

			return a.withSession(func(s *session) error {
				found := s.store.FilterByName(search)
				if program != nil {
					filtered, err := program.Filter(found)
					if err != nil {
						return userError(fmt.Errorf("evaluate --where: %w", err))
					}
					found = filtered
				}

				if a.flags.jsonMode {
					if found == nil {
						found = []types.Topic{}
					}
					return writeJSON(cmd.OutOrStdout(), found)
				}
				if err := s.renderer(cmd.OutOrStdout()).List(found); err != nil {
					return sysError(err)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVarP(&where, "where", "w", "", "filter expression")
	return cmd
}
