package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/topics/internal/settings"
)

const themeToggle = "toggle"

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(settings.ThemeDark), string(settings.ThemeLight), themeToggle},
		RunE: func(cmd *cobra.Command, args []string) error {
			var want settings.Theme
			if len(args) == 1 && args[0] != themeToggle {
				t, err := settings.ParseTheme(args[0])
				if err != nil {
					return userError(err)
				}
				want = t
			}

			return a.withSession(func(s *session) error {
				theme := s.settings.Theme()
				switch {
				case len(args) == 0:
				case args[0] == themeToggle:
					t, err := s.settings.ToggleTheme()
					if err != nil {
						return sysError(err)
					}
					theme = t
				default:
					if err := s.settings.SetTheme(want); err != nil {
						return sysError(err)
					}
					theme = want
				}

				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"theme": string(theme)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "theme:", theme)
				return nil
			})
		},
	}
}
