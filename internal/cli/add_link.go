package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/topics/pkg/types"
)

func newAddLinkCmd(a *app) *cobra.Command {
	var (
		url    string
		header string
		image  string
	)
	cmd := &cobra.Command{
		Use:   "add-link <topic-id>",
		Short: "Append a link to a topic",
		Long: `Add-link appends a link to the end of a topic's list. With --header the
link is shown under that heading. --image replaces the topic's image.

Example:
  topics add-link 1 --url https://web.dev/learn/html --header "Living Standard"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url = strings.TrimSpace(url)
			header = strings.TrimSpace(header)
			if err := types.ValidateLink(url, header); err != nil {
				return userError(err)
			}

			return a.withSession(func(s *session) error {
				if _, err := lookupTopic(s, args[0]); err != nil {
					return err
				}
				topic, ok := s.store.AddLink(args[0], url, header, strings.TrimSpace(image))
				if !ok {
					return sysError(errors.New("link was not added"))
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), topic)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Link added to %s (%d links)\n", topic.Name, len(topic.Links))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "link URL (required)")
	cmd.Flags().StringVar(&header, "header", "", "optional heading shown before the URL")
	cmd.Flags().StringVar(&image, "image", "", "replacement image URL")
	return cmd
}
