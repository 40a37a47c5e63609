package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/topics/pkg/types"
)

func newAddTopicCmd(a *app) *cobra.Command {
	var (
		name  string
		links string
		image string
	)
	cmd := &cobra.Command{
		Use:   "add-topic",
		Short: "Create a new topic",
		Long: `Add-topic creates a topic with at least one link.

--links takes a comma-separated list; surrounding spaces are trimmed and
empty entries dropped. Without --image the topic gets a placeholder image.

Example:
  topics add-topic --name Go --links "https://go.dev, https://go.dev/doc"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				topic, err := s.store.AddTopic(strings.TrimSpace(name), splitLinks(links), strings.TrimSpace(image))
				if err != nil {
					if errors.Is(err, types.ErrValidation) {
						return userError(err)
					}
					return sysError(fmt.Errorf("add topic: %w", err))
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), topic)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Topic Added: %s has been added successfully\n", topic.Name)
				fmt.Fprintln(cmd.OutOrStdout(), "  id:", topic.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "topic name (required)")
	cmd.Flags().StringVar(&links, "links", "", "comma-separated links (required)")
	cmd.Flags().StringVar(&image, "image", "", "image URL")
	return cmd
}

// splitLinks turns comma-separated input into a list of trimmed, non-empty
// links.
func splitLinks(raw string) []string {
	var links []string
	for _, part := range strings.Split(raw, ",") {
		if link := strings.TrimSpace(part); link != "" {
			links = append(links, link)
		}
	}
	return links
}
