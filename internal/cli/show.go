package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/topics/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a topic with its links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				topic, err := lookupTopic(s, args[0])
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), topic)
				}
				if err := s.renderer(cmd.OutOrStdout()).Topic(topic); err != nil {
					return sysError(err)
				}
				return nil
			})
		},
	}
}

// lookupTopic returns the topic with id, mapping a miss to a user error.
func lookupTopic(s *session, id string) (types.Topic, error) {
	topic, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
			return types.Topic{}, userError(fmt.Errorf("topic %q not found", id))
		}
		return types.Topic{}, sysError(err)
	}
	return topic, nil
}
