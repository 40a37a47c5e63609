package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/topics/pkg/types"
)

// openTimeout bounds how long "open" waits for the platform launcher.
const openTimeout = 10 * time.Second

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <topic-id> <link-number>",
		Short: "Open one of a topic's links in the default browser",
		Long: `Open hands a link to the system's default viewer. Links are numbered from 1
in the order "topics show" prints them. A launcher failure is reported but
does not fail the command.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return userError(fmt.Errorf("invalid link number %q", args[1]))
			}

			var url string
			err = a.withSession(func(s *session) error {
				topic, err := lookupTopic(s, args[0])
				if err != nil {
					return err
				}
				if n > len(topic.Links) {
					return userError(fmt.Errorf("topic %q has %d links", topic.Name, len(topic.Links)))
				}
				_, url = types.SplitLink(topic.Links[n-1])
				return nil
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), openTimeout)
			defer cancel()
			if err := a.opener.Open(ctx, url); err != nil {
				a.logger.Warn("opening link failed", zap.String("url", url), zap.Error(err))
				fmt.Fprintf(cmd.ErrOrStderr(), "could not open %s: %v\n", url, err)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Opened", url)
			return nil
		},
	}
}
