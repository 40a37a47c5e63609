package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/topics/internal/filestore"
	"github.com/mesh-intelligence/topics/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.jsonl>",
		Short: "Write every topic to a JSONL file",
		Long: `Export writes one JSON object per topic, in collection order. The file is
replaced atomically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				all := s.store.Topics()
				records := make([]json.RawMessage, 0, len(all))
				for _, t := range all {
					data, err := json.Marshal(t)
					if err != nil {
						return sysError(fmt.Errorf("marshal topic %s: %w", t.ID, err))
					}
					records = append(records, data)
				}
				if err := filestore.WriteJSONL(args[0], records); err != nil {
					return sysError(fmt.Errorf("export: %w", err))
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"file": args[0], "topics": len(records)})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d topics to %s\n", len(records), args[0])
				return nil
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Add the topics of a JSONL export",
		Long: `Import adds each topic of a JSONL file written by "topics export". Imported
topics get new ids. Lines that do not decode, and topics without a name or
links, are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, malformed, err := filestore.ReadJSONL(args[0])
			if err != nil {
				return userError(fmt.Errorf("import: %w", err))
			}

			return a.withSession(func(s *session) error {
				added, skipped := 0, len(malformed)
				for _, line := range malformed {
					a.logger.Warn("skipping malformed line", zap.Int("line", line))
				}
				for i, rec := range records {
					var t types.Topic
					if err := json.Unmarshal(rec, &t); err != nil {
						a.logger.Warn("skipping undecodable record", zap.Int("record", i+1), zap.Error(err))
						skipped++
						continue
					}
					if _, err := s.store.AddTopic(t.Name, t.Links, t.Image); err != nil {
						if !errors.Is(err, types.ErrValidation) {
							return sysError(fmt.Errorf("import: %w", err))
						}
						a.logger.Warn("skipping invalid topic", zap.Int("record", i+1), zap.Error(err))
						skipped++
						continue
					}
					added++
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"added": added, "skipped": skipped})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d topics (%d skipped)\n", added, skipped)
				return nil
			})
		},
	}
}
