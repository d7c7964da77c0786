package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hudsor01/tenant-flow-sub002/internal/seeds"
)

func HistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [tier]",
		Short: "Show seed version history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tier seeds.Tier
			if len(args) > 0 {
				t, err := seeds.ParseTier(args[0])
				if err != nil {
					return err
				}
				tier = t
			}

			cfg, db, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeDB(cmd, db)

			records, err := seeds.SeedHistory(cmd.Context(), db, cfg.Schema, tier)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No seed versions have been recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "%-12s  %-24s  %-24s\n", "Tier", "Version", "Applied At")
			for _, record := range records {
				fmt.Fprintf(out, "%-12s  %-24s  %-24s\n", record.Tier, record.Version, record.AppliedAt.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}
