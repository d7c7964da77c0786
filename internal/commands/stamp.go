package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hudsor01/tenant-flow-sub002/internal/seeds"
)

func StampCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stamp <tier> <version>",
		Short: "Record the seed version applied for a tier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := seeds.ParseTier(args[0])
			if err != nil {
				return err
			}

			cfg, db, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeDB(cmd, db)

			record, err := seeds.RecordSeedVersion(cmd.Context(), db, cfg.Schema, tier, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded seed version %s for tier %s\n", record.Version, record.Tier)
			return nil
		},
	}
}
