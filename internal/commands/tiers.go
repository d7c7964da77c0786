package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hudsor01/tenant-flow-sub002/internal/seeds"
)

func TiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Show minimum row counts for each tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s  %8s  %10s  %8s  %8s  %12s\n", "Tier", "Users", "Properties", "Units", "Leases", "Maintenance")
			for _, tier := range seeds.Tiers() {
				m := cfg.Minimums(tier)
				fmt.Fprintf(out, "%-12s  %8d  %10d  %8d  %8d  %12d\n", tier, m.Users, m.Properties, m.Units, m.Leases, m.MaintenanceRequests)
			}
			return nil
		},
	}
}
