package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hudsor01/tenant-flow-sub002/internal/seeds"
)

// VerifyCmd is the root command. Subcommands are attached by main.
func VerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-seeds [tier]",
		Short: "Verify TenantFlow seed data",
		Long: `Runs read-only checks against the seeded database: minimum row counts for the tier,
the recorded seed version, month spread (development and performance), owner isolation
(smoke) and orphaned foreign keys. Tier is one of smoke, development or performance and
defaults to smoke. Exits 1 when any hard check fails.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := tierArg(args, 0)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Tier = tier
			if err := cfg.Validate(); err != nil {
				return err
			}

			db, err := getDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB(cmd, db)

			out := cmd.OutOrStdout()
			if cfg.Format == seeds.FormatText {
				fmt.Fprintf(out, "Verifying %s seed data\n\n", tier)
			}

			report, runErr := seeds.NewVerifier(db, cfg.Options()).Run(cmd.Context())
			if err := seeds.Render(out, report, cfg.Format); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			if runErr != nil {
				return fmt.Errorf("verification aborted: %w", runErr)
			}
			if !report.Passed() {
				return ErrChecksFailed
			}
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML config file (default ./.verify-seeds.yaml)")
	cmd.PersistentFlags().String("schema", "public", "Postgres schema holding the TenantFlow tables")
	cmd.PersistentFlags().Bool("debug", false, "Log every SQL statement")
	cmd.Flags().Bool("strict", false, "Treat warnings as failures")
	cmd.Flags().String("format", seeds.FormatText, "Output format: text, json or yaml")

	return cmd
}
