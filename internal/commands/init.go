package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hudsor01/tenant-flow-sub002/internal/database"
	"github.com/hudsor01/tenant-flow-sub002/internal/models"
)

func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the TenantFlow tables on a local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeDB(cmd, db)

			ctx := cmd.Context()
			if err := database.EnsureSchema(ctx, db, cfg.Schema); err != nil {
				return err
			}
			for _, entry := range models.Registry {
				table := database.Qualify(db, cfg.Schema, entry.Table)
				if err := db.WithContext(ctx).Table(table).AutoMigrate(entry.Model); err != nil {
					return fmt.Errorf("failed to create table %s: %v", table, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created tables: %v\n", models.Tables())
			return nil
		},
	}
}
