package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/hudsor01/tenant-flow-sub002/internal/config"
	"github.com/hudsor01/tenant-flow-sub002/internal/database"
	"github.com/hudsor01/tenant-flow-sub002/internal/seeds"
)

// ErrChecksFailed is returned when verification completed with hard failures. The
// report has already been printed, so main only sets the exit code.
var ErrChecksFailed = errors.New("some checks failed")

// openDB is swapped in tests.
var openDB = database.Open

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(config.LoadOptions{Path: path, Flags: cmd.Flags()})
}

func getDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, database.ErrMissingDatabaseURL
	}
	return openDB(cfg.DatabaseURL, cfg.Debug)
}

// connect loads the config and opens the database for subcommands that only need a
// connection and the schema.
func connect(cmd *cobra.Command) (*config.Config, *gorm.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	db, err := getDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func closeDB(cmd *cobra.Command, db *gorm.DB) {
	if err := database.Close(db); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to close database: %v\n", err)
	}
}

func tierArg(args []string, index int) (seeds.Tier, error) {
	if len(args) <= index {
		return seeds.Smoke, nil
	}
	return seeds.ParseTier(args[index])
}
