package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hudsor01/tenant-flow-sub002/internal/database"
	"github.com/hudsor01/tenant-flow-sub002/internal/seeds"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = ".verify-seeds"

const envPrefix = "VERIFY_SEEDS"

// Config is built once at startup and handed to the verifier.
type Config struct {
	DatabaseURL string                    `mapstructure:"database_url"`
	Schema      string                    `mapstructure:"schema"`
	Strict      bool                      `mapstructure:"strict"`
	Format      string                    `mapstructure:"format"`
	Debug       bool                      `mapstructure:"debug"`
	Tiers       map[string]seeds.Minimums `mapstructure:"tiers"`
	Isolation   Isolation                 `mapstructure:"isolation"`
	Temporal    Temporal                  `mapstructure:"temporal"`

	// Tier comes from the command line, never from files or the environment.
	Tier seeds.Tier `mapstructure:"-"`
}

// Isolation configures the owner isolation check.
type Isolation struct {
	Owners        []string `mapstructure:"owners"`
	MinProperties int64    `mapstructure:"min_properties"`
}

// Temporal configures the month distribution check.
type Temporal struct {
	MinMonths int64 `mapstructure:"min_months"`
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// Path is an explicit config file. Empty means DefaultFile if present.
	Path string
	// Flags are bound last so that changed flags win over file and environment.
	Flags *pflag.FlagSet
}

// Load merges defaults, the YAML config file, the environment and flags.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database_url", "DATABASE_URL", envPrefix+"_DATABASE_URL"); err != nil {
		return nil, err
	}

	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", opts.Path, err)
		}
	} else {
		v.SetConfigName(DefaultFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		if err := v.BindPFlags(opts.Flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema", "public")
	v.SetDefault("strict", false)
	v.SetDefault("format", seeds.FormatText)
	v.SetDefault("debug", false)

	for tier, m := range seeds.DefaultMinimums {
		prefix := "tiers." + string(tier) + "."
		v.SetDefault(prefix+"users", m.Users)
		v.SetDefault(prefix+"properties", m.Properties)
		v.SetDefault(prefix+"units", m.Units)
		v.SetDefault(prefix+"leases", m.Leases)
		v.SetDefault(prefix+"maintenance_requests", m.MaintenanceRequests)
	}

	defaults := seeds.DefaultOptions(seeds.Smoke)
	v.SetDefault("isolation.owners", defaults.IsolationOwners)
	v.SetDefault("isolation.min_properties", defaults.MinOwnerProperties)
	v.SetDefault("temporal.min_months", defaults.MinDistinctMonths)
}

// Validate checks the settings a verification run cannot do without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return database.ErrMissingDatabaseURL
	}
	switch c.Format {
	case seeds.FormatText, seeds.FormatJSON, seeds.FormatYAML:
	default:
		return fmt.Errorf("unsupported output format %q: must be text, json or yaml", c.Format)
	}
	if !database.ValidSchema(c.Schema) {
		return fmt.Errorf("invalid schema %q: must be a lowercase SQL identifier", c.Schema)
	}
	if len(c.Isolation.Owners) < 2 {
		return fmt.Errorf("isolation.owners must list at least two owner emails, got %d", len(c.Isolation.Owners))
	}
	return nil
}

// Minimums returns the thresholds for tier with overrides applied.
func (c *Config) Minimums(tier seeds.Tier) seeds.Minimums {
	if m, ok := c.Tiers[string(tier)]; ok {
		return m
	}
	return seeds.DefaultMinimums[tier]
}

// Options converts the config into verifier options for c.Tier.
func (c *Config) Options() seeds.Options {
	return seeds.Options{
		Tier:               c.Tier,
		Minimums:           c.Minimums(c.Tier),
		Schema:             c.Schema,
		Strict:             c.Strict,
		IsolationOwners:        c.Isolation.Owners,
		MinOwnerProperties: c.Isolation.MinProperties,
		MinDistinctMonths:  c.Temporal.MinMonths,
	}
}
