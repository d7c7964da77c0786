package seeds

import (
	"errors"
	"fmt"
	"strings"
)

// Tier names an expected data volume profile.
type Tier string

const (
	Smoke       Tier = "smoke"
	Development Tier = "development"
	Performance Tier = "performance"
)

var ErrUnknownTier = errors.New("unknown tier")

// Minimums holds the lowest acceptable row count per tracked table.
type Minimums struct {
	Users               int64 `mapstructure:"users" json:"users" yaml:"users"`
	Properties          int64 `mapstructure:"properties" json:"properties" yaml:"properties"`
	Units               int64 `mapstructure:"units" json:"units" yaml:"units"`
	Leases              int64 `mapstructure:"leases" json:"leases" yaml:"leases"`
	MaintenanceRequests int64 `mapstructure:"maintenance_requests" json:"maintenance_requests" yaml:"maintenance_requests"`
}

// DefaultMinimums is the built-in threshold table.
var DefaultMinimums = map[Tier]Minimums{
	Smoke:       {Users: 4, Properties: 4, Units: 8, Leases: 2, MaintenanceRequests: 3},
	Development: {Users: 20, Properties: 15, Units: 50, Leases: 30, MaintenanceRequests: 100},
	Performance: {Users: 500, Properties: 200, Units: 1000, Leases: 800, MaintenanceRequests: 5000},
}

// Tiers returns every known tier, smallest first.
func Tiers() []Tier {
	return []Tier{Smoke, Development, Performance}
}

// ParseTier resolves a tier name. Matching ignores case and surrounding space.
func ParseTier(name string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := DefaultMinimums[t]; !ok {
		return "", fmt.Errorf("%w %q: must be one of smoke, development, performance", ErrUnknownTier, name)
	}
	return t, nil
}

func (t Tier) String() string { return string(t) }
