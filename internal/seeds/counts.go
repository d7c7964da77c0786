package seeds

import (
	"context"
	"fmt"
)

var countedTables = []struct {
	label   string
	table   string
	minimum func(Minimums) int64
}{
	{"Users", "users", func(m Minimums) int64 { return m.Users }},
	{"Properties", "properties", func(m Minimums) int64 { return m.Properties }},
	{"Units", "units", func(m Minimums) int64 { return m.Units }},
	{"Leases", "leases", func(m Minimums) int64 { return m.Leases }},
	{"Maintenance Requests", "maintenance_requests", func(m Minimums) int64 { return m.MaintenanceRequests }},
}

func (v *Verifier) checkRowCounts(ctx context.Context) error {
	for _, c := range countedTables {
		var count int64
		if err := v.scan(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", v.table(c.table))); err != nil {
			return fmt.Errorf("failed to count %s: %w", c.table, err)
		}

		minimum := c.minimum(v.opts.Minimums)
		v.record(CheckResult{
			Name:     c.label,
			Severity: Hard,
			Passed:   count >= minimum,
			Detail:   fmt.Sprintf("%d (expected >= %d)", count, minimum),
		})
	}
	return nil
}
