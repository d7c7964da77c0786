package seeds

import (
	"context"
	"fmt"

	"github.com/hudsor01/tenant-flow-sub002/internal/database"
)

var temporalColumns = []struct {
	label  string
	table  string
	column string
}{
	{"Maintenance Request Months", "maintenance_requests", "created_at"},
	{"Lease Start Months", "leases", "start_date"},
}

// checkTemporalSpread warns when time-stamped rows cluster in too few calendar months.
func (v *Verifier) checkTemporalSpread(ctx context.Context) error {
	for _, c := range temporalColumns {
		var months int64
		sql := fmt.Sprintf("SELECT COUNT(DISTINCT %s) FROM %s", database.MonthTrunc(v.db, c.column), v.table(c.table))
		if err := v.scan(ctx, &months, sql); err != nil {
			return fmt.Errorf("failed to measure %s spread: %w", c.table, err)
		}

		v.record(CheckResult{
			Name:     c.label,
			Severity: Soft,
			Passed:   months >= v.opts.MinDistinctMonths,
			Detail:   fmt.Sprintf("%d distinct months (expected >= %d)", months, v.opts.MinDistinctMonths),
		})
	}
	return nil
}
