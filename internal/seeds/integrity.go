package seeds

import (
	"context"
	"fmt"
)

var foreignKeys = []struct {
	child  string
	column string
	parent string
}{
	{"leases", "unit_id", "units"},
	{"units", "property_id", "properties"},
	{"maintenance_requests", "unit_id", "units"},
	{"properties", "property_owner_id", "property_owners"},
}

// checkReferentialIntegrity counts orphaned rows for each tracked foreign key.
func (v *Verifier) checkReferentialIntegrity(ctx context.Context) error {
	for _, fk := range foreignKeys {
		var orphans int64
		sql := fmt.Sprintf(
			"SELECT COUNT(*) FROM %s c WHERE NOT EXISTS (SELECT 1 FROM %s p WHERE p.id = c.%s)",
			v.table(fk.child), v.table(fk.parent), fk.column,
		)
		if err := v.scan(ctx, &orphans, sql); err != nil {
			return fmt.Errorf("failed to check %s.%s: %w", fk.child, fk.column, err)
		}

		detail := fmt.Sprintf("No %s with invalid %s", fk.child, fk.column)
		if orphans > 0 {
			detail = fmt.Sprintf("Found %d %s with invalid %s", orphans, fk.child, fk.column)
		}
		v.record(CheckResult{
			Name:     fmt.Sprintf("Integrity %s.%s", fk.child, fk.column),
			Severity: Hard,
			Passed:   orphans == 0,
			Detail:   detail,
		})
	}
	return nil
}
