package seeds

import (
	"context"
	"fmt"
)

// checkOwnerIsolation resolves each configured owner and checks it holds its own properties.
// An owner that cannot be resolved fails the run but the remaining checks still execute.
func (v *Verifier) checkOwnerIsolation(ctx context.Context) error {
	ids := make([]string, 0, len(v.opts.IsolationOwners))
	resolved := true

	for _, email := range v.opts.IsolationOwners {
		id, err := v.resolveOwner(ctx, email)
		if err != nil {
			return err
		}
		if id == "" {
			resolved = false
			v.record(CheckResult{
				Name:     "Owner " + email,
				Severity: Hard,
				Detail:   fmt.Sprintf("Could not resolve %s to a property owner", email),
			})
			continue
		}
		ids = append(ids, id)
	}
	if !resolved {
		return nil
	}

	seen := make(map[string]string, len(ids))
	for i, id := range ids {
		if other, dup := seen[id]; dup {
			v.record(CheckResult{
				Name:     "Owner Isolation",
				Severity: Hard,
				Detail:   fmt.Sprintf("%s and %s resolve to the same property owner", other, v.opts.IsolationOwners[i]),
			})
			return nil
		}
		seen[id] = v.opts.IsolationOwners[i]
	}

	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE property_owner_id = ?", v.table("properties"))
	for i, id := range ids {
		var count int64
		if err := v.scan(ctx, &count, sql, id); err != nil {
			return fmt.Errorf("failed to count properties for %s: %w", v.opts.IsolationOwners[i], err)
		}

		v.record(CheckResult{
			Name:     "Owner " + v.opts.IsolationOwners[i],
			Severity: Hard,
			Passed:   count >= v.opts.MinOwnerProperties,
			Detail:   fmt.Sprintf("%d properties (expected >= %d)", count, v.opts.MinOwnerProperties),
		})
	}
	return nil
}

// resolveOwner returns the property owner ID for email, or "" when there is none.
func (v *Verifier) resolveOwner(ctx context.Context, email string) (string, error) {
	var ids []string
	sql := fmt.Sprintf(
		"SELECT po.id FROM %s po JOIN %s u ON u.id = po.user_id WHERE u.email = ? LIMIT 1",
		v.table("property_owners"), v.table("users"),
	)
	if err := v.scan(ctx, &ids, sql, email); err != nil {
		return "", fmt.Errorf("failed to resolve owner %s: %w", email, err)
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}
