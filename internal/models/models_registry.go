package models

// Registry lists every TenantFlow model in parent-before-child order, keyed by table name.
var Registry = []struct {
	Table string
	Model interface{}
}{
	{"users", &User{}},
	{"property_owners", &PropertyOwner{}},
	{"tenants", &Tenant{}},
	{"properties", &Property{}},
	{"units", &Unit{}},
	{"leases", &Lease{}},
	{"maintenance_requests", &MaintenanceRequest{}},
	{"seed_versions", &SeedVersion{}},
}

// Tables returns the table names from Registry in order.
func Tables() []string {
	tables := make([]string, 0, len(Registry))
	for _, entry := range Registry {
		tables = append(tables, entry.Table)
	}
	return tables
}

// All returns the model values from Registry in order, ready for AutoMigrate.
func All() []interface{} {
	all := make([]interface{}, 0, len(Registry))
	for _, entry := range Registry {
		all = append(all, entry.Model)
	}
	return all
}
