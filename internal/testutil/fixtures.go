// Package testutil builds TenantFlow databases for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hudsor01/tenant-flow-sub002/internal/models"
)

// OpenTestDB returns a migrated in-memory sqlite database. The pool is pinned to one
// connection so every query sees the same memory database.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	Migrate(t, db)
	return db
}

// Migrate creates every TenantFlow table on db.
func Migrate(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.AutoMigrate(models.All()...))
}

// Fixture holds the rows created by a seed helper.
type Fixture struct {
	DB                  *gorm.DB
	Owners              map[string]models.PropertyOwner
	Properties          []models.Property
	Units               []models.Unit
	Leases              []models.Lease
	MaintenanceRequests []models.MaintenanceRequest
}

// BaseMonth anchors fixture timestamps.
var BaseMonth = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

// SeedSmoke creates the smoke data set: 4 users (owner-a, owner-b and two tenants),
// 4 properties split evenly between the owners, 8 units, 2 leases and 3 maintenance
// requests, all dated in BaseMonth.
func SeedSmoke(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()

	f := &Fixture{DB: db, Owners: map[string]models.PropertyOwner{}}
	for _, email := range []string{"owner-a@test.com", "owner-b@test.com"} {
		f.addOwner(t, email)
	}
	for _, email := range []string{"tenant-a@test.com", "tenant-b@test.com"} {
		f.addTenant(t, email)
	}

	for _, email := range []string{"owner-a@test.com", "owner-b@test.com"} {
		for i := 0; i < 2; i++ {
			prop := f.AddProperty(t, f.Owners[email].ID)
			f.AddUnit(t, prop.ID)
			f.AddUnit(t, prop.ID)
		}
	}

	f.AddLease(t, f.Units[0].ID, BaseMonth)
	f.AddLease(t, f.Units[1].ID, BaseMonth)
	for i := 0; i < 3; i++ {
		f.AddMaintenanceRequest(t, f.Units[i].ID, BaseMonth)
	}
	return f
}

func (f *Fixture) addOwner(t *testing.T, email string) {
	user := models.User{Email: email, Role: models.RoleOwner}
	require.NoError(t, f.DB.Create(&user).Error)

	owner := models.PropertyOwner{UserID: user.ID, BusinessName: email}
	require.NoError(t, f.DB.Create(&owner).Error)
	f.Owners[email] = owner
}

func (f *Fixture) addTenant(t *testing.T, email string) {
	user := models.User{Email: email, Role: models.RoleTenant}
	require.NoError(t, f.DB.Create(&user).Error)
	require.NoError(t, f.DB.Create(&models.Tenant{UserID: user.ID}).Error)
}

// AddProperty creates a property for owner.
func (f *Fixture) AddProperty(t *testing.T, owner uuid.UUID) models.Property {
	t.Helper()
	prop := models.Property{
		PropertyOwnerID: owner,
		Name:            fmt.Sprintf("Property %d", len(f.Properties)+1),
	}
	require.NoError(t, f.DB.Create(&prop).Error)
	f.Properties = append(f.Properties, prop)
	return prop
}

// AddUnit creates a unit on property.
func (f *Fixture) AddUnit(t *testing.T, property uuid.UUID) models.Unit {
	t.Helper()
	unit := models.Unit{
		PropertyID: property,
		UnitNumber: fmt.Sprintf("%d", 100+len(f.Units)),
	}
	require.NoError(t, f.DB.Create(&unit).Error)
	f.Units = append(f.Units, unit)
	return unit
}

// AddLease creates a lease on unit starting at start.
func (f *Fixture) AddLease(t *testing.T, unit uuid.UUID, start time.Time) models.Lease {
	t.Helper()
	lease := models.Lease{UnitID: unit, StartDate: start}
	require.NoError(t, f.DB.Create(&lease).Error)
	f.Leases = append(f.Leases, lease)
	return lease
}

// AddMaintenanceRequest creates a request on unit stamped at created.
func (f *Fixture) AddMaintenanceRequest(t *testing.T, unit uuid.UUID, created time.Time) models.MaintenanceRequest {
	t.Helper()
	req := models.MaintenanceRequest{
		Base:   models.Base{CreatedAt: created},
		UnitID: unit,
		Title:  fmt.Sprintf("Request %d", len(f.MaintenanceRequests)+1),
	}
	require.NoError(t, f.DB.Create(&req).Error)
	f.MaintenanceRequests = append(f.MaintenanceRequests, req)
	return req
}

// SpreadMonths restamps leases and maintenance requests so they cover n consecutive
// months starting at BaseMonth.
func (f *Fixture) SpreadMonths(t *testing.T, n int) {
	t.Helper()
	for i, lease := range f.Leases {
		start := BaseMonth.AddDate(0, i%n, 0)
		require.NoError(t, f.DB.Model(&models.Lease{}).Where("id = ?", lease.ID).Update("start_date", start).Error)
	}
	for i, req := range f.MaintenanceRequests {
		created := BaseMonth.AddDate(0, i%n, 0)
		require.NoError(t, f.DB.Model(&models.MaintenanceRequest{}).Where("id = ?", req.ID).Update("created_at", created).Error)
	}
}
