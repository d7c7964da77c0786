package models

import "github.com/google/uuid"

// Roles stored in users.role.
const (
	RoleOwner  = "OWNER"
	RoleTenant = "TENANT"
)

// User is an account row. Owners and tenants hang a profile off it.
type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null"`
	FullName string
	Role     string `gorm:"not null;default:OWNER"`
}

// PropertyOwner is the owner profile linked to exactly one user.
type PropertyOwner struct {
	Base
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	BusinessName string
}

// Tenant is the renter profile linked to a user.
type Tenant struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FirstName string
	LastName  string
	Phone     string
}
