package models

import (
	"time"

	"github.com/google/uuid"
)

// Lease binds a tenant to a unit for a period starting at StartDate.
type Lease struct {
	Base
	UnitID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	TenantID  *uuid.UUID `gorm:"type:uuid;index"`
	StartDate time.Time  `gorm:"not null"`
	EndDate   *time.Time
	RentCents int64
	Status    string `gorm:"default:ACTIVE"`
}

// MaintenanceRequest is a work order raised against a unit.
type MaintenanceRequest struct {
	Base
	UnitID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"not null"`
	Description string
	Priority    string `gorm:"default:MEDIUM"`
	Status      string `gorm:"default:OPEN"`
}
