package models

import "github.com/google/uuid"

// Property is a building or lot owned by a single PropertyOwner.
type Property struct {
	Base
	PropertyOwnerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name            string    `gorm:"not null"`
	Address         string
	City            string
	State           string
	ZipCode         string
}

// Unit is a rentable space inside a Property.
type Unit struct {
	Base
	PropertyID uuid.UUID `gorm:"type:uuid;index;not null"`
	UnitNumber string    `gorm:"not null"`
	Bedrooms   int
	Bathrooms  float64
	RentCents  int64
	Status     string `gorm:"default:VACANT"`
}
