package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedVersion is an append-only record of which seed generation ran for a tier.
type SeedVersion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tier      string    `gorm:"not null;index"`
	Version   string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (s *SeedVersion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.AppliedAt.IsZero() {
		s.AppliedAt = time.Now().UTC()
	}
	return nil
}
