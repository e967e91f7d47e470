package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const HealthServiceStatusActive = "active"

// HealthService is a directory listing (clinic, pharmacy, ...). It is not
// related to any user.
type HealthService struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)"`
	Name         string  `gorm:"not null;type:text"`
	Type         string  `gorm:"index;not null;type:varchar(64)"`
	Address      string  `gorm:"not null;type:text"`
	Latitude     float64 `gorm:"not null"`
	Longitude    float64 `gorm:"not null"`
	LastVerified *time.Time
	Status       string `gorm:"type:varchar(32);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (hs *HealthService) BeforeCreate(tx *gorm.DB) (err error) {
	if hs.ID == "" {
		hs.ID = uuid.New().String()
	}
	if hs.Status == "" {
		hs.Status = HealthServiceStatusActive
	}
	return nil
}
