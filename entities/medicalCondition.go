package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalCondition struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	ProfileID string `gorm:"index;not null;type:varchar(36)"`
	Condition string `gorm:"not null;type:text"`
	CreatedAt time.Time
}

func (mc *MedicalCondition) BeforeCreate(tx *gorm.DB) (err error) {
	if mc.ID == "" {
		mc.ID = uuid.New().String()
	}
	return nil
}
