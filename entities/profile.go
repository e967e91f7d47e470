package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds a user's body measurements. The unique index on UserID
// keeps it one-to-one with User.
type Profile struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)"`
	UserID            string    `gorm:"uniqueIndex;not null;type:varchar(36)"`
	Gender            string    `gorm:"type:varchar(32)"`
	Height            float64   `gorm:"not null"`
	Weight            float64   `gorm:"not null"`
	DateOfBirth       time.Time `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	MedicalConditions []MedicalCondition `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// ConditionLabels returns the condition texts in stored order.
func (p *Profile) ConditionLabels() []string {
	labels := make([]string, 0, len(p.MedicalConditions))
	for _, mc := range p.MedicalConditions {
		labels = append(labels, mc.Condition)
	}
	return labels
}
