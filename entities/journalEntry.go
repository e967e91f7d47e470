package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalEntry is one day's log for a user. EntryDate is always stored as
// midnight UTC of the calendar day it describes.
type JournalEntry struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)"`
	UserID           string    `gorm:"index;not null;type:varchar(36)"`
	EntryTitle       string    `gorm:"not null;type:text"`
	EntryDate        time.Time `gorm:"index;not null"`
	MedicationsTaken *string   `gorm:"type:text"`
	SymptomsHad      *string   `gorm:"type:text"`
	Sleep            *float64  `gorm:"type:numeric"`
	OtherNotes       *string   `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (j *JournalEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	return nil
}
