package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account every profile and journal entry hangs off.
type User struct {
	ID             string  `gorm:"primaryKey;type:varchar(36)"`
	Name           *string `gorm:"type:text"`
	Email          string  `gorm:"uniqueIndex;not null;type:text"`
	EmailVerified  *time.Time
	Image          *string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Profile        *Profile       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	JournalEntries []JournalEntry `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
