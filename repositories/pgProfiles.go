package repositories

import (
	"context"

	"healthbridge/db"
	"healthbridge/entities"

	"gorm.io/gorm"
)

type profilePgRepository struct {
	db db.Database
}

func NewProfilePgRepository(database db.Database) ProfileRepository {
	return &profilePgRepository{db: database}
}

// Create inserts the profile together with its medical conditions.
func (r *profilePgRepository) Create(ctx context.Context, profile *entities.Profile) error {
	return translate(r.db.GetDB().WithContext(ctx).Create(profile).Error, "create profile")
}

func (r *profilePgRepository) GetByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.GetDB().WithContext(ctx).
		Preload("MedicalConditions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, translate(err, "get profile")
	}
	return &profile, nil
}
