package repositories

import (
	"context"

	"healthbridge/db"
	"healthbridge/entities"

	"gorm.io/gorm"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(ctx context.Context, user *entities.User) error {
	return translate(r.db.GetDB().WithContext(ctx).Create(user).Error, "create user")
}

func (r *userPgRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

func (r *userPgRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err, "get user by email")
	}
	return &user, nil
}

func (r *userPgRepository) GetRecord(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).
		Preload("Profile.MedicalConditions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Preload("JournalEntries", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("entry_date ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "get user record")
	}
	if user.JournalEntries == nil {
		user.JournalEntries = []entities.JournalEntry{}
	}
	return &user, nil
}
