package repositories

import (
	"context"

	"healthbridge/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// GetRecord loads the user with its profile, the profile's medical
	// conditions and every journal entry.
	GetRecord(ctx context.Context, id string) (*entities.User, error)
}

type JournalEntryRepository interface {
	// CreateForUser links entry to owner before inserting it.
	CreateForUser(ctx context.Context, owner *entities.User, entry *entities.JournalEntry) error
	GetByUserID(ctx context.Context, userID string) ([]entities.JournalEntry, error)
}

type HealthServiceRepository interface {
	Create(ctx context.Context, service *entities.HealthService) error
	GetAll(ctx context.Context) ([]entities.HealthService, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entities.Profile, error)
}
