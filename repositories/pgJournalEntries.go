package repositories

import (
	"context"

	"healthbridge/db"
	"healthbridge/entities"
)

type journalEntryPgRepository struct {
	db db.Database
}

func NewJournalEntryPgRepository(database db.Database) JournalEntryRepository {
	return &journalEntryPgRepository{db: database}
}

func (r *journalEntryPgRepository) CreateForUser(ctx context.Context, owner *entities.User, entry *entities.JournalEntry) error {
	entry.UserID = owner.ID
	return translate(r.db.GetDB().WithContext(ctx).Create(entry).Error, "create journal entry")
}

func (r *journalEntryPgRepository) GetByUserID(ctx context.Context, userID string) ([]entities.JournalEntry, error) {
	entries := []entities.JournalEntry{}
	err := r.db.GetDB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, translate(err, "list journal entries")
	}
	return entries, nil
}
