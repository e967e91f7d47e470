package usecases

import (
	"context"
	"errors"

	"healthbridge/apperrors"
	"healthbridge/entities"
	"healthbridge/metrics"
	"healthbridge/repositories"
	"healthbridge/schemas"

	"github.com/sirupsen/logrus"
)

const (
	msgUserNotFound    = "User not found"
	msgUserExists      = "User already exists"
	msgProfileExists   = "Profile already exists for this user"
	msgProfileNotFound = "Profile not found"
)

// ============= User Use Cases =============

type UserUseCase struct {
	repo repositories.UserRepository
	log  logrus.FieldLogger
}

func NewUserUseCase(repo repositories.UserRepository, log logrus.FieldLogger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// CreateUser fails with Conflict when the email is taken, without writing.
func (uc *UserUseCase) CreateUser(ctx context.Context, user *entities.User) error {
	if user.Email == "" {
		return apperrors.Invalid("email is required", nil)
	}

	_, err := uc.repo.GetByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return apperrors.Conflict(msgUserExists, nil)
	case !errors.Is(err, apperrors.ErrNotFound):
		return err
	}

	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.Conflict(msgUserExists, err)
		}
		return err
	}

	metrics.RecordCreated("user")
	uc.log.WithField("user_id", user.ID).Info("user created")
	return nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*entities.User, error) {
	if id == "" {
		return nil, apperrors.NotFound(msgUserNotFound, nil)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err)
	}
	return user, nil
}

// ============= Journal Use Cases =============

// JournalNotifier is told about every journal entry after it is stored.
type JournalNotifier interface {
	NotifyJournalEntry(entry *entities.JournalEntry)
}

type JournalUseCase struct {
	users    repositories.UserRepository
	entries  repositories.JournalEntryRepository
	notifier JournalNotifier
	log      logrus.FieldLogger
}

// NewJournalUseCase accepts a nil notifier.
func NewJournalUseCase(users repositories.UserRepository, entries repositories.JournalEntryRepository, notifier JournalNotifier, log logrus.FieldLogger) *JournalUseCase {
	return &JournalUseCase{users: users, entries: entries, notifier: notifier, log: log}
}

// CreateJournalEntry stores entry for userID. The entry date is truncated
// to midnight UTC and the entry is linked through the loaded user.
func (uc *JournalUseCase) CreateJournalEntry(ctx context.Context, userID string, entry *entities.JournalEntry) error {
	if userID == "" {
		return apperrors.NotFound(msgUserNotFound, nil)
	}
	owner, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return userNotFound(err)
	}

	entry.EntryDate = schemas.MidnightUTC(entry.EntryDate)
	if err := uc.entries.CreateForUser(ctx, owner, entry); err != nil {
		return userNotFound(err)
	}

	metrics.RecordCreated("journal_entry")
	uc.log.WithFields(logrus.Fields{
		"user_id":  owner.ID,
		"entry_id": entry.ID,
	}).Info("journal entry created")

	if uc.notifier != nil {
		uc.notifier.NotifyJournalEntry(entry)
	}
	return nil
}

// ListJournalEntries does not check that the user exists; an unknown user
// has no entries.
func (uc *JournalUseCase) ListJournalEntries(ctx context.Context, userID string) ([]entities.JournalEntry, error) {
	return uc.entries.GetByUserID(ctx, userID)
}

// ============= Health Service Use Cases =============

type HealthServiceUseCase struct {
	repo repositories.HealthServiceRepository
	log  logrus.FieldLogger
}

func NewHealthServiceUseCase(repo repositories.HealthServiceRepository, log logrus.FieldLogger) *HealthServiceUseCase {
	return &HealthServiceUseCase{repo: repo, log: log}
}

func (uc *HealthServiceUseCase) CreateHealthService(ctx context.Context, service *entities.HealthService) error {
	if err := uc.repo.Create(ctx, service); err != nil {
		return err
	}
	metrics.RecordCreated("health_service")
	uc.log.WithFields(logrus.Fields{
		"service_id": service.ID,
		"type":       service.Type,
	}).Info("health service created")
	return nil
}

func (uc *HealthServiceUseCase) ListHealthServices(ctx context.Context) ([]entities.HealthService, error) {
	return uc.repo.GetAll(ctx)
}

// ============= Profile Use Cases =============

type ProfileUseCase struct {
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
	log      logrus.FieldLogger
}

func NewProfileUseCase(users repositories.UserRepository, profiles repositories.ProfileRepository, log logrus.FieldLogger) *ProfileUseCase {
	return &ProfileUseCase{users: users, profiles: profiles, log: log}
}

// CreateProfile fails with NotFound for an unknown user and with Conflict
// when the user already has a profile. Neither case writes.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, profile *entities.Profile) error {
	if profile.UserID == "" {
		return apperrors.NotFound(msgUserNotFound, nil)
	}
	if _, err := uc.users.GetByID(ctx, profile.UserID); err != nil {
		return userNotFound(err)
	}

	_, err := uc.profiles.GetByUserID(ctx, profile.UserID)
	switch {
	case err == nil:
		return apperrors.Conflict(msgProfileExists, nil)
	case !errors.Is(err, apperrors.ErrNotFound):
		return err
	}

	profile.DateOfBirth = schemas.MidnightUTC(profile.DateOfBirth)
	if err := uc.profiles.Create(ctx, profile); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			return apperrors.Conflict(msgProfileExists, err)
		case errors.Is(err, apperrors.ErrNotFound):
			return apperrors.NotFound(msgUserNotFound, err)
		}
		return err
	}

	metrics.RecordCreated("profile")
	uc.log.WithFields(logrus.Fields{
		"user_id":    profile.UserID,
		"profile_id": profile.ID,
		"conditions": len(profile.MedicalConditions),
	}).Info("profile created")
	return nil
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*entities.Profile, error) {
	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(msgProfileNotFound, err)
		}
		return nil, err
	}
	return profile, nil
}

func userNotFound(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NotFound(msgUserNotFound, err)
	}
	return err
}
