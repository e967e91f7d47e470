// Package repotest provides in-memory repositories for tests. They apply the
// same id assignment, uniqueness rules and ordering as the gorm
// implementations and count every write.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"healthbridge/apperrors"
	"healthbridge/entities"
	"healthbridge/repositories"
)

// Store holds all entities behind a single mutex.
type Store struct {
	mu       sync.Mutex
	now      func() time.Time
	users    map[string]*entities.User
	profiles map[string]*entities.Profile // keyed by user id
	entries  []entities.JournalEntry
	services []entities.HealthService

	Writes int
	// Err, when set, is returned by every call.
	Err error
}

func NewStore() *Store {
	return &Store{
		now:      func() time.Time { return time.Now().UTC() },
		users:    map[string]*entities.User{},
		profiles: map[string]*entities.Profile{},
	}
}

func (s *Store) Users() repositories.UserRepository                   { return &userRepo{s} }
func (s *Store) JournalEntries() repositories.JournalEntryRepository  { return &journalRepo{s} }
func (s *Store) HealthServices() repositories.HealthServiceRepository { return &serviceRepo{s} }
func (s *Store) Profiles() repositories.ProfileRepository             { return &profileRepo{s} }

// ProfileCount returns how many profiles exist for userID.
func (s *Store) ProfileCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[userID]; ok {
		return 1
	}
	return 0
}

func (s *Store) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entities.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", apperrors.ErrConflict)
		}
	}
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	stored.Profile, stored.JournalEntries = nil, nil
	s.users[user.ID] = &stored
	s.Writes++
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("get user")
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("get user by email")
}

func (r *userRepo) GetRecord(_ context.Context, id string) (*entities.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("get user record")
	}
	cp := *u
	if p, ok := s.profiles[id]; ok {
		pc := *p
		pc.MedicalConditions = append([]entities.MedicalCondition(nil), p.MedicalConditions...)
		cp.Profile = &pc
	}
	cp.JournalEntries = s.entriesFor(id)
	return &cp, nil
}

func (s *Store) entriesFor(userID string) []entities.JournalEntry {
	out := []entities.JournalEntry{}
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

type journalRepo struct{ s *Store }

func (r *journalRepo) CreateForUser(_ context.Context, owner *entities.User, entry *entities.JournalEntry) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[owner.ID]; !ok {
		return notFound("create journal entry")
	}
	entry.UserID = owner.ID
	if err := entry.BeforeCreate(nil); err != nil {
		return err
	}
	now := s.now()
	entry.CreatedAt, entry.UpdatedAt = now, now
	s.entries = append(s.entries, *entry)
	s.Writes++
	return nil
}

func (r *journalRepo) GetByUserID(_ context.Context, userID string) ([]entities.JournalEntry, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.entriesFor(userID), nil
}

type serviceRepo struct{ s *Store }

func (r *serviceRepo) Create(_ context.Context, service *entities.HealthService) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if err := service.BeforeCreate(nil); err != nil {
		return err
	}
	now := s.now()
	service.CreatedAt, service.UpdatedAt = now, now
	s.services = append(s.services, *service)
	s.Writes++
	return nil
}

func (r *serviceRepo) GetAll(_ context.Context) ([]entities.HealthService, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]entities.HealthService{}, s.services...), nil
}

type profileRepo struct{ s *Store }

func (r *profileRepo) Create(_ context.Context, profile *entities.Profile) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[profile.UserID]; !ok {
		return notFound("create profile")
	}
	if _, ok := s.profiles[profile.UserID]; ok {
		return fmt.Errorf("create profile: %w", apperrors.ErrConflict)
	}
	if err := profile.BeforeCreate(nil); err != nil {
		return err
	}
	now := s.now()
	profile.CreatedAt, profile.UpdatedAt = now, now
	for i := range profile.MedicalConditions {
		mc := &profile.MedicalConditions[i]
		if err := mc.BeforeCreate(nil); err != nil {
			return err
		}
		mc.ProfileID = profile.ID
		mc.CreatedAt = now
	}
	stored := *profile
	stored.MedicalConditions = append([]entities.MedicalCondition(nil), profile.MedicalConditions...)
	s.profiles[profile.UserID] = &stored
	s.Writes++
	return nil
}

func (r *profileRepo) GetByUserID(_ context.Context, userID string) (*entities.Profile, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.profiles[userID]
	if !ok {
		return nil, notFound("get profile")
	}
	cp := *p
	cp.MedicalConditions = append([]entities.MedicalCondition(nil), p.MedicalConditions...)
	return &cp, nil
}
