package schemas

import (
	"time"

	"healthbridge/entities"
)

type UserResponse struct {
	ID            string     `json:"id"`
	Name          *string    `json:"name"`
	Email         string     `json:"email"`
	EmailVerified *time.Time `json:"emailVerified"`
	Image         *string    `json:"image"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: utcPtr(u.EmailVerified),
		Image:         u.Image,
		CreatedAt:     u.CreatedAt.UTC(),
		UpdatedAt:     u.UpdatedAt.UTC(),
	}
}

type JournalEntryResponse struct {
	ID               string    `json:"id"`
	EntryTitle       string    `json:"entryTitle"`
	EntryDate        Date      `json:"entryDate"`
	MedicationsTaken *string   `json:"medicationsTaken"`
	SymptomsHad      *string   `json:"symptomsHad"`
	Sleep            *float64  `json:"sleep"`
	OtherNotes       *string   `json:"otherNotes"`
	UserID           string    `json:"userId"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewJournalEntryResponse(e *entities.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:               e.ID,
		EntryTitle:       e.EntryTitle,
		EntryDate:        Date{Time: e.EntryDate.UTC()},
		MedicationsTaken: e.MedicationsTaken,
		SymptomsHad:      e.SymptomsHad,
		Sleep:            e.Sleep,
		OtherNotes:       e.OtherNotes,
		UserID:           e.UserID,
		CreatedAt:        e.CreatedAt.UTC(),
	}
}

func NewJournalEntryResponses(entries []entities.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewJournalEntryResponse(&entries[i]))
	}
	return out
}

type HealthServiceResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Address      string     `json:"address"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	LastVerified *time.Time `json:"lastVerified"`
	Status       string     `json:"status"`
}

func NewHealthServiceResponse(s *entities.HealthService) HealthServiceResponse {
	return HealthServiceResponse{
		ID:           s.ID,
		Name:         s.Name,
		Type:         s.Type,
		Address:      s.Address,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		LastVerified: utcPtr(s.LastVerified),
		Status:       s.Status,
	}
}

func NewHealthServiceResponses(services []entities.HealthService) []HealthServiceResponse {
	out := make([]HealthServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, NewHealthServiceResponse(&services[i]))
	}
	return out
}

type ProfileResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Gender            string    `json:"gender"`
	Height            float64   `json:"height"`
	Weight            float64   `json:"weight"`
	DateOfBirth       Date      `json:"dateOfBirth"`
	MedicalConditions []string  `json:"medicalConditions"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func NewProfileResponse(p *entities.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		Gender:            p.Gender,
		Height:            p.Height,
		Weight:            p.Weight,
		DateOfBirth:       Date{Time: p.DateOfBirth.UTC()},
		MedicalConditions: p.ConditionLabels(),
		CreatedAt:         p.CreatedAt.UTC(),
		UpdatedAt:         p.UpdatedAt.UTC(),
	}
}

type CreateProfileResponse struct {
	Message string          `json:"message"`
	Profile ProfileResponse `json:"profile"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type ErrorResponse struct {
	Detail string   `json:"detail"`
	Errors []string `json:"errors,omitempty"`
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
