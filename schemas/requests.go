// Package schemas holds the request and response bodies of the HTTP API.
// JSON field names are camelCase.
package schemas

import (
	"strings"

	"healthbridge/entities"
)

type CreateUserRequest struct {
	Name  *string `json:"name"`
	Email string  `json:"email" binding:"required,email"`
}

func (r CreateUserRequest) Entity() *entities.User {
	return &entities.User{
		Name:  r.Name,
		Email: strings.TrimSpace(r.Email),
	}
}

type CreateJournalEntryRequest struct {
	EntryTitle       string   `json:"entryTitle" binding:"required"`
	EntryDate        *Date    `json:"entryDate" binding:"required"`
	MedicationsTaken *string  `json:"medicationsTaken"`
	SymptomsHad      *string  `json:"symptomsHad"`
	Sleep            *Decimal `json:"sleep" binding:"omitempty,gte=0,lte=24"`
	OtherNotes       *string  `json:"otherNotes"`
	UserID           string   `json:"userId" binding:"required"`
}

// Entity builds the entry without an owner; the repository links it to the
// loaded user.
func (r CreateJournalEntryRequest) Entity() *entities.JournalEntry {
	return &entities.JournalEntry{
		EntryTitle:       r.EntryTitle,
		EntryDate:        MidnightUTC(r.EntryDate.Time),
		MedicationsTaken: r.MedicationsTaken,
		SymptomsHad:      r.SymptomsHad,
		Sleep:            FloatPtr(r.Sleep),
		OtherNotes:       r.OtherNotes,
	}
}

type CreateHealthServiceRequest struct {
	Name      string   `json:"name" binding:"required"`
	Type      string   `json:"type" binding:"required,max=64"`
	Address   string   `json:"address" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

func (r CreateHealthServiceRequest) Entity() *entities.HealthService {
	return &entities.HealthService{
		Name:      r.Name,
		Type:      r.Type,
		Address:   r.Address,
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
	}
}

type CreateProfileRequest struct {
	UserID            string   `json:"userId" binding:"required"`
	Gender            string   `json:"gender" binding:"required,max=32"`
	Height            *Decimal `json:"height" binding:"required,gt=0"`
	Weight            *Decimal `json:"weight" binding:"required,gt=0"`
	DateOfBirth       *Date    `json:"dateOfBirth" binding:"required"`
	MedicalConditions []string `json:"medicalConditions" binding:"omitempty,dive,required"`
}

func (r CreateProfileRequest) Entity() *entities.Profile {
	profile := &entities.Profile{
		UserID:      r.UserID,
		Gender:      r.Gender,
		Height:      r.Height.Float64(),
		Weight:      r.Weight.Float64(),
		DateOfBirth: MidnightUTC(r.DateOfBirth.Time),
	}
	for _, c := range r.MedicalConditions {
		if c = strings.TrimSpace(c); c != "" {
			profile.MedicalConditions = append(profile.MedicalConditions, entities.MedicalCondition{Condition: c})
		}
	}
	return profile
}
