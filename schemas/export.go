package schemas

import (
	"time"

	"healthbridge/entities"
)

// RecordPayload is the JSON text encoded into a user's QR code. Every time
// value is a string.
type RecordPayload struct {
	Name           *string               `json:"name"`
	Email          string                `json:"email"`
	Profile        *ProfilePayload       `json:"profile"`
	JournalEntries []JournalEntryPayload `json:"journalEntries"`
}

type ProfilePayload struct {
	Gender            string   `json:"gender"`
	Height            float64  `json:"height"`
	Weight            float64  `json:"weight"`
	DateOfBirth       string   `json:"dateOfBirth"`
	MedicalConditions []string `json:"medicalConditions"`
}

type JournalEntryPayload struct {
	ID               string   `json:"id"`
	EntryTitle       string   `json:"entryTitle"`
	EntryDate        string   `json:"entryDate"`
	MedicationsTaken *string  `json:"medicationsTaken"`
	SymptomsHad      *string  `json:"symptomsHad"`
	Sleep            *float64 `json:"sleep"`
	OtherNotes       *string  `json:"otherNotes"`
	CreatedAt        string   `json:"createdAt"`
}

// NewRecordPayload expects u to be loaded with its profile, the profile's
// conditions and its journal entries.
func NewRecordPayload(u *entities.User) RecordPayload {
	payload := RecordPayload{
		Name:           u.Name,
		Email:          u.Email,
		JournalEntries: make([]JournalEntryPayload, 0, len(u.JournalEntries)),
	}
	if p := u.Profile; p != nil {
		payload.Profile = &ProfilePayload{
			Gender:            p.Gender,
			Height:            p.Height,
			Weight:            p.Weight,
			DateOfBirth:       timestamp(p.DateOfBirth),
			MedicalConditions: p.ConditionLabels(),
		}
	}
	for _, e := range u.JournalEntries {
		payload.JournalEntries = append(payload.JournalEntries, JournalEntryPayload{
			ID:               e.ID,
			EntryTitle:       e.EntryTitle,
			EntryDate:        timestamp(e.EntryDate),
			MedicationsTaken: e.MedicationsTaken,
			SymptomsHad:      e.SymptomsHad,
			Sleep:            e.Sleep,
			OtherNotes:       e.OtherNotes,
			CreatedAt:        timestamp(e.CreatedAt),
		})
	}
	return payload
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
