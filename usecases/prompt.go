package usecases

import (
	"fmt"
	"strconv"
	"strings"

	"healthbridge/entities"
	"healthbridge/schemas"
)

const notProvided = "Not provided"

// BuildSummaryPrompt renders the summary request for u. The output depends
// only on u, so the same record always produces the same prompt.
func BuildSummaryPrompt(u *entities.User) string {
	var b strings.Builder

	b.WriteString("You are a helpful health assistant. Based on the following patient information and recent journal entries, please provide:\n")
	b.WriteString("1. A concise summary of the patient's current health status.\n")
	b.WriteString("2. Suggestions for improving their health.\n")
	b.WriteString("3. Questions the patient should ask their doctor.\n\n")

	name := notProvided
	if u.Name != nil && *u.Name != "" {
		name = *u.Name
	}

	gender, height, weight, dob := notProvided, notProvided, notProvided, notProvided
	conditions := "None"
	if p := u.Profile; p != nil {
		gender = p.Gender
		height = formatNumber(p.Height) + " cm"
		weight = formatNumber(p.Weight) + " kg"
		dob = p.DateOfBirth.UTC().Format(schemas.DateLayout)
		if labels := p.ConditionLabels(); len(labels) > 0 {
			conditions = strings.Join(labels, ", ")
		}
	}

	b.WriteString("Patient Information:\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Email: %s\n", u.Email)
	fmt.Fprintf(&b, "Gender: %s\n", gender)
	fmt.Fprintf(&b, "Height: %s\n", height)
	fmt.Fprintf(&b, "Weight: %s\n", weight)
	fmt.Fprintf(&b, "Date of Birth: %s\n", dob)
	fmt.Fprintf(&b, "Medical Conditions: %s\n\n", conditions)

	b.WriteString("Recent Journal Entries:\n")
	b.WriteString(journalLines(u.JournalEntries))
	return b.String()
}

func journalLines(entries []entities.JournalEntry) string {
	if len(entries) == 0 {
		return "No recent journal entries."
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- %s: %s | Medications: %s | Symptoms: %s | Notes: %s",
			e.EntryDate.UTC().Format(schemas.DateLayout),
			e.EntryTitle,
			orNone(e.MedicationsTaken),
			orNone(e.SymptomsHad),
			orNone(e.OtherNotes),
		))
	}
	return strings.Join(lines, "\n")
}

func orNone(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "None"
	}
	return *s
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
