package schemas

import (
	"encoding/json"
	"testing"
	"time"

	"healthbridge/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-01-10", want: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{in: " 1990-05-01 ", want: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2024-01-10T23:30:00-05:00", want: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{in: "10/01/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDateJSON(t *testing.T) {
	var body struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-01-10"}`), &body))
	assert.Equal(t, "2024-01-10", body.D.String())

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-01-10"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"d":20240110}`), &body))
}

func TestDecimalAcceptsNumbersAndStrings(t *testing.T) {
	var body struct {
		A *Decimal `json:"a"`
		B *Decimal `json:"b"`
		C *Decimal `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":165,"b":"60.5","c":null}`), &body))
	require.NotNil(t, body.A)
	assert.InDelta(t, 165, body.A.Float64(), 1e-9)
	assert.InDelta(t, 60.5, body.B.Float64(), 1e-9)
	assert.Nil(t, body.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"tall"}`), &body))
}

func TestDecimalRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{`"Inf"`, `"+Inf"`, `"-Infinity"`, `"infinity"`, `"NaN"`} {
		t.Run(raw, func(t *testing.T) {
			var d Decimal
			assert.Error(t, json.Unmarshal([]byte(raw), &d))
		})
	}
}

func TestJournalEntityNormalizesDate(t *testing.T) {
	d, err := ParseDate("2024-01-10T18:00:00+02:00")
	require.NoError(t, err)
	sleep := Decimal(7.5)

	req := CreateJournalEntryRequest{EntryTitle: "Checkup", EntryDate: &d, Sleep: &sleep, UserID: "u-1"}
	entry := req.Entity()

	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), entry.EntryDate)
	assert.Empty(t, entry.UserID)
	require.NotNil(t, entry.Sleep)
	assert.InDelta(t, 7.5, *entry.Sleep, 1e-9)
}

func TestProfileEntityDropsBlankConditions(t *testing.T) {
	dob, err := ParseDate("1990-05-01")
	require.NoError(t, err)
	h, w := Decimal(165), Decimal(60)

	req := CreateProfileRequest{
		UserID: "u-1", Gender: "F", Height: &h, Weight: &w, DateOfBirth: &dob,
		MedicalConditions: []string{"asthma", "  ", " hypertension "},
	}
	p := req.Entity()

	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, []string{"asthma", "hypertension"}, p.ConditionLabels())
	assert.Equal(t, time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC), p.DateOfBirth)
}

func TestNewRecordPayloadWithoutProfileOrEntries(t *testing.T) {
	name := "Ana"
	u := &entities.User{Name: &name, Email: "a@x.com"}

	out, err := json.Marshal(NewRecordPayload(u))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","email":"a@x.com","profile":null,"journalEntries":[]}`, string(out))
}

func TestNewRecordPayloadStringifiesTimes(t *testing.T) {
	created := time.Date(2024, 1, 10, 9, 15, 0, 0, time.FixedZone("CET", 3600))
	u := &entities.User{
		Email: "a@x.com",
		Profile: &entities.Profile{
			Gender: "F", Height: 165, Weight: 60,
			DateOfBirth:       time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
			MedicalConditions: []entities.MedicalCondition{{Condition: "asthma"}},
		},
		JournalEntries: []entities.JournalEntry{{
			ID: "j-1", EntryTitle: "Checkup",
			EntryDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			CreatedAt: created,
		}},
	}

	payload := NewRecordPayload(u)
	require.NotNil(t, payload.Profile)
	assert.Equal(t, "1990-05-01T00:00:00Z", payload.Profile.DateOfBirth)
	assert.Equal(t, []string{"asthma"}, payload.Profile.MedicalConditions)
	require.Len(t, payload.JournalEntries, 1)
	assert.Equal(t, "2024-01-10T00:00:00Z", payload.JournalEntries[0].EntryDate)
	assert.Equal(t, "2024-01-10T08:15:00Z", payload.JournalEntries[0].CreatedAt)
}

func TestResponsesRenderCalendarDates(t *testing.T) {
	e := &entities.JournalEntry{ID: "j-1", UserID: "u-1", EntryTitle: "Checkup", EntryDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}
	out, err := json.Marshal(NewJournalEntryResponse(e))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "2024-01-10", decoded["entryDate"])
	assert.Equal(t, "u-1", decoded["userId"])

	assert.NotNil(t, NewJournalEntryResponses(nil))
	assert.Empty(t, NewHealthServiceResponses(nil))
}
