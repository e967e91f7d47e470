package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeCreateAssignsIDs(t *testing.T) {
	u := &User{Email: "a@x.com"}
	require.NoError(t, u.BeforeCreate(nil))
	_, err := uuid.Parse(u.ID)
	assert.NoError(t, err)

	j := &JournalEntry{}
	require.NoError(t, j.BeforeCreate(nil))
	assert.NotEmpty(t, j.ID)

	p := &Profile{}
	require.NoError(t, p.BeforeCreate(nil))
	assert.NotEmpty(t, p.ID)

	mc := &MedicalCondition{}
	require.NoError(t, mc.BeforeCreate(nil))
	assert.NotEmpty(t, mc.ID)
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	u := &User{ID: "fixed"}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "fixed", u.ID)
}

func TestHealthServiceDefaultStatus(t *testing.T) {
	hs := &HealthService{Name: "City Clinic"}
	require.NoError(t, hs.BeforeCreate(nil))
	assert.Equal(t, HealthServiceStatusActive, hs.Status)

	closed := &HealthService{Status: "closed"}
	require.NoError(t, closed.BeforeCreate(nil))
	assert.Equal(t, "closed", closed.Status)
}

func TestConditionLabels(t *testing.T) {
	p := &Profile{MedicalConditions: []MedicalCondition{{Condition: "asthma"}, {Condition: "hypertension"}}}
	assert.Equal(t, []string{"asthma", "hypertension"}, p.ConditionLabels())

	empty := &Profile{}
	assert.NotNil(t, empty.ConditionLabels())
	assert.Empty(t, empty.ConditionLabels())
}
