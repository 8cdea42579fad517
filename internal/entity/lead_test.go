package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadpulse/internal/entity"
)

var t0 = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// TestNewLeadDefaults - only a name fills every other field with defaults
func TestNewLeadDefaults(t *testing.T) {
	lead, err := entity.NewLead(entity.LeadFields{Name: "  Ada Lovelace "}, t0)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", lead.Name)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.Equal(t, entity.Unassigned, lead.AssignedTo)
	assert.Equal(t, entity.DefaultCompany, lead.Company)
	assert.Equal(t, entity.DefaultService, lead.Service)
	assert.Equal(t, entity.DefaultSource, lead.Source)
	assert.Equal(t, entity.DefaultCampaign, lead.Campaign)
	assert.Zero(t, lead.Value)
	assert.Equal(t, t0, lead.CreatedAt)
	assert.Equal(t, t0, lead.UpdatedAt)
	assert.Contains(t, lead.ID, "lead-")
}

func TestNewLeadUniqueIDs(t *testing.T) {
	a, err := entity.NewLead(entity.LeadFields{Name: "A"}, t0)
	require.NoError(t, err)
	b, err := entity.NewLead(entity.LeadFields{Name: "A"}, t0)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewLeadRejectsInvalidInput(t *testing.T) {
	_, err := entity.NewLead(entity.LeadFields{Name: "   "}, t0)
	assert.ErrorIs(t, err, entity.ErrNameRequired)

	_, err = entity.NewLead(entity.LeadFields{Name: "Bob", Value: -1}, t0)
	assert.ErrorIs(t, err, entity.ErrNegativeValue)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    entity.LeadStatus
		wantErr bool
	}{
		{"New", entity.StatusNew, false},
		{"converted", entity.StatusConverted, false},
		{" LOST ", entity.StatusLost, false},
		{"Archived", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := entity.ParseStatus(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, entity.ErrInvalidStatus)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestMutatorsKeepUpdatedAtAfterCreatedAt - a clock that steps back never
// moves UpdatedAt before CreatedAt
func TestMutatorsKeepUpdatedAtAfterCreatedAt(t *testing.T) {
	lead, err := entity.NewLead(entity.LeadFields{Name: "Clock"}, t0)
	require.NoError(t, err)

	earlier := t0.Add(-time.Hour)
	lead.SetStatus(entity.StatusContacted, earlier)
	assert.Equal(t, t0, lead.UpdatedAt)

	later := t0.Add(time.Hour)
	lead.Assign("Sarah Johnson", later)
	assert.Equal(t, later, lead.UpdatedAt)
	assert.False(t, lead.UpdatedAt.Before(lead.CreatedAt))
}

func TestAppendNote(t *testing.T) {
	lead, err := entity.NewLead(entity.LeadFields{Name: "Notes", Notes: "first"}, t0)
	require.NoError(t, err)

	lead.AppendNote("second", t0)
	assert.Equal(t, "first\nsecond", lead.Notes)
}

func TestIsRosterMember(t *testing.T) {
	assert.True(t, entity.IsRosterMember("Mike Davis"))
	assert.False(t, entity.IsRosterMember("Nobody"))
}
