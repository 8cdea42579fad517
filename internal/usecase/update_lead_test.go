package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/infra/database"
	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

type updateFixture struct {
	repo    *database.MemoryLeadRepository
	pub     *MockPublisher
	metrics *MockMetrics
	uc      *usecase.UpdateLeadUseCase
	query   *usecase.QueryLeadsUseCase
	lead    *entity.Lead
}

func newUpdateFixture(t *testing.T, value float64) *updateFixture {
	t.Helper()
	repo := database.NewMemoryLeadRepository().WithClock(func() time.Time { return fixedNow.Add(time.Hour) })
	lead, err := entity.NewLead(entity.LeadFields{Name: "Linus", Value: value}, fixedNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), lead))

	pub := new(MockPublisher)
	pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(nil)
	metrics := new(MockMetrics)
	metrics.On("LeadStatusChanged", mock.Anything).Return()

	return &updateFixture{
		repo:    repo,
		pub:     pub,
		metrics: metrics,
		uc:      usecase.NewUpdateLeadUseCase(repo, pub, metrics, logger.Nop()),
		query:   usecase.NewQueryLeadsUseCase(repo, time.UTC),
		lead:    lead,
	}
}

func TestSetStatusPublishesPreviousStatus(t *testing.T) {
	f := newUpdateFixture(t, 0)

	lead, err := f.uc.SetStatus(context.Background(), f.lead.ID, usecase.SetStatusInput{Status: "contacted"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusContacted, lead.Status)
	assert.Equal(t, fixedNow.Add(time.Hour), lead.UpdatedAt)

	f.pub.AssertCalled(t, "PublishLeadEvent", mock.Anything, mock.MatchedBy(func(e entity.LeadEvent) bool {
		return e.Type == entity.EventLeadStatusChanged &&
			e.PreviousStatus == entity.StatusNew &&
			e.Lead.Status == entity.StatusContacted
	}))
	f.metrics.AssertCalled(t, "LeadStatusChanged", entity.StatusContacted)
}

// TestSetStatusConvertedUpdatesSummary - converting a lead adds one conversion
// and its value to the summary
func TestSetStatusConvertedUpdatesSummary(t *testing.T) {
	f := newUpdateFixture(t, 7500)
	ctx := context.Background()
	window := fixedNow.Add(-time.Hour)

	before, err := f.query.SummaryBetween(ctx, window, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	_, err = f.uc.SetStatus(ctx, f.lead.ID, usecase.SetStatusInput{Status: "Converted"})
	require.NoError(t, err)

	after, err := f.query.SummaryBetween(ctx, window, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, before.Converted+1, after.Converted)
	assert.Equal(t, before.TotalValue+7500, after.TotalValue)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	f := newUpdateFixture(t, 0)

	_, err := f.uc.SetStatus(context.Background(), f.lead.ID, usecase.SetStatusInput{Status: "Archived"})
	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, usecase.CodeValidation, de.Code)
	f.pub.AssertNotCalled(t, "PublishLeadEvent", mock.Anything, mock.Anything)
}

// TestUpdatesOnUnknownLead - every mutation on a missing id is LEAD_NOT_FOUND
// and publishes nothing
func TestUpdatesOnUnknownLead(t *testing.T) {
	f := newUpdateFixture(t, 0)
	ctx := context.Background()

	_, err := f.uc.SetStatus(ctx, "lead-missing", usecase.SetStatusInput{Status: "Lost"})
	assertNotFound(t, err)

	_, err = f.uc.Assign(ctx, "lead-missing", usecase.AssignInput{AssignedTo: "John Smith"})
	assertNotFound(t, err)

	_, err = f.uc.AddNote(ctx, "lead-missing", usecase.AddNoteInput{Note: "hello"})
	assertNotFound(t, err)

	f.pub.AssertNotCalled(t, "PublishLeadEvent", mock.Anything, mock.Anything)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, usecase.CodeLeadNotFound, de.Code)
}

func TestAssign(t *testing.T) {
	f := newUpdateFixture(t, 0)
	ctx := context.Background()

	lead, err := f.uc.Assign(ctx, f.lead.ID, usecase.AssignInput{AssignedTo: " Mike Davis "})
	require.NoError(t, err)
	assert.Equal(t, "Mike Davis", lead.AssignedTo)

	lead, err = f.uc.Assign(ctx, f.lead.ID, usecase.AssignInput{AssignedTo: entity.Unassigned})
	require.NoError(t, err)
	assert.Equal(t, entity.Unassigned, lead.AssignedTo)

	_, err = f.uc.Assign(ctx, f.lead.ID, usecase.AssignInput{AssignedTo: "Stranger"})
	assert.True(t, usecase.IsDomainError(err))

	_, err = f.uc.Assign(ctx, f.lead.ID, usecase.AssignInput{AssignedTo: ""})
	assert.True(t, usecase.IsDomainError(err))
}

func TestAddNote(t *testing.T) {
	f := newUpdateFixture(t, 0)
	ctx := context.Background()

	_, err := f.uc.AddNote(ctx, f.lead.ID, usecase.AddNoteInput{Note: "first call"})
	require.NoError(t, err)
	lead, err := f.uc.AddNote(ctx, f.lead.ID, usecase.AddNoteInput{Note: "sent proposal"})
	require.NoError(t, err)
	assert.Equal(t, "\nfirst call\nsent proposal", lead.Notes)

	_, err = f.uc.AddNote(ctx, f.lead.ID, usecase.AddNoteInput{Note: "  "})
	assert.True(t, usecase.IsDomainError(err))
}

// TestSetStatusUsesPreviousStatusFromStore - the event carries the status the
// store replaced, without a separate read
func TestSetStatusUsesPreviousStatusFromStore(t *testing.T) {
	updated := &entity.Lead{ID: "lead-1", Status: entity.StatusLost, CreatedAt: fixedNow, UpdatedAt: fixedNow}
	repo := new(MockLeadRepository)
	repo.On("UpdateStatus", mock.Anything, "lead-1", entity.StatusLost).Return(updated, entity.StatusQualified, nil)
	pub := new(MockPublisher)
	pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewUpdateLeadUseCase(repo, pub, nil, logger.Nop())
	_, err := uc.SetStatus(context.Background(), "lead-1", usecase.SetStatusInput{Status: "Lost"})
	require.NoError(t, err)

	pub.AssertCalled(t, "PublishLeadEvent", mock.Anything, mock.MatchedBy(func(e entity.LeadEvent) bool {
		return e.PreviousStatus == entity.StatusQualified
	}))
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSetStatusStoreFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("UpdateStatus", mock.Anything, "lead-1", entity.StatusNew).Return(nil, entity.LeadStatus(""), errors.New("connection reset"))

	uc := usecase.NewUpdateLeadUseCase(repo, new(MockPublisher), nil, logger.Nop())
	_, err := uc.SetStatus(context.Background(), "lead-1", usecase.SetStatusInput{Status: "New"})
	assert.True(t, usecase.IsTechnicalError(err))
}
