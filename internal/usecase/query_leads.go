package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/leadpulse/internal/analytics"
	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/leadquery"
)

// DefaultReportWindow is the analytics range when the caller gives none.
const DefaultReportWindow = 30 * 24 * time.Hour

// QueryLeadsUseCase serves every read view: the table, single leads,
// the dashboard and the analytics report.
type QueryLeadsUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Location *time.Location
	Now      func() time.Time
}

func NewQueryLeadsUseCase(repo entity.LeadRepositoryInterface, loc *time.Location) *QueryLeadsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &QueryLeadsUseCase{Repo: repo, Location: loc, Now: time.Now}
}

func (uc *QueryLeadsUseCase) snapshot(ctx context.Context) ([]entity.Lead, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, storeError("failed to list leads", err)
	}
	return leads, nil
}

func (uc *QueryLeadsUseCase) List(ctx context.Context, q leadquery.Query) (leadquery.Page, error) {
	leads, err := uc.snapshot(ctx)
	if err != nil {
		return leadquery.Page{}, err
	}
	return leadquery.Run(leads, q), nil
}

// Matching returns the whole filtered, sorted result without paging.
func (uc *QueryLeadsUseCase) Matching(ctx context.Context, q leadquery.Query) ([]entity.Lead, error) {
	leads, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return leadquery.Matching(leads, q), nil
}

func (uc *QueryLeadsUseCase) Get(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("failed to load lead", err)
	}
	if lead == nil {
		return nil, notFound(id)
	}
	return lead, nil
}

func (uc *QueryLeadsUseCase) Sources(ctx context.Context) ([]string, error) {
	leads, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return leadquery.Sources(leads), nil
}

func (uc *QueryLeadsUseCase) Dashboard(ctx context.Context) (analytics.Dashboard, error) {
	leads, err := uc.snapshot(ctx)
	if err != nil {
		return analytics.Dashboard{}, err
	}
	return analytics.BuildDashboard(leads, uc.Now(), uc.Location), nil
}

// Report builds the analytics view for [start, end]. Zero bounds default to
// the last DefaultReportWindow ending now.
func (uc *QueryLeadsUseCase) Report(ctx context.Context, start, end time.Time) (analytics.Report, error) {
	if end.IsZero() {
		end = uc.Now()
	}
	if start.IsZero() {
		start = end.Add(-DefaultReportWindow)
	}
	if start.After(end) {
		return analytics.Report{}, &DomainError{Code: CodeValidation, Message: "start must not be after end"}
	}

	leads, err := uc.snapshot(ctx)
	if err != nil {
		return analytics.Report{}, err
	}
	return analytics.BuildReport(leads, start, end, uc.Location), nil
}

// SummaryBetween summarizes leads created in [start, end); the daily
// e-mail uses it.
func (uc *QueryLeadsUseCase) SummaryBetween(ctx context.Context, start, end time.Time) (analytics.Summary, error) {
	leads, err := uc.snapshot(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	inRange := analytics.FilterByDateRange(leads, start, end.Add(-time.Nanosecond))
	return analytics.Summarize(inRange), nil
}
