package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/xavierca1/leadpulse/internal/analytics"
	"github.com/xavierca1/leadpulse/internal/infra/http/middleware"
	"github.com/xavierca1/leadpulse/internal/logger"
)

type SummaryProvider interface {
	SummaryBetween(ctx context.Context, start, end time.Time) (analytics.Summary, error)
}

type SummaryNotifier interface {
	SendDailySummary(day string, summary analytics.Summary) error
}

// DailySummaryJob e-mails yesterday's numbers on a cron schedule.
type DailySummaryJob struct {
	cron     *cron.Cron
	spec     string
	provider SummaryProvider
	notifier SummaryNotifier
	loc      *time.Location
	now      func() time.Time
	log      logger.Logger
}

func NewDailySummaryJob(spec string, provider SummaryProvider, notifier SummaryNotifier, loc *time.Location, log logger.Logger) *DailySummaryJob {
	if loc == nil {
		loc = time.UTC
	}
	return &DailySummaryJob{
		cron:     cron.New(cron.WithLocation(loc)),
		spec:     spec,
		provider: provider,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		log:      log,
	}
}

// Start registers the job and runs the scheduler until ctx is done.
func (j *DailySummaryJob) Start(ctx context.Context) error {
	_, err := j.cron.AddFunc(j.spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if err := j.Run(runCtx); err != nil {
			j.log.Error("daily summary failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule daily summary %q: %w", j.spec, err)
	}

	j.cron.Start()
	j.log.Info("daily summary scheduled", "spec", j.spec, "location", j.loc.String())

	go func() {
		<-ctx.Done()
		<-j.cron.Stop().Done()
		j.log.Info("daily summary scheduler stopped")
	}()
	return nil
}

// Run summarizes the previous calendar day and sends it.
func (j *DailySummaryJob) Run(ctx context.Context) error {
	start, end := previousDay(j.now(), j.loc)

	summary, err := j.provider.SummaryBetween(ctx, start, end)
	if err != nil {
		return fmt.Errorf("build summary: %w", err)
	}

	day := start.Format(time.DateOnly)
	if err := j.notifier.SendDailySummary(day, summary); err != nil {
		middleware.RecordNotificationError("daily_summary")
		return fmt.Errorf("send summary: %w", err)
	}

	j.log.Info("daily summary sent", "day", day, "leads", summary.TotalLeads, "converted", summary.Converted)
	return nil
}

// previousDay returns [yesterday 00:00, today 00:00) in loc.
func previousDay(now time.Time, loc *time.Location) (time.Time, time.Time) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return today.AddDate(0, 0, -1), today
}
