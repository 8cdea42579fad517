package worker

import (
	"context"
	"time"

	"github.com/xavierca1/leadpulse/internal/demo"
	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/infra/http/middleware"
	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

type LeadCreator interface {
	Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error)
}

// LeadSynthesizer simulates inbound traffic for demos: on every tick it
// creates one random lead with the configured probability.
type LeadSynthesizer struct {
	creator      LeadCreator
	generator    *demo.Generator
	tickInterval time.Duration
	probability  float64
	log          logger.Logger
}

func NewLeadSynthesizer(creator LeadCreator, generator *demo.Generator, interval time.Duration, probability float64, log logger.Logger) *LeadSynthesizer {
	return &LeadSynthesizer{
		creator:      creator,
		generator:    generator,
		tickInterval: interval,
		probability:  probability,
		log:          log,
	}
}

func (w *LeadSynthesizer) Start(ctx context.Context) {
	w.log.Info("lead synthesizer started", "interval", w.tickInterval.String(), "probability", w.probability)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("lead synthesizer stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one draw. It reports whether a lead was created.
func (w *LeadSynthesizer) Tick(ctx context.Context) bool {
	if !w.generator.Roll(w.probability) {
		return false
	}

	f := w.generator.Inbound()
	lead, err := w.creator.Execute(ctx, usecase.CreateLeadInput{
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		Company:  f.Company,
		Service:  f.Service,
		Source:   f.Source,
		Campaign: f.Campaign,
		Notes:    f.Notes,
		Value:    f.Value,
	})
	if err != nil {
		w.log.Warn("failed to synthesize lead", "error", err)
		return false
	}

	middleware.RecordLeadSynthesized()
	w.log.Info("new lead received", "lead_id", lead.ID, "name", lead.Name, "source", lead.Source)
	return true
}
