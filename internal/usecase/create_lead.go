package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/logger"
)

type CreateLeadUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Publisher LeadEventPublisher
	Metrics   LeadMetrics
	Logger    logger.Logger
	Now       func() time.Time
}

func NewCreateLeadUseCase(
	repo entity.LeadRepositoryInterface,
	publisher LeadEventPublisher,
	metrics LeadMetrics,
	log logger.Logger,
) *CreateLeadUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &CreateLeadUseCase{
		Repo:      repo,
		Publisher: publisher,
		Metrics:   metrics,
		Logger:    log,
		Now:       time.Now,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(&input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	lead, err := entity.NewLead(entity.LeadFields{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Company:  input.Company,
		Service:  input.Service,
		Source:   input.Source,
		Campaign: input.Campaign,
		Notes:    input.Notes,
		Value:    input.Value,
	}, uc.Now())
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, storeError("failed to create lead", err)
	}

	uc.Metrics.LeadCreated(lead.Source)
	uc.Logger.Info("lead created", "lead_id", lead.ID, "source", lead.Source)

	publishEvent(ctx, uc.Publisher, uc.Metrics, uc.Logger, entity.LeadEvent{
		Type:       entity.EventLeadCreated,
		LeadID:     lead.ID,
		Lead:       *lead,
		OccurredAt: lead.CreatedAt,
	})

	return lead, nil
}

// publishEvent is best effort: the store already holds the change, so a
// broker failure is logged and counted rather than returned.
func publishEvent(ctx context.Context, pub LeadEventPublisher, metrics LeadMetrics, log logger.Logger, event entity.LeadEvent) {
	if pub == nil {
		return
	}
	if err := pub.PublishLeadEvent(ctx, event); err != nil {
		metrics.PublishFailed()
		log.Warn("failed to publish lead event", "type", event.Type, "lead_id", event.LeadID, "error", err)
	}
}
