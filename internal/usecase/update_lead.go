package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/logger"
)

// UpdateLeadUseCase covers the in-place mutations: status, owner and notes.
// Status transitions are unconstrained; any status may follow any other.
type UpdateLeadUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Publisher LeadEventPublisher
	Metrics   LeadMetrics
	Logger    logger.Logger
}

func NewUpdateLeadUseCase(
	repo entity.LeadRepositoryInterface,
	publisher LeadEventPublisher,
	metrics LeadMetrics,
	log logger.Logger,
) *UpdateLeadUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UpdateLeadUseCase{
		Repo:      repo,
		Publisher: publisher,
		Metrics:   metrics,
		Logger:    log,
	}
}

func (uc *UpdateLeadUseCase) SetStatus(ctx context.Context, id string, input SetStatusInput) (*entity.Lead, error) {
	status, err := entity.ParseStatus(input.Status)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: "status must be one of New, Contacted, Qualified, Converted, Lost"}
	}

	lead, previous, err := uc.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, storeError("failed to update lead status", err)
	}
	if lead == nil {
		return nil, notFound(id)
	}

	uc.Metrics.LeadStatusChanged(status)
	uc.Logger.Info("lead status updated", "lead_id", id, "from", previous, "to", status)

	publishEvent(ctx, uc.Publisher, uc.Metrics, uc.Logger, entity.LeadEvent{
		Type:           entity.EventLeadStatusChanged,
		LeadID:         id,
		Lead:           *lead,
		PreviousStatus: previous,
		OccurredAt:     lead.UpdatedAt,
	})
	return lead, nil
}

func (uc *UpdateLeadUseCase) Assign(ctx context.Context, id string, input AssignInput) (*entity.Lead, error) {
	input.AssignedTo = strings.TrimSpace(input.AssignedTo)
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	if !entity.IsRosterMember(input.AssignedTo) {
		return nil, &DomainError{Code: CodeValidation, Message: "assigned_to must be a team member or " + entity.Unassigned}
	}

	lead, err := uc.Repo.Assign(ctx, id, input.AssignedTo)
	if err != nil {
		return nil, storeError("failed to assign lead", err)
	}
	if lead == nil {
		return nil, notFound(id)
	}

	uc.Logger.Info("lead assigned", "lead_id", id, "assigned_to", input.AssignedTo)
	publishEvent(ctx, uc.Publisher, uc.Metrics, uc.Logger, entity.LeadEvent{
		Type:       entity.EventLeadAssigned,
		LeadID:     id,
		Lead:       *lead,
		OccurredAt: lead.UpdatedAt,
	})
	return lead, nil
}

func (uc *UpdateLeadUseCase) AddNote(ctx context.Context, id string, input AddNoteInput) (*entity.Lead, error) {
	input.Note = strings.TrimSpace(input.Note)
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	lead, err := uc.Repo.AppendNote(ctx, id, input.Note)
	if err != nil {
		return nil, storeError("failed to add note", err)
	}
	if lead == nil {
		return nil, notFound(id)
	}

	uc.Logger.Debug("note added", "lead_id", id)
	publishEvent(ctx, uc.Publisher, uc.Metrics, uc.Logger, entity.LeadEvent{
		Type:       entity.EventLeadNoteAdded,
		LeadID:     id,
		Lead:       *lead,
		OccurredAt: lead.UpdatedAt,
	})
	return lead, nil
}
