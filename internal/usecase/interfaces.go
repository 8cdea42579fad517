package usecase

import (
	"context"

	"github.com/xavierca1/leadpulse/internal/entity"
)

// LeadEventPublisher fans lead mutations out to notification consumers.
type LeadEventPublisher interface {
	PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error
}

// LeadMetrics records business counters.
type LeadMetrics interface {
	LeadCreated(source string)
	LeadStatusChanged(status entity.LeadStatus)
	PublishFailed()
}

type nopMetrics struct{}

func (nopMetrics) LeadCreated(string)                  {}
func (nopMetrics) LeadStatusChanged(entity.LeadStatus) {}
func (nopMetrics) PublishFailed()                      {}
