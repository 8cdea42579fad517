package mail

import (
	"github.com/xavierca1/leadpulse/internal/analytics"
	"github.com/xavierca1/leadpulse/internal/entity"
)

type NewLeadEmailData struct {
	Lead     entity.Lead
	Received string
}

type StatusChangeEmailData struct {
	Lead      entity.Lead
	Previous  entity.LeadStatus
	Converted bool
	Value     string
}

type DailySummaryEmailData struct {
	Day          string
	Summary      analytics.Summary
	TotalValue   string
	AverageValue string
}
