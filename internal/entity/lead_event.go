package entity

import "time"

type LeadEventType string

const (
	EventLeadCreated       LeadEventType = "lead.created"
	EventLeadStatusChanged LeadEventType = "lead.status_changed"
	EventLeadAssigned      LeadEventType = "lead.assigned"
	EventLeadNoteAdded     LeadEventType = "lead.note_added"
)

// LeadEvent describes one store mutation. Lead is a snapshot taken after
// the mutation was applied.
type LeadEvent struct {
	Type           LeadEventType `json:"type"`
	LeadID         string        `json:"lead_id"`
	Lead           Lead          `json:"lead"`
	PreviousStatus LeadStatus    `json:"previous_status,omitempty"`
	OccurredAt     time.Time     `json:"occurred_at"`
}
