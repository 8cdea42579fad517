package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	StatusNew       LeadStatus = "New"
	StatusContacted LeadStatus = "Contacted"
	StatusQualified LeadStatus = "Qualified"
	StatusConverted LeadStatus = "Converted"
	StatusLost      LeadStatus = "Lost"
)

// Unassigned is the assignee of every lead nobody has picked up yet.
const Unassigned = "Unassigned"

const (
	DefaultCompany  = "N/A"
	DefaultService  = "General"
	DefaultSource   = "Manual"
	DefaultCampaign = "Direct"
)

var (
	ErrInvalidStatus = errors.New("invalid lead status")
	ErrNameRequired  = errors.New("name is required")
	ErrNegativeValue = errors.New("value must not be negative")
)

// Statuses lists every status in pipeline order.
func Statuses() []LeadStatus {
	return []LeadStatus{StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost}
}

func (s LeadStatus) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost:
		return true
	}
	return false
}

// ParseStatus accepts the canonical spelling case-insensitively.
func ParseStatus(raw string) (LeadStatus, error) {
	for _, s := range Statuses() {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

type Lead struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Company    string     `json:"company"`
	Service    string     `json:"service"`
	Source     string     `json:"source"`
	Campaign   string     `json:"campaign"`
	Status     LeadStatus `json:"status"`
	AssignedTo string     `json:"assigned_to"`
	Notes      string     `json:"notes"`
	Value      float64    `json:"value"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LeadFields carries the caller-supplied part of a new lead.
type LeadFields struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Service  string
	Source   string
	Campaign string
	Notes    string
	Value    float64
}

// Factory
func NewLead(f LeadFields, now time.Time) (*Lead, error) {
	lead := &Lead{
		ID:         NewLeadID(),
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Phone:      strings.TrimSpace(f.Phone),
		Company:    orDefault(f.Company, DefaultCompany),
		Service:    orDefault(f.Service, DefaultService),
		Source:     orDefault(f.Source, DefaultSource),
		Campaign:   orDefault(f.Campaign, DefaultCampaign),
		Status:     StatusNew,
		AssignedTo: Unassigned,
		Notes:      f.Notes,
		Value:      f.Value,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func NewLeadID() string {
	return "lead-" + uuid.New().String()
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrNameRequired
	}
	if l.Value < 0 {
		return ErrNegativeValue
	}
	if !l.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (l *Lead) IsConverted() bool {
	return l.Status == StatusConverted
}

// SetStatus, Assign and AppendNote never move UpdatedAt backwards, so
// CreatedAt <= UpdatedAt holds even if the clock steps back.
func (l *Lead) SetStatus(status LeadStatus, now time.Time) {
	l.Status = status
	l.touch(now)
}

func (l *Lead) Assign(assignee string, now time.Time) {
	l.AssignedTo = assignee
	l.touch(now)
}

func (l *Lead) AppendNote(text string, now time.Time) {
	l.Notes = l.Notes + "\n" + text
	l.touch(now)
}

func (l *Lead) touch(now time.Time) {
	if now.Before(l.CreatedAt) {
		now = l.CreatedAt
	}
	l.UpdatedAt = now
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

// LeadRepositoryInterface is the lead store. Mutators on an unknown id are
// no-ops and return a nil lead with a nil error. UpdateStatus also returns
// the status the lead had right before the change.
type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context) ([]Lead, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id string, status LeadStatus) (*Lead, LeadStatus, error)
	Assign(ctx context.Context, id, assignee string) (*Lead, error)
	AppendNote(ctx context.Context, id, text string) (*Lead, error)
}
