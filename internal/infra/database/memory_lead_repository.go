package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xavierca1/leadpulse/internal/entity"
)

// MemoryLeadRepository keeps leads newest first in process memory.
type MemoryLeadRepository struct {
	mu    sync.RWMutex
	leads []*entity.Lead
	index map[string]*entity.Lead
	now   func() time.Time
}

func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{
		index: make(map[string]*entity.Lead),
		now:   time.Now,
	}
}

// WithClock replaces the clock used to stamp UpdatedAt.
func (r *MemoryLeadRepository) WithClock(now func() time.Time) *MemoryLeadRepository {
	r.now = now
	return r
}

func (r *MemoryLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[lead.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateLead, lead.ID)
	}

	stored := *lead
	r.leads = append([]*entity.Lead{&stored}, r.leads...)
	r.index[stored.ID] = &stored
	return nil
}

func (r *MemoryLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	out := *lead
	return &out, nil
}

func (r *MemoryLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Lead, len(r.leads))
	for i, l := range r.leads {
		out[i] = *l
	}
	return out, nil
}

func (r *MemoryLeadRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads), nil
}

func (r *MemoryLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, entity.LeadStatus, error) {
	var previous entity.LeadStatus
	lead, err := r.mutate(id, func(l *entity.Lead, now time.Time) {
		previous = l.Status
		l.SetStatus(status, now)
	})
	if lead == nil {
		return nil, "", err
	}
	return lead, previous, err
}

func (r *MemoryLeadRepository) Assign(ctx context.Context, id, assignee string) (*entity.Lead, error) {
	return r.mutate(id, func(l *entity.Lead, now time.Time) {
		l.Assign(assignee, now)
	})
}

func (r *MemoryLeadRepository) AppendNote(ctx context.Context, id, text string) (*entity.Lead, error) {
	return r.mutate(id, func(l *entity.Lead, now time.Time) {
		l.AppendNote(text, now)
	})
}

func (r *MemoryLeadRepository) mutate(id string, fn func(*entity.Lead, time.Time)) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	fn(lead, r.now())

	out := *lead
	return &out, nil
}
