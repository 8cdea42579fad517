package database

import (
	"context"
	"sync"

	"github.com/xavierca1/leadpulse/internal/entity"
)

type MemoryIntegrationRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]entity.Integration
}

func NewMemoryIntegrationRepository(seed ...entity.Integration) *MemoryIntegrationRepository {
	r := &MemoryIntegrationRepository{items: make(map[string]entity.Integration)}
	for _, i := range seed {
		r.order = append(r.order, i.ID)
		r.items[i.ID] = cloneIntegration(i)
	}
	return r
}

func (r *MemoryIntegrationRepository) List(ctx context.Context) ([]entity.Integration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Integration, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneIntegration(r.items[id]))
	}
	return out, nil
}

func (r *MemoryIntegrationRepository) FindByID(ctx context.Context, id string) (*entity.Integration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.items[id]
	if !ok {
		return nil, entity.ErrIntegrationNotFound
	}
	out := cloneIntegration(i)
	return &out, nil
}

func (r *MemoryIntegrationRepository) Save(ctx context.Context, integration *entity.Integration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[integration.ID]; !ok {
		r.order = append(r.order, integration.ID)
	}
	r.items[integration.ID] = cloneIntegration(*integration)
	return nil
}

func cloneIntegration(i entity.Integration) entity.Integration {
	cfg := make(map[string]string, len(i.Config))
	for k, v := range i.Config {
		cfg[k] = v
	}
	i.Config = cfg
	i.Fields = append([]entity.IntegrationField(nil), i.Fields...)
	return i
}
