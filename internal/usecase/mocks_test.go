package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadpulse/internal/entity"
)

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockMetrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) LeadCreated(source string) {
	m.Called(source)
}

func (m *MockMetrics) LeadStatusChanged(status entity.LeadStatus) {
	m.Called(status)
}

func (m *MockMetrics) PublishFailed() {
	m.Called()
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, entity.LeadStatus, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.Lead), args.Get(1).(entity.LeadStatus), args.Error(2)
}

func (m *MockLeadRepository) Assign(ctx context.Context, id, assignee string) (*entity.Lead, error) {
	args := m.Called(ctx, id, assignee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) AppendNote(ctx context.Context, id, text string) (*entity.Lead, error) {
	args := m.Called(ctx, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}
