package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadpulse/internal/analytics"
	"github.com/xavierca1/leadpulse/internal/demo"
	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

type MockCreator struct {
	mock.Mock
}

func (m *MockCreator) Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockSummary struct {
	mock.Mock
}

func (m *MockSummary) SummaryBetween(ctx context.Context, start, end time.Time) (analytics.Summary, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(analytics.Summary), args.Error(1)
}

func (m *MockSummary) SendDailySummary(day string, summary analytics.Summary) error {
	return m.Called(day, summary).Error(0)
}

func TestTickAlwaysCreatesWithProbabilityOne(t *testing.T) {
	creator := new(MockCreator)
	creator.On("Execute", mock.Anything, mock.MatchedBy(func(in usecase.CreateLeadInput) bool {
		return in.Name != "" && in.Source != ""
	})).Return(&entity.Lead{ID: "lead-1", Name: "x"}, nil)

	s := NewLeadSynthesizer(creator, demo.NewGenerator(5, nil), time.Second, 1, logger.Nop())
	for i := 0; i < 3; i++ {
		assert.True(t, s.Tick(context.Background()))
	}
	creator.AssertNumberOfCalls(t, "Execute", 3)
}

func TestTickNeverCreatesWithProbabilityZero(t *testing.T) {
	creator := new(MockCreator)
	s := NewLeadSynthesizer(creator, demo.NewGenerator(5, nil), time.Second, 0, logger.Nop())

	assert.False(t, s.Tick(context.Background()))
	creator.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestTickSwallowsCreateError(t *testing.T) {
	creator := new(MockCreator)
	creator.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("store down"))

	s := NewLeadSynthesizer(creator, demo.NewGenerator(5, nil), time.Second, 1, logger.Nop())
	assert.False(t, s.Tick(context.Background()))
}

func TestStartStopsOnCancel(t *testing.T) {
	s := NewLeadSynthesizer(new(MockCreator), demo.NewGenerator(5, nil), time.Hour, 0, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("synthesizer did not stop")
	}
}

// TestDailySummaryCoversPreviousLocalDay - the window is yesterday midnight to
// midnight in the configured zone
func TestDailySummaryCoversPreviousLocalDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	summary := analytics.Summary{TotalLeads: 3, Converted: 1, ConversionRate: "33.3"}
	start := time.Date(2025, 8, 9, 0, 0, 0, 0, loc)
	end := time.Date(2025, 8, 10, 0, 0, 0, 0, loc)

	m := new(MockSummary)
	m.On("SummaryBetween", mock.Anything, start, end).Return(summary, nil)
	m.On("SendDailySummary", "2025-08-09", summary).Return(nil)

	j := NewDailySummaryJob("0 9 * * *", m, m, loc, logger.Nop())
	j.now = func() time.Time { return time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, j.Run(context.Background()))
	m.AssertExpectations(t)
}

func TestDailySummaryErrors(t *testing.T) {
	m := new(MockSummary)
	m.On("SummaryBetween", mock.Anything, mock.Anything, mock.Anything).Return(analytics.Summary{}, errors.New("db gone"))

	j := NewDailySummaryJob("0 9 * * *", m, m, nil, logger.Nop())
	assert.Error(t, j.Run(context.Background()))
	m.AssertNotCalled(t, "SendDailySummary", mock.Anything, mock.Anything)

	m2 := new(MockSummary)
	m2.On("SummaryBetween", mock.Anything, mock.Anything, mock.Anything).Return(analytics.Summary{}, nil)
	m2.On("SendDailySummary", mock.Anything, mock.Anything).Return(errors.New("smtp"))
	j = NewDailySummaryJob("0 9 * * *", m2, m2, nil, logger.Nop())
	assert.Error(t, j.Run(context.Background()))
}

func TestStartRejectsBadSchedule(t *testing.T) {
	j := NewDailySummaryJob("every tuesday", new(MockSummary), new(MockSummary), nil, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, j.Start(ctx))
}
