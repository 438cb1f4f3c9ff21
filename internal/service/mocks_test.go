package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockResponseRepository mocks the ResponseRepository interface
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) SaveResponse(ctx context.Context, response *domain.CompatibilityResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetResponse(ctx context.Context, userID string) (*domain.CompatibilityResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompatibilityResponse), args.Error(1)
}

// MockReportRepository mocks the ReportRepository interface
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveReport(ctx context.Context, report *domain.CompatibilityReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetReport(ctx context.Context, id uuid.UUID) (*domain.CompatibilityReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompatibilityReport), args.Error(1)
}

func (m *MockReportRepository) ListReportsForUser(ctx context.Context, userID string) ([]*domain.CompatibilityReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CompatibilityReport), args.Error(1)
}

func (m *MockReportRepository) ShareReport(ctx context.Context, id uuid.UUID, targetUserID string) error {
	args := m.Called(ctx, id, targetUserID)
	return args.Error(0)
}

func (m *MockReportRepository) AttachFeedback(ctx context.Context, id uuid.UUID, feedback string) error {
	args := m.Called(ctx, id, feedback)
	return args.Error(0)
}

// MockScoringService mocks the scoring.Service interface
type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) OverallScore(
	resp1, resp2 *domain.CompatibilityResponse,
	now time.Time,
) (*domain.CompatibilityScore, error) {
	args := m.Called(resp1, resp2, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompatibilityScore), args.Error(1)
}

func (m *MockScoringService) Categories() []domain.Category {
	args := m.Called()
	return args.Get(0).([]domain.Category)
}

type trackedEvent struct {
	Name   string
	Params map[string]string
}

// recordingTracker keeps every tracked event in memory.
type recordingTracker struct {
	mu     sync.Mutex
	events []trackedEvent
}

func (r *recordingTracker) Track(_ context.Context, name string, params map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, trackedEvent{Name: name, Params: params})
}

func (r *recordingTracker) Events() []trackedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]trackedEvent(nil), r.events...)
}

// memoryResponseRepository is a map-backed ResponseRepository.
type memoryResponseRepository struct {
	mu        sync.Mutex
	responses map[string]*domain.CompatibilityResponse
}

func newMemoryResponseRepository() *memoryResponseRepository {
	return &memoryResponseRepository{responses: make(map[string]*domain.CompatibilityResponse)}
}

func (r *memoryResponseRepository) SaveResponse(_ context.Context, response *domain.CompatibilityResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *response
	clone.Responses = response.Responses.Clone()
	r.responses[response.UserID] = &clone
	return nil
}

func (r *memoryResponseRepository) GetResponse(_ context.Context, userID string) (*domain.CompatibilityResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[userID]
	if !ok {
		return nil, storeNotFound
	}
	clone := *resp
	clone.Responses = resp.Responses.Clone()
	return &clone, nil
}
