package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/karthiknish/aroosi-swift-sub004/internal/progress"
	"github.com/karthiknish/aroosi-swift-sub004/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockReportService is a testify mock of service.ReportService.
type MockReportService struct {
	mock.Mock
}

var _ service.ReportService = (*MockReportService)(nil)

func (m *MockReportService) SubmitQuestionnaire(
	ctx context.Context,
	userID string,
	responses domain.Responses,
) (*domain.CompatibilityResponse, error) {
	args := m.Called(ctx, userID, responses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompatibilityResponse), args.Error(1)
}

func (m *MockReportService) SubmitProgress(
	ctx context.Context,
	userID string,
	tracker *progress.Tracker,
) (*domain.CompatibilityResponse, error) {
	args := m.Called(ctx, userID, tracker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompatibilityResponse), args.Error(1)
}

func (m *MockReportService) GetResponse(ctx context.Context, userID string) (*domain.CompatibilityResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompatibilityResponse), args.Error(1)
}

func (m *MockReportService) GenerateReport(ctx context.Context, userID1, userID2 string) (*domain.CompatibilityReport, error) {
	args := m.Called(ctx, userID1, userID2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompatibilityReport), args.Error(1)
}

func (m *MockReportService) GetReport(ctx context.Context, reportID uuid.UUID) (*domain.CompatibilityReport, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompatibilityReport), args.Error(1)
}

func (m *MockReportService) FetchReports(ctx context.Context, userID string) ([]*domain.CompatibilityReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CompatibilityReport), args.Error(1)
}

func (m *MockReportService) ShareReport(ctx context.Context, reportID uuid.UUID, targetUserID string) error {
	args := m.Called(ctx, reportID, targetUserID)
	return args.Error(0)
}

func (m *MockReportService) AttachFeedback(ctx context.Context, reportID uuid.UUID, feedback string) error {
	args := m.Called(ctx, reportID, feedback)
	return args.Error(0)
}
