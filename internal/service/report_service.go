package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain/scoring"
	"github.com/karthiknish/aroosi-swift-sub004/internal/events"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/logger"
	"github.com/karthiknish/aroosi-swift-sub004/internal/progress"
	"github.com/karthiknish/aroosi-swift-sub004/internal/store"
	"golang.org/x/sync/errgroup"
)

// ResponseRepository defines the response persistence the service needs.
type ResponseRepository interface {
	// SaveResponse stores the user's completed response, replacing any
	// earlier one.
	SaveResponse(ctx context.Context, response *domain.CompatibilityResponse) error

	// GetResponse returns store.ErrResponseNotFound when the user has none.
	GetResponse(ctx context.Context, userID string) (*domain.CompatibilityResponse, error)
}

// ReportRepository defines the report persistence the service needs.
type ReportRepository interface {
	SaveReport(ctx context.Context, report *domain.CompatibilityReport) error
	GetReport(ctx context.Context, id uuid.UUID) (*domain.CompatibilityReport, error)
	ListReportsForUser(ctx context.Context, userID string) ([]*domain.CompatibilityReport, error)
	ShareReport(ctx context.Context, id uuid.UUID, targetUserID string) error
	AttachFeedback(ctx context.Context, id uuid.UUID, feedback string) error
}

// ReportService provides questionnaire submission and compatibility reports.
type ReportService interface {
	// SubmitQuestionnaire persists the user's answers as their completed
	// response, stamped with the current time.
	SubmitQuestionnaire(ctx context.Context, userID string, responses domain.Responses) (*domain.CompatibilityResponse, error)

	// SubmitProgress submits a snapshot of the tracker's answers.
	SubmitProgress(ctx context.Context, userID string, tracker *progress.Tracker) (*domain.CompatibilityResponse, error)

	// GetResponse returns the user's completed response.
	GetResponse(ctx context.Context, userID string) (*domain.CompatibilityResponse, error)

	// GenerateReport scores two users' completed responses and persists a
	// new report. Every call creates a new report.
	GenerateReport(ctx context.Context, userID1, userID2 string) (*domain.CompatibilityReport, error)

	// GetReport returns a single report.
	GetReport(ctx context.Context, reportID uuid.UUID) (*domain.CompatibilityReport, error)

	// FetchReports lists the reports the user is part of, newest first.
	FetchReports(ctx context.Context, userID string) ([]*domain.CompatibilityReport, error)

	// ShareReport marks the report shared with targetUserID. Authorization
	// is the caller's responsibility.
	ShareReport(ctx context.Context, reportID uuid.UUID, targetUserID string) error

	// AttachFeedback stores family feedback on the report.
	AttachFeedback(ctx context.Context, reportID uuid.UUID, feedback string) error
}

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	responses ResponseRepository
	reports   ReportRepository
	scorer    scoring.Service
	tracker   events.Tracker
	clock     Clock
	logger    *slog.Logger
}

// NewReportService creates a new ReportService.
// Repositories and scorer are required. A nil tracker discards events, a nil
// clock uses SystemClock and a nil logger uses slog.Default().
func NewReportService(
	responses ResponseRepository,
	reports ReportRepository,
	scorer scoring.Service,
	tracker events.Tracker,
	clock Clock,
	logger *slog.Logger,
) (ReportService, error) {
	if responses == nil {
		return nil, fmt.Errorf("%w: responses repository cannot be nil", domain.ErrValidation)
	}
	if reports == nil {
		return nil, fmt.Errorf("%w: reports repository cannot be nil", domain.ErrValidation)
	}
	if scorer == nil {
		return nil, fmt.Errorf("%w: scoring service cannot be nil", domain.ErrValidation)
	}
	if tracker == nil {
		tracker = events.NoopTracker{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reportServiceImpl{
		responses: responses,
		reports:   reports,
		scorer:    scorer,
		tracker:   tracker,
		clock:     clock,
		logger:    logger.With(slog.String("component", "report_service")),
	}, nil
}

// SubmitQuestionnaire implements ReportService.SubmitQuestionnaire.
func (s *reportServiceImpl) SubmitQuestionnaire(
	ctx context.Context,
	userID string,
	responses domain.Responses,
) (*domain.CompatibilityResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(userID) == "" {
		return nil, invalidInput("user ID cannot be empty")
	}

	response, err := domain.NewCompatibilityResponse(userID, responses, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.responses.SaveResponse(ctx, response); err != nil {
		log.Error("failed to save response",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, NewReportServiceError("submit_questionnaire", "failed to save response", err)
	}

	log.Info("questionnaire submitted",
		slog.String("user_id", userID),
		slog.Int("answers", len(response.Responses)))

	s.tracker.Track(ctx, events.EventQuestionnaireSubmitted, map[string]string{
		"user_id": userID,
		"answers": strconv.Itoa(len(response.Responses)),
	})

	return response, nil
}

// SubmitProgress implements ReportService.SubmitProgress.
func (s *reportServiceImpl) SubmitProgress(
	ctx context.Context,
	userID string,
	tracker *progress.Tracker,
) (*domain.CompatibilityResponse, error) {
	if tracker == nil {
		return nil, invalidInput("progress tracker cannot be nil")
	}
	return s.SubmitQuestionnaire(ctx, userID, tracker.Snapshot())
}

// GetResponse implements ReportService.GetResponse.
func (s *reportServiceImpl) GetResponse(ctx context.Context, userID string) (*domain.CompatibilityResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidInput("user ID cannot be empty")
	}
	return s.fetchResponse(ctx, userID)
}

// GenerateReport implements ReportService.GenerateReport.
// Both responses are fetched concurrently. If either is missing no report
// is saved.
func (s *reportServiceImpl) GenerateReport(
	ctx context.Context,
	userID1, userID2 string,
) (*domain.CompatibilityReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(userID1) == "" || strings.TrimSpace(userID2) == "" {
		return nil, invalidInput("both user IDs are required")
	}
	if userID1 == userID2 {
		return nil, invalidInput("a report needs two distinct users")
	}

	var resp1, resp2 *domain.CompatibilityResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resp1, err = s.fetchResponse(gctx, userID1)
		return err
	})
	g.Go(func() error {
		var err error
		resp2, err = s.fetchResponse(gctx, userID2)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warn("cannot generate report",
			slog.String("error", err.Error()),
			slog.String("user_id_1", userID1),
			slog.String("user_id_2", userID2))
		return nil, err
	}

	now := s.clock.Now()
	score, err := s.scorer.OverallScore(resp1, resp2, now)
	if err != nil {
		return nil, NewReportServiceError("generate_report", "failed to score responses", err)
	}

	report, err := domain.NewCompatibilityReport(score, now)
	if err != nil {
		return nil, NewReportServiceError("generate_report", "failed to build report", err)
	}

	if err := s.reports.SaveReport(ctx, report); err != nil {
		log.Error("failed to save report",
			slog.String("error", err.Error()),
			slog.String("report_id", report.ID.String()))
		return nil, &SaveFailedError{Report: report, Err: err}
	}

	log.Info("report generated",
		slog.String("report_id", report.ID.String()),
		slog.Float64("overall_score", score.OverallScore),
		slog.String("level", string(score.Level)))

	s.tracker.Track(ctx, events.EventReportGenerated, map[string]string{
		"report_id":     report.ID.String(),
		"user_id_1":     userID1,
		"user_id_2":     userID2,
		"overall_score": strconv.FormatFloat(score.OverallScore, 'f', 2, 64),
		"level":         string(score.Level),
	})

	return report, nil
}

// GetReport implements ReportService.GetReport.
func (s *reportServiceImpl) GetReport(ctx context.Context, reportID uuid.UUID) (*domain.CompatibilityReport, error) {
	if reportID == uuid.Nil {
		return nil, invalidInput("report ID cannot be empty")
	}

	report, err := s.reports.GetReport(ctx, reportID)
	if err != nil {
		return nil, s.mapReportError("get_report", reportID, err)
	}
	if report == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}
	return report, nil
}

// FetchReports implements ReportService.FetchReports.
func (s *reportServiceImpl) FetchReports(ctx context.Context, userID string) ([]*domain.CompatibilityReport, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidInput("user ID cannot be empty")
	}

	reports, err := s.reports.ListReportsForUser(ctx, userID)
	if err != nil {
		return nil, NewReportServiceError("fetch_reports", "failed to list reports", err)
	}
	return reports, nil
}

// ShareReport implements ReportService.ShareReport.
func (s *reportServiceImpl) ShareReport(ctx context.Context, reportID uuid.UUID, targetUserID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if reportID == uuid.Nil {
		return invalidInput("report ID cannot be empty")
	}
	if strings.TrimSpace(targetUserID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrShareTargetEmpty)
	}

	if err := s.reports.ShareReport(ctx, reportID, targetUserID); err != nil {
		return s.mapReportError("share_report", reportID, err)
	}

	log.Info("report shared",
		slog.String("report_id", reportID.String()),
		slog.String("target_user_id", targetUserID))

	s.tracker.Track(ctx, events.EventReportShared, map[string]string{
		"report_id":      reportID.String(),
		"target_user_id": targetUserID,
	})

	return nil
}

// AttachFeedback implements ReportService.AttachFeedback.
func (s *reportServiceImpl) AttachFeedback(ctx context.Context, reportID uuid.UUID, feedback string) error {
	if reportID == uuid.Nil {
		return invalidInput("report ID cannot be empty")
	}
	if strings.TrimSpace(feedback) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrFeedbackEmpty)
	}

	if err := s.reports.AttachFeedback(ctx, reportID, feedback); err != nil {
		return s.mapReportError("attach_feedback", reportID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("feedback attached",
		slog.String("report_id", reportID.String()))
	return nil
}

// fetchResponse turns a missing or nil response into ErrResponsesNotFound.
func (s *reportServiceImpl) fetchResponse(ctx context.Context, userID string) (*domain.CompatibilityResponse, error) {
	response, err := s.responses.GetResponse(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: user %s", ErrResponsesNotFound, userID)
		}
		return nil, NewReportServiceError("get_response", "failed to fetch response", err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: user %s", ErrResponsesNotFound, userID)
	}
	return response, nil
}

func (s *reportServiceImpl) mapReportError(operation string, reportID uuid.UUID, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}
	return NewReportServiceError(operation, "repository call failed", err)
}
