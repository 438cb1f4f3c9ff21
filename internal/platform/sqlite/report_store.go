package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/logger"
	"github.com/karthiknish/aroosi-swift-sub004/internal/store"
)

// ReportStore implements store.ReportStore on SQLite.
type ReportStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReportStore creates a ReportStore over db. If logger is nil,
// slog.Default() is used.
func NewReportStore(db store.DBTX, logger *slog.Logger) *ReportStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReportStore{
		db:     db,
		logger: logger.With(slog.String("component", "report_store")),
	}
}

var _ store.ReportStore = (*ReportStore)(nil)

const reportColumns = `id, user_id_1, user_id_2, scores, generated_at, family_feedback, is_shared, shared_with`

// SaveReport inserts a new report.
func (s *ReportStore) SaveReport(ctx context.Context, report *domain.CompatibilityReport) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if report == nil {
		return fmt.Errorf("%w: report cannot be nil", store.ErrInvalidEntity)
	}
	if err := report.Validate(); err != nil {
		log.Warn("report validation failed during save",
			slog.String("error", err.Error()),
			slog.String("report_id", report.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	scores, err := json.Marshal(report.Scores)
	if err != nil {
		return fmt.Errorf("%w: failed to encode scores: %w", store.ErrInvalidEntity, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO compatibility_reports
			(id, user_id_1, user_id_2, scores, overall_score, level, generated_at,
			 family_feedback, is_shared, shared_with)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.ID.String(),
		report.UserID1,
		report.UserID2,
		string(scores),
		report.Scores.OverallScore,
		string(report.Scores.Level),
		report.GeneratedAt.UnixNano(),
		report.FamilyFeedback,
		report.IsShared,
		nullString(report.SharedWith),
	)
	if err != nil {
		log.Error("failed to save report",
			slog.String("error", err.Error()),
			slog.String("report_id", report.ID.String()))
		return store.NewStoreError("report", "save", "failed to insert report", MapError(err))
	}

	log.Info("report saved",
		slog.String("report_id", report.ID.String()),
		slog.Float64("overall_score", report.Scores.OverallScore))
	return nil
}

// GetReport returns store.ErrReportNotFound when no report has the id.
func (s *ReportStore) GetReport(ctx context.Context, id uuid.UUID) (*domain.CompatibilityReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	report, err := scanReport(s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM compatibility_reports WHERE id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("report not found", slog.String("report_id", id.String()))
			return nil, store.ErrReportNotFound
		}
		log.Error("failed to get report",
			slog.String("error", err.Error()),
			slog.String("report_id", id.String()))
		return nil, store.NewStoreError("report", "get", "failed to query report", MapError(err))
	}

	return report, nil
}

// ListReportsForUser returns the user's reports, newest first.
func (s *ReportStore) ListReportsForUser(ctx context.Context, userID string) ([]*domain.CompatibilityReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+reportColumns+`
		FROM compatibility_reports
		WHERE user_id_1 = ? OR user_id_2 = ?
		ORDER BY generated_at DESC, id`, userID, userID)
	if err != nil {
		log.Error("failed to list reports",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, store.NewStoreError("report", "list", "failed to query reports", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	reports := make([]*domain.CompatibilityReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, store.NewStoreError("report", "list", "failed to scan report", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("report", "list", "failed to iterate reports", MapError(err))
	}

	return reports, nil
}

// ShareReport flips the report to shared and records the recipient.
func (s *ReportStore) ShareReport(ctx context.Context, id uuid.UUID, targetUserID string) error {
	err := s.updateReport(ctx, id, "share", func(report *domain.CompatibilityReport) error {
		return report.MarkShared(targetUserID)
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("report shared",
		slog.String("report_id", id.String()),
		slog.String("target_user_id", targetUserID))
	return nil
}

// AttachFeedback replaces the report's family feedback.
func (s *ReportStore) AttachFeedback(ctx context.Context, id uuid.UUID, feedback string) error {
	err := s.updateReport(ctx, id, "feedback", func(report *domain.CompatibilityReport) error {
		return report.AttachFeedback(feedback)
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("feedback attached",
		slog.String("report_id", id.String()))
	return nil
}

func (s *ReportStore) updateReport(
	ctx context.Context,
	id uuid.UUID,
	operation string,
	mutate func(*domain.CompatibilityReport) error,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return store.WithinTransaction(ctx, s.db, func(ctx context.Context, q store.DBTX) error {
		report, err := scanReport(q.QueryRowContext(ctx,
			`SELECT `+reportColumns+` FROM compatibility_reports WHERE id = ?`, id.String()))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrReportNotFound
			}
			log.Error("failed to load report for update",
				slog.String("error", err.Error()),
				slog.String("report_id", id.String()),
				slog.String("operation", operation))
			return store.NewStoreError("report", operation, "failed to load report", MapError(err))
		}

		if err := mutate(report); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		result, err := q.ExecContext(ctx,
			`UPDATE compatibility_reports SET is_shared = ?, shared_with = ?, family_feedback = ? WHERE id = ?`,
			report.IsShared, nullString(report.SharedWith), report.FamilyFeedback, id.String())
		if err != nil {
			log.Error("failed to update report",
				slog.String("error", err.Error()),
				slog.String("report_id", id.String()),
				slog.String("operation", operation))
			return store.NewStoreError("report", operation, "failed to update report", MapError(err))
		}

		return checkRowsAffected(result, store.ErrReportNotFound)
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.CompatibilityReport, error) {
	var (
		report      domain.CompatibilityReport
		id          string
		scores      string
		generatedAt int64
		feedback    sql.NullString
		isShared    bool
		sharedWith  sql.NullString
	)

	if err := row.Scan(&id, &report.UserID1, &report.UserID2, &scores,
		&generatedAt, &feedback, &isShared, &sharedWith); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid report id %q: %w", id, err)
	}
	report.ID = parsed

	if err := json.Unmarshal([]byte(scores), &report.Scores); err != nil {
		return nil, fmt.Errorf("failed to decode scores for report %s: %w", id, err)
	}

	report.GeneratedAt = time.Unix(0, generatedAt).UTC()
	report.IsShared = isShared
	if feedback.Valid {
		report.FamilyFeedback = &feedback.String
	}
	report.SharedWith = sharedWith.String

	return &report, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
