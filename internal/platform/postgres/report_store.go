package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/logger"
	"github.com/karthiknish/aroosi-swift-sub004/internal/store"
)

// PostgresReportStore implements the store.ReportStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReportStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReportStore creates a new PostgreSQL implementation of the ReportStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresReportStore(db store.DBTX, logger *slog.Logger) *PostgresReportStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReportStore{
		db:     db,
		logger: logger.With(slog.String("component", "report_store")),
	}
}

// Ensure PostgresReportStore implements store.ReportStore interface
var _ store.ReportStore = (*PostgresReportStore)(nil)

const reportColumns = `id, user_id_1, user_id_2, scores, generated_at, family_feedback, is_shared, shared_with`

// SaveReport implements store.ReportStore.SaveReport.
func (s *PostgresReportStore) SaveReport(ctx context.Context, report *domain.CompatibilityReport) error {
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

	query := `
		INSERT INTO compatibility_reports
			(id, user_id_1, user_id_2, scores, overall_score, level, generated_at,
			 family_feedback, is_shared, shared_with)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		report.ID,
		report.UserID1,
		report.UserID2,
		string(scores),
		report.Scores.OverallScore,
		string(report.Scores.Level),
		report.GeneratedAt.UTC(),
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
		slog.String("user_id_1", report.UserID1),
		slog.String("user_id_2", report.UserID2),
		slog.Float64("overall_score", report.Scores.OverallScore))
	return nil
}

// GetReport implements store.ReportStore.GetReport.
func (s *PostgresReportStore) GetReport(ctx context.Context, id uuid.UUID) (*domain.CompatibilityReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving report", slog.String("report_id", id.String()))

	query := `SELECT ` + reportColumns + ` FROM compatibility_reports WHERE id = $1`

	report, err := scanReport(s.db.QueryRowContext(ctx, query, id))
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

// ListReportsForUser implements store.ReportStore.ListReportsForUser.
func (s *PostgresReportStore) ListReportsForUser(ctx context.Context, userID string) ([]*domain.CompatibilityReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing reports", slog.String("user_id", userID))

	query := `SELECT ` + reportColumns + `
		FROM compatibility_reports
		WHERE user_id_1 = $1 OR user_id_2 = $1
		ORDER BY generated_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, userID)
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

	log.Debug("reports listed",
		slog.String("user_id", userID),
		slog.Int("count", len(reports)))
	return reports, nil
}

// ShareReport implements store.ReportStore.ShareReport.
func (s *PostgresReportStore) ShareReport(ctx context.Context, id uuid.UUID, targetUserID string) error {
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

// AttachFeedback implements store.ReportStore.AttachFeedback.
func (s *PostgresReportStore) AttachFeedback(ctx context.Context, id uuid.UUID, feedback string) error {
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

// updateReport locks the row, applies mutate to the loaded report and writes
// the sharing and feedback columns back in the same transaction.
func (s *PostgresReportStore) updateReport(
	ctx context.Context,
	id uuid.UUID,
	operation string,
	mutate func(*domain.CompatibilityReport) error,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return store.WithinTransaction(ctx, s.db, func(ctx context.Context, q store.DBTX) error {
		query := `SELECT ` + reportColumns + ` FROM compatibility_reports WHERE id = $1 FOR UPDATE`
		report, err := scanReport(q.QueryRowContext(ctx, query, id))
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

		result, err := q.ExecContext(ctx, `
			UPDATE compatibility_reports
			SET is_shared = $2, shared_with = $3, family_feedback = $4
			WHERE id = $1
		`, id, report.IsShared, nullString(report.SharedWith), report.FamilyFeedback)
		if err != nil {
			log.Error("failed to update report",
				slog.String("error", err.Error()),
				slog.String("report_id", id.String()),
				slog.String("operation", operation))
			return store.NewStoreError("report", operation, "failed to update report", MapError(err))
		}

		return CheckRowsAffected(result, store.ErrReportNotFound)
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.CompatibilityReport, error) {
	var (
		report     domain.CompatibilityReport
		scores     []byte
		feedback   sql.NullString
		sharedWith sql.NullString
	)

	err := row.Scan(
		&report.ID,
		&report.UserID1,
		&report.UserID2,
		&scores,
		&report.GeneratedAt,
		&feedback,
		&report.IsShared,
		&sharedWith,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(scores, &report.Scores); err != nil {
		return nil, fmt.Errorf("failed to decode scores for report %s: %w", report.ID, err)
	}

	report.GeneratedAt = report.GeneratedAt.UTC()
	if feedback.Valid {
		report.FamilyFeedback = &feedback.String
	}
	report.SharedWith = sharedWith.String

	return &report, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
