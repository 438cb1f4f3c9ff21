package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
)

// ReportStore persists compatibility reports and their sharing state.
type ReportStore interface {
	// SaveReport stores a newly generated report.
	// Returns ErrDuplicate if a report with the same ID already exists.
	// Returns ErrInvalidEntity if the report fails domain validation.
	SaveReport(ctx context.Context, report *domain.CompatibilityReport) error

	// GetReport retrieves a report by ID.
	// Returns ErrReportNotFound if no such report exists.
	GetReport(ctx context.Context, id uuid.UUID) (*domain.CompatibilityReport, error)

	// ListReportsForUser returns every report the user is part of, on either
	// side, newest first. An empty slice is returned when there are none.
	ListReportsForUser(ctx context.Context, userID string) ([]*domain.CompatibilityReport, error)

	// ShareReport marks the report shared and records the recipient.
	// Sharing is one-way; sharing again only updates the recipient.
	// The read and write happen in one transaction.
	// Returns ErrReportNotFound if no such report exists.
	// Returns ErrInvalidEntity if the recipient is blank.
	ShareReport(ctx context.Context, id uuid.UUID, targetUserID string) error

	// AttachFeedback stores family feedback on the report, replacing any
	// earlier feedback.
	// Returns ErrReportNotFound if no such report exists.
	// Returns ErrInvalidEntity if the feedback is blank.
	AttachFeedback(ctx context.Context, id uuid.UUID, feedback string) error
}
