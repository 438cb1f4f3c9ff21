package service

import (
	"errors"
	"fmt"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
)

// Service errors callers may check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Repository failures are wrapped in ReportServiceError, never masked
// 3. The API layer maps service errors to HTTP status codes
var (
	// ErrResponsesNotFound indicates one or both users have no completed
	// questionnaire. API layer should map this to HTTP 404 Not Found.
	ErrResponsesNotFound = errors.New("completed responses not found")

	// ErrReportNotFound indicates the report does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrReportNotFound = errors.New("compatibility report not found")

	// ErrInvalidInput indicates a malformed request, such as an empty user ID.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidInput = errors.New("invalid input")
)

// ReportServiceError is a custom error type for report service errors.
type ReportServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ReportServiceError.
func (e *ReportServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("report service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("report service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ReportServiceError) Unwrap() error {
	return e.Err
}

// NewReportServiceError creates a new ReportServiceError.
func NewReportServiceError(operation, message string, err error) *ReportServiceError {
	return &ReportServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// SaveFailedError is returned when a report was computed but could not be
// persisted. Report stays usable in memory; it is not durable until a retry
// succeeds.
type SaveFailedError struct {
	Report *domain.CompatibilityReport
	Err    error
}

// Error implements the error interface for SaveFailedError.
func (e *SaveFailedError) Error() string {
	return fmt.Sprintf("report %s not saved: %v", e.Report.ID, e.Err)
}

// Unwrap returns the persistence error.
func (e *SaveFailedError) Unwrap() error {
	return e.Err
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
