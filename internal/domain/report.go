package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CompatibilityLevel is a qualitative band derived from an overall score.
type CompatibilityLevel string

// Compatibility levels, from best to worst
const (
	CompatibilityLevelExcellent CompatibilityLevel = "excellent"
	CompatibilityLevelGood      CompatibilityLevel = "good"
	CompatibilityLevelFair      CompatibilityLevel = "fair"
	CompatibilityLevelLow       CompatibilityLevel = "low"
)

// Report validation errors
var (
	ErrReportIDEmpty      = errors.New("report ID cannot be empty")
	ErrReportUserIDEmpty  = errors.New("report user IDs cannot be empty")
	ErrReportSameUser     = errors.New("report requires two distinct users")
	ErrReportScoresNil    = errors.New("report scores cannot be nil")
	ErrShareTargetEmpty   = errors.New("share target user ID cannot be empty")
	ErrFeedbackEmpty      = errors.New("feedback cannot be empty")
	ErrInvalidCompatLevel = errors.New("invalid compatibility level")
	ErrScoreOutOfRange    = errors.New("scores must be finite and category scores within [0,1]")
	ErrScoreUsersMismatch = errors.New("score users do not match report users")
)

// CompatibilityScore is the derived result of scoring two responses. It is
// never stored on its own; it lives inside a CompatibilityReport.
type CompatibilityScore struct {
	UserID1        string             `json:"user_id_1"`
	UserID2        string             `json:"user_id_2"`
	OverallScore   float64            `json:"overall_score"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Breakdown      map[string]float64 `json:"breakdown"`
	Level          CompatibilityLevel `json:"level"`
	CalculatedAt   time.Time          `json:"calculated_at"`
}

// ScoreKey is the breakdown key holding a category's raw score.
func ScoreKey(categoryID string) string { return categoryID + "_score" }

// WeightedKey is the breakdown key holding a category's weighted contribution.
func WeightedKey(categoryID string) string { return categoryID + "_weighted" }

// CompatibilityReport pairs two users' scores with sharing metadata.
// It moves one way from generated to shared.
type CompatibilityReport struct {
	ID             uuid.UUID          `json:"id"`
	UserID1        string             `json:"user_id_1"`
	UserID2        string             `json:"user_id_2"`
	Scores         CompatibilityScore `json:"scores"`
	GeneratedAt    time.Time          `json:"generated_at"`
	FamilyFeedback *string            `json:"family_feedback,omitempty"`
	IsShared       bool               `json:"is_shared"`
	SharedWith     string             `json:"shared_with,omitempty"`
}

// NewCompatibilityReport creates a new, unshared report for the given score.
// It generates a new UUID for the report ID.
// Returns an error if validation fails.
func NewCompatibilityReport(score *CompatibilityScore, generatedAt time.Time) (*CompatibilityReport, error) {
	if score == nil {
		return nil, ErrReportScoresNil
	}

	report := &CompatibilityReport{
		ID:          uuid.New(),
		UserID1:     score.UserID1,
		UserID2:     score.UserID2,
		Scores:      *score,
		GeneratedAt: generatedAt.UTC(),
		IsShared:    false,
	}

	if err := report.Validate(); err != nil {
		return nil, err
	}

	return report, nil
}

// Validate checks if the CompatibilityReport has valid data.
func (r *CompatibilityReport) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReportIDEmpty
	}

	if strings.TrimSpace(r.UserID1) == "" || strings.TrimSpace(r.UserID2) == "" {
		return ErrReportUserIDEmpty
	}

	if r.UserID1 == r.UserID2 {
		return ErrReportSameUser
	}

	if r.Scores.UserID1 != r.UserID1 || r.Scores.UserID2 != r.UserID2 {
		return ErrScoreUsersMismatch
	}

	if r.Scores.Level != "" && !IsValidCompatibilityLevel(r.Scores.Level) {
		return ErrInvalidCompatLevel
	}

	if !isFinite(r.Scores.OverallScore) {
		return ErrScoreOutOfRange
	}

	for _, s := range r.Scores.CategoryScores {
		if !isFinite(s) || s < 0 || s > 1 {
			return ErrScoreOutOfRange
		}
	}

	return nil
}

// MarkShared records the recipient and flips the report to shared.
// There is no way back to unshared.
func (r *CompatibilityReport) MarkShared(targetUserID string) error {
	if strings.TrimSpace(targetUserID) == "" {
		return ErrShareTargetEmpty
	}

	r.IsShared = true
	r.SharedWith = targetUserID
	return nil
}

// AttachFeedback stores family feedback on the report.
func (r *CompatibilityReport) AttachFeedback(feedback string) error {
	if strings.TrimSpace(feedback) == "" {
		return ErrFeedbackEmpty
	}

	r.FamilyFeedback = &feedback
	return nil
}

// IsValidCompatibilityLevel checks if the given level is a known CompatibilityLevel.
func IsValidCompatibilityLevel(level CompatibilityLevel) bool {
	switch level {
	case CompatibilityLevelExcellent, CompatibilityLevelGood,
		CompatibilityLevelFair, CompatibilityLevelLow:
		return true
	default:
		return false
	}
}
