package api

import (
	"time"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
)

// SubmitResponsesRequest is the body of PUT /api/users/{userID}/responses.
type SubmitResponsesRequest struct {
	Responses domain.Responses `json:"responses" validate:"required"`
}

// GenerateReportRequest is the body of POST /api/reports.
type GenerateReportRequest struct {
	UserID1 string `json:"user_id_1" validate:"required,max=128"`
	UserID2 string `json:"user_id_2" validate:"required,max=128,nefield=UserID1"`
}

// ShareReportRequest is the body of POST /api/reports/{reportID}/share.
type ShareReportRequest struct {
	TargetUserID string `json:"target_user_id" validate:"required,max=128"`
}

// FeedbackRequest is the body of POST /api/reports/{reportID}/feedback.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,max=4000"`
}

// CatalogResponse describes the questionnaire.
type CatalogResponse struct {
	Version        string            `json:"version"`
	TotalQuestions int               `json:"total_questions"`
	Categories     []domain.Category `json:"categories"`
}

// ResponseResponse is a user's completed questionnaire.
type ResponseResponse struct {
	UserID      string           `json:"user_id"`
	Responses   domain.Responses `json:"responses"`
	CompletedAt time.Time        `json:"completed_at"`
}

// ScoreResponse is the scored part of a report.
type ScoreResponse struct {
	OverallScore   float64            `json:"overall_score"`
	Level          string             `json:"level"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Breakdown      map[string]float64 `json:"breakdown"`
	CalculatedAt   time.Time          `json:"calculated_at"`
}

// ReportResponse is a compatibility report.
type ReportResponse struct {
	ID             string        `json:"id"`
	UserID1        string        `json:"user_id_1"`
	UserID2        string        `json:"user_id_2"`
	Scores         ScoreResponse `json:"scores"`
	GeneratedAt    time.Time     `json:"generated_at"`
	FamilyFeedback *string       `json:"family_feedback,omitempty"`
	IsShared       bool          `json:"is_shared"`
	SharedWith     string        `json:"shared_with,omitempty"`
}

// ReportListResponse wraps a list of reports.
type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
}

func responseToDTO(resp *domain.CompatibilityResponse) ResponseResponse {
	return ResponseResponse{
		UserID:      resp.UserID,
		Responses:   resp.Responses,
		CompletedAt: resp.CompletedAt,
	}
}

func reportToDTO(report *domain.CompatibilityReport) ReportResponse {
	return ReportResponse{
		ID:      report.ID.String(),
		UserID1: report.UserID1,
		UserID2: report.UserID2,
		Scores: ScoreResponse{
			OverallScore:   report.Scores.OverallScore,
			Level:          string(report.Scores.Level),
			CategoryScores: report.Scores.CategoryScores,
			Breakdown:      report.Scores.Breakdown,
			CalculatedAt:   report.Scores.CalculatedAt,
		},
		GeneratedAt:    report.GeneratedAt,
		FamilyFeedback: report.FamilyFeedback,
		IsShared:       report.IsShared,
		SharedWith:     report.SharedWith,
	}
}
