package domain

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScore() *CompatibilityScore {
	return &CompatibilityScore{
		UserID1:        "user-a",
		UserID2:        "user-b",
		OverallScore:   75,
		CategoryScores: map[string]float64{"values": 0.8, "lifestyle": 0.7},
		Breakdown: map[string]float64{
			ScoreKey("values"):       0.8,
			WeightedKey("values"):    0.4,
			ScoreKey("lifestyle"):    0.7,
			WeightedKey("lifestyle"): 0.35,
		},
		Level:        CompatibilityLevelGood,
		CalculatedAt: time.Now().UTC(),
	}
}

func TestNewCompatibilityReport(t *testing.T) {
	t.Parallel()
	now := time.Now()

	report, err := NewCompatibilityReport(sampleScore(), now)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Equal(t, "user-a", report.UserID1)
	assert.Equal(t, "user-b", report.UserID2)
	assert.False(t, report.IsShared)
	assert.Nil(t, report.FamilyFeedback)
	assert.Empty(t, report.SharedWith)
	assert.True(t, report.GeneratedAt.Equal(now))

	other, err := NewCompatibilityReport(sampleScore(), now)
	require.NoError(t, err)
	assert.NotEqual(t, report.ID, other.ID, "every report gets a fresh ID")

	_, err = NewCompatibilityReport(nil, now)
	assert.ErrorIs(t, err, ErrReportScoresNil)
}

func TestCompatibilityReportValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(r *CompatibilityReport)
		wantErr error
	}{
		{name: "nil ID", mutate: func(r *CompatibilityReport) { r.ID = uuid.Nil }, wantErr: ErrReportIDEmpty},
		{name: "empty user", mutate: func(r *CompatibilityReport) { r.UserID2 = "" }, wantErr: ErrReportUserIDEmpty},
		{
			name: "same user",
			mutate: func(r *CompatibilityReport) {
				r.UserID2 = r.UserID1
				r.Scores.UserID2 = r.UserID1
			},
			wantErr: ErrReportSameUser,
		},
		{
			name:    "score users mismatch",
			mutate:  func(r *CompatibilityReport) { r.Scores.UserID1 = "someone-else" },
			wantErr: ErrScoreUsersMismatch,
		},
		{
			name:    "invalid level",
			mutate:  func(r *CompatibilityReport) { r.Scores.Level = "perfect" },
			wantErr: ErrInvalidCompatLevel,
		},
		{
			name:    "category score out of range",
			mutate:  func(r *CompatibilityReport) { r.Scores.CategoryScores["values"] = 1.2 },
			wantErr: ErrScoreOutOfRange,
		},
		{
			name:    "NaN category score",
			mutate:  func(r *CompatibilityReport) { r.Scores.CategoryScores["values"] = math.NaN() },
			wantErr: ErrScoreOutOfRange,
		},
		{
			name:    "infinite overall score",
			mutate:  func(r *CompatibilityReport) { r.Scores.OverallScore = math.Inf(1) },
			wantErr: ErrScoreOutOfRange,
		},
		{
			name:    "NaN overall score",
			mutate:  func(r *CompatibilityReport) { r.Scores.OverallScore = math.NaN() },
			wantErr: ErrScoreOutOfRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := NewCompatibilityReport(sampleScore(), time.Now())
			require.NoError(t, err)

			tc.mutate(report)
			assert.ErrorIs(t, report.Validate(), tc.wantErr)
		})
	}
}

func TestCompatibilityReportSharingAndFeedback(t *testing.T) {
	t.Parallel()

	report, err := NewCompatibilityReport(sampleScore(), time.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, report.MarkShared(""), ErrShareTargetEmpty)
	assert.False(t, report.IsShared)

	require.NoError(t, report.MarkShared("family-1"))
	assert.True(t, report.IsShared)
	assert.Equal(t, "family-1", report.SharedWith)

	assert.ErrorIs(t, report.AttachFeedback("   "), ErrFeedbackEmpty)
	require.NoError(t, report.AttachFeedback("Looks like a good match"))
	require.NotNil(t, report.FamilyFeedback)
	assert.Equal(t, "Looks like a good match", *report.FamilyFeedback)
}

func TestIsValidCompatibilityLevel(t *testing.T) {
	t.Parallel()
	for _, lvl := range []CompatibilityLevel{
		CompatibilityLevelExcellent, CompatibilityLevelGood,
		CompatibilityLevelFair, CompatibilityLevelLow,
	} {
		assert.True(t, IsValidCompatibilityLevel(lvl), lvl)
	}
	assert.False(t, IsValidCompatibilityLevel("unknown"))
}
