package scoring

import (
	"testing"
	"time"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scaleQuestion(id string) domain.Question {
	return domain.Question{
		ID:   id,
		Type: domain.QuestionTypeScale,
		Options: []domain.Option{
			{ID: "s0", Value: 0.0},
			{ID: "s3", Value: 0.3},
			{ID: "s6", Value: 0.6},
			{ID: "s8", Value: 0.8},
			{ID: "s10", Value: 1.0},
		},
	}
}

func multiQuestion(id string) domain.Question {
	return domain.Question{
		ID:   id,
		Type: domain.QuestionTypeMultipleChoice,
		Options: []domain.Option{
			{ID: "cooking"}, {ID: "travel"}, {ID: "reading"}, {ID: "sports"},
		},
	}
}

func yesNoQuestion(id string) domain.Question {
	return domain.Question{
		ID:   id,
		Type: domain.QuestionTypeYesNo,
		Options: []domain.Option{
			{ID: "yes", Value: 1.0},
			{ID: "no", Value: 0.0},
		},
	}
}

func TestCompareQuestion(t *testing.T) {
	t.Parallel()

	scale := scaleQuestion("q_scale")
	multi := multiQuestion("q_multi")
	yesNo := yesNoQuestion("q_yes_no")

	tests := []struct {
		name       string
		question   *domain.Question
		a1, a2     domain.ResponseValue
		expected   float64
		expectedOK bool
	}{
		{
			name:       "identical single options",
			question:   &scale,
			a1:         domain.Single{OptionID: "s6"},
			a2:         domain.Single{OptionID: "s6"},
			expected:   1.0,
			expectedOK: true,
		},
		{
			name:       "value distance",
			question:   &scale,
			a1:         domain.Single{OptionID: "s8"},
			a2:         domain.Single{OptionID: "s10"},
			expected:   0.8,
			expectedOK: true,
		},
		{
			name:       "opposite ends of scale",
			question:   &scale,
			a1:         domain.Single{OptionID: "s0"},
			a2:         domain.Single{OptionID: "s10"},
			expected:   0.0,
			expectedOK: true,
		},
		{
			name:       "yes no disagreement",
			question:   &yesNo,
			a1:         domain.Single{OptionID: "yes"},
			a2:         domain.Single{OptionID: "no"},
			expected:   0.0,
			expectedOK: true,
		},
		{
			name:       "unknown option id scores zero",
			question:   &scale,
			a1:         domain.Single{OptionID: "s6"},
			a2:         domain.Single{OptionID: "missing"},
			expected:   0.0,
			expectedOK: true,
		},
		{
			name:       "same unknown option id scores zero",
			question:   &scale,
			a1:         domain.Single{OptionID: "missing"},
			a2:         domain.Single{OptionID: "missing"},
			expected:   0.0,
			expectedOK: true,
		},
		{
			name:       "multiple answer on single question",
			question:   &scale,
			a1:         domain.Single{OptionID: "s6"},
			a2:         domain.NewMultiple("s6"),
			expected:   0.0,
			expectedOK: true,
		},
		{
			name:       "jaccard partial overlap",
			question:   &multi,
			a1:         domain.NewMultiple("cooking", "travel"),
			a2:         domain.NewMultiple("travel", "reading"),
			expected:   1.0 / 3.0,
			expectedOK: true,
		},
		{
			name:       "jaccard identical sets",
			question:   &multi,
			a1:         domain.NewMultiple("cooking", "travel"),
			a2:         domain.NewMultiple("travel", "cooking"),
			expected:   1.0,
			expectedOK: true,
		},
		{
			name:       "jaccard disjoint sets",
			question:   &multi,
			a1:         domain.NewMultiple("cooking"),
			a2:         domain.NewMultiple("sports"),
			expected:   0.0,
			expectedOK: true,
		},
		{
			name:       "jaccard both empty",
			question:   &multi,
			a1:         domain.NewMultiple(),
			a2:         domain.NewMultiple(),
			expected:   1.0,
			expectedOK: true,
		},
		{
			name:       "jaccard one empty",
			question:   &multi,
			a1:         domain.NewMultiple(),
			a2:         domain.NewMultiple("cooking"),
			expected:   0.0,
			expectedOK: true,
		},
		{
			name:       "single answer on multiple question",
			question:   &multi,
			a1:         domain.Single{OptionID: "cooking"},
			a2:         domain.NewMultiple("cooking"),
			expected:   0.0,
			expectedOK: true,
		},
		{
			name:       "missing answer is not compared",
			question:   &scale,
			a1:         domain.Single{OptionID: "s6"},
			a2:         nil,
			expectedOK: false,
		},
		{
			name:       "unknown question type scores zero",
			question:   &domain.Question{ID: "q", Type: "ranking", Options: []domain.Option{{ID: "a"}}},
			a1:         domain.Single{OptionID: "a"},
			a2:         domain.Single{OptionID: "a"},
			expected:   0.0,
			expectedOK: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			score, ok := CompareQuestion(tc.question, tc.a1, tc.a2)
			assert.Equal(t, tc.expectedOK, ok)
			if !tc.expectedOK {
				return
			}
			assert.InDelta(t, tc.expected, score, 1e-9)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		})
	}
}

func TestCompareQuestionIsSymmetric(t *testing.T) {
	t.Parallel()

	scale := scaleQuestion("q_scale")
	multi := multiQuestion("q_multi")

	pairs := []struct {
		question *domain.Question
		a1, a2   domain.ResponseValue
	}{
		{&scale, domain.Single{OptionID: "s3"}, domain.Single{OptionID: "s10"}},
		{&scale, domain.Single{OptionID: "s0"}, domain.Single{OptionID: "missing"}},
		{&multi, domain.NewMultiple("cooking", "travel", "sports"), domain.NewMultiple("travel")},
		{&multi, domain.Single{OptionID: "travel"}, domain.NewMultiple("travel")},
	}

	for _, p := range pairs {
		forward, okF := CompareQuestion(p.question, p.a1, p.a2)
		backward, okB := CompareQuestion(p.question, p.a2, p.a1)
		assert.Equal(t, okF, okB)
		assert.InDelta(t, forward, backward, 1e-12)
	}
}

func TestCategoryScore(t *testing.T) {
	t.Parallel()

	category := &domain.Category{
		ID:     "values",
		Weight: 1,
		Questions: []domain.Question{
			scaleQuestion("q1"),
			scaleQuestion("q2"),
			multiQuestion("q3"),
		},
	}

	t.Run("mean over answered questions", func(t *testing.T) {
		t.Parallel()
		r1 := domain.Responses{
			"q1": domain.Single{OptionID: "s10"},
			"q2": domain.Single{OptionID: "s0"},
		}
		r2 := domain.Responses{
			"q1": domain.Single{OptionID: "s10"},
			"q2": domain.Single{OptionID: "s10"},
		}
		assert.InDelta(t, 0.5, CategoryScore(category, r1, r2), 1e-9)
	})

	t.Run("unanswered question does not count", func(t *testing.T) {
		t.Parallel()
		r1 := domain.Responses{
			"q1": domain.Single{OptionID: "s10"},
			"q3": domain.NewMultiple("cooking"),
		}
		r2 := domain.Responses{
			"q1": domain.Single{OptionID: "s10"},
		}
		assert.Equal(t, 1.0, CategoryScore(category, r1, r2))
	})

	t.Run("nothing to compare scores zero", func(t *testing.T) {
		t.Parallel()
		r1 := domain.Responses{"q1": domain.Single{OptionID: "s10"}}
		r2 := domain.Responses{"q2": domain.Single{OptionID: "s10"}}
		assert.Equal(t, 0.0, CategoryScore(category, r1, r2))
		assert.Equal(t, 0.0, CategoryScore(category, nil, nil))
	})

	t.Run("nil category", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, CategoryScore(nil, domain.Responses{}, domain.Responses{}))
	})
}

func twoCategoryCatalog() []domain.Category {
	return []domain.Category{
		{
			ID:     "lifestyle",
			Weight: 0.5,
			Questions: []domain.Question{{
				ID:   "q_a",
				Type: domain.QuestionTypeScale,
				Options: []domain.Option{
					{ID: "a_low", Value: 0.0},
					{ID: "a_06", Value: 0.6},
					{ID: "a_08", Value: 0.8},
					{ID: "a_high", Value: 1.0},
				},
			}},
		},
		{
			ID:     "family",
			Weight: 0.5,
			Questions: []domain.Question{{
				ID:   "q_b",
				Type: domain.QuestionTypeScale,
				Options: []domain.Option{
					{ID: "b_low", Value: 0.0},
					{ID: "b_03", Value: 0.3},
					{ID: "b_06", Value: 0.6},
					{ID: "b_high", Value: 1.0},
				},
			}},
		},
	}
}

func TestCalculateScore(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("PKT", 5*3600))
	resp1 := &domain.CompatibilityResponse{
		UserID: "user-a",
		Responses: domain.Responses{
			"q_a": domain.Single{OptionID: "a_08"},
			"q_b": domain.Single{OptionID: "b_06"},
		},
	}
	resp2 := &domain.CompatibilityResponse{
		UserID: "user-b",
		Responses: domain.Responses{
			"q_a": domain.Single{OptionID: "a_high"},
			"q_b": domain.Single{OptionID: "b_03"},
		},
	}

	score := calculateScore(twoCategoryCatalog(), resp1, resp2, now, NewDefaultParams())
	require.NotNil(t, score)

	assert.Equal(t, "user-a", score.UserID1)
	assert.Equal(t, "user-b", score.UserID2)
	assert.InDelta(t, 75.0, score.OverallScore, 1e-9)
	assert.InDelta(t, 0.8, score.CategoryScores["lifestyle"], 1e-9)
	assert.InDelta(t, 0.7, score.CategoryScores["family"], 1e-9)
	assert.InDelta(t, 0.8, score.Breakdown["lifestyle_score"], 1e-9)
	assert.InDelta(t, 0.4, score.Breakdown["lifestyle_weighted"], 1e-9)
	assert.InDelta(t, 0.7, score.Breakdown["family_score"], 1e-9)
	assert.InDelta(t, 0.35, score.Breakdown["family_weighted"], 1e-9)
	assert.Len(t, score.Breakdown, 4)
	assert.Equal(t, domain.CompatibilityLevelGood, score.Level)
	assert.Equal(t, time.UTC, score.CalculatedAt.Location())
	assert.True(t, score.CalculatedAt.Equal(now))
}

func TestCalculateScoreEmptyResponses(t *testing.T) {
	t.Parallel()

	resp1 := &domain.CompatibilityResponse{UserID: "a", Responses: domain.Responses{}}
	resp2 := &domain.CompatibilityResponse{UserID: "b", Responses: domain.Responses{}}

	score := calculateScore(twoCategoryCatalog(), resp1, resp2, time.Now(), NewDefaultParams())

	assert.Equal(t, 0.0, score.OverallScore)
	assert.Equal(t, 0.0, score.CategoryScores["lifestyle"])
	assert.Equal(t, 0.0, score.CategoryScores["family"])
	assert.Equal(t, domain.CompatibilityLevelLow, score.Level)
}

func TestCalculateScoreDoesNotRenormalizeWeights(t *testing.T) {
	t.Parallel()

	categories := twoCategoryCatalog()
	categories[0].Weight = 1
	categories[1].Weight = 1

	same := domain.Responses{
		"q_a": domain.Single{OptionID: "a_high"},
		"q_b": domain.Single{OptionID: "b_high"},
	}
	resp1 := &domain.CompatibilityResponse{UserID: "a", Responses: same}
	resp2 := &domain.CompatibilityResponse{UserID: "b", Responses: same}

	score := calculateScore(categories, resp1, resp2, time.Now(), NewDefaultParams())
	assert.InDelta(t, 200.0, score.OverallScore, 1e-9)
}

func TestCalculateScoreMonotonicInCategoryScore(t *testing.T) {
	t.Parallel()

	base := domain.Responses{
		"q_a": domain.Single{OptionID: "a_high"},
		"q_b": domain.Single{OptionID: "b_low"},
	}
	other := &domain.CompatibilityResponse{UserID: "b", Responses: domain.Responses{
		"q_a": domain.Single{OptionID: "a_high"},
		"q_b": domain.Single{OptionID: "b_high"},
	}}

	previous := -1.0
	for _, option := range []string{"b_low", "b_03", "b_06", "b_high"} {
		responses := base.Clone()
		responses["q_b"] = domain.Single{OptionID: option}
		resp := &domain.CompatibilityResponse{UserID: "a", Responses: responses}

		score := calculateScore(twoCategoryCatalog(), resp, other, time.Now(), NewDefaultParams())
		assert.GreaterOrEqual(t, score.OverallScore, previous, "option %s", option)
		previous = score.OverallScore
	}
}
