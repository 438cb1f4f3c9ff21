package scoring

import (
	"math"
	"time"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
)

// compareFunc scores two present answers to one question in [0,1].
// Shape errors (wrong tag, unknown option) score 0.0 instead of failing.
type compareFunc func(q *domain.Question, a1, a2 domain.ResponseValue) float64

// strategies is the comparison dispatch table keyed by question type.
// Scale shares the value-distance strategy with the single-select types.
var strategies = map[domain.QuestionType]compareFunc{
	domain.QuestionTypeSingleChoice:   compareValueDistance,
	domain.QuestionTypeYesNo:          compareValueDistance,
	domain.QuestionTypeScale:          compareValueDistance,
	domain.QuestionTypeMultipleChoice: compareJaccard,
}

// CompareQuestion computes the similarity of two answers to a question.
//
// The boolean is false when either answer is missing; such pairs are left
// out of aggregation rather than penalized. Every other input yields a score
// in [0,1], with malformed answers scoring 0.0.
func CompareQuestion(q *domain.Question, a1, a2 domain.ResponseValue) (float64, bool) {
	if q == nil || a1 == nil || a2 == nil {
		return 0, false
	}

	compare, ok := strategies[q.Type]
	if !ok {
		return 0, true
	}

	return compare(q, a1, a2), true
}

// compareValueDistance scores single-select answers by the distance between
// the declared option values: identical options score 1.0, otherwise
// max(0, 1-|v1-v2|).
func compareValueDistance(q *domain.Question, a1, a2 domain.ResponseValue) float64 {
	s1, ok1 := a1.(domain.Single)
	s2, ok2 := a2.(domain.Single)
	if !ok1 || !ok2 {
		return 0
	}

	v1, ok1 := q.OptionValue(s1.OptionID)
	v2, ok2 := q.OptionValue(s2.OptionID)
	if !ok1 || !ok2 {
		return 0
	}

	if s1.OptionID == s2.OptionID {
		return 1
	}

	return math.Max(0, 1-math.Abs(v1-v2))
}

// compareJaccard scores multi-select answers by |A∩B| / |A∪B| over the
// selected option ids. Two empty selections agree vacuously and score 1.0.
func compareJaccard(_ *domain.Question, a1, a2 domain.ResponseValue) float64 {
	m1, ok1 := a1.(domain.Multiple)
	m2, ok2 := a2.(domain.Multiple)
	if !ok1 || !ok2 {
		return 0
	}

	set1 := m1.Set()
	set2 := m2.Set()
	if len(set1) == 0 && len(set2) == 0 {
		return 1
	}

	intersection := 0
	for id := range set1 {
		if _, ok := set2[id]; ok {
			intersection++
		}
	}

	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 1
	}

	return float64(intersection) / float64(union)
}

// CategoryScore is the arithmetic mean of the question similarities that
// could be computed for the category. Questions missing an answer on either
// side count toward neither numerator nor denominator. With nothing to
// compare the result is exactly 0.0.
func CategoryScore(c *domain.Category, r1, r2 domain.Responses) float64 {
	if c == nil {
		return 0
	}

	var sum float64
	compared := 0
	for i := range c.Questions {
		q := &c.Questions[i]
		score, ok := CompareQuestion(q, r1[q.ID], r2[q.ID])
		if !ok {
			continue
		}
		sum += score
		compared++
	}

	if compared == 0 {
		return 0
	}

	return sum / float64(compared)
}

// calculateScore aggregates category scores into a CompatibilityScore.
//
// Categories are visited in catalog order. The overall score is the weighted
// sum times 100 with no re-normalization: weights are expected to sum to 1
// when the catalog is defined, and scores may leave [0,100] otherwise.
func calculateScore(
	categories []domain.Category,
	resp1, resp2 *domain.CompatibilityResponse,
	now time.Time,
	params *Params,
) *domain.CompatibilityScore {
	categoryScores := make(map[string]float64, len(categories))
	breakdown := make(map[string]float64, len(categories)*2)

	var total float64
	for i := range categories {
		c := &categories[i]
		score := CategoryScore(c, resp1.Responses, resp2.Responses)
		weighted := score * c.Weight

		categoryScores[c.ID] = score
		breakdown[domain.ScoreKey(c.ID)] = score
		breakdown[domain.WeightedKey(c.ID)] = weighted
		total += weighted
	}

	overall := total * 100

	return &domain.CompatibilityScore{
		UserID1:        resp1.UserID,
		UserID2:        resp2.UserID,
		OverallScore:   overall,
		CategoryScores: categoryScores,
		Breakdown:      breakdown,
		Level:          params.Level(overall),
		CalculatedAt:   now.UTC(),
	}
}
