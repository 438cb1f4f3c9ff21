// Package progress tracks one user's in-progress questionnaire answers.
//
// A Tracker belongs to a single session. It performs no locking; callers
// must not mutate it from more than one goroutine.
package progress

import (
	"errors"
	"fmt"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
)

// ErrUnknownQuestion is returned when an answer names a question that is not
// in the catalog.
var ErrUnknownQuestion = errors.New("question is not in the catalog")

// QuestionSource supplies the ordered question ids of a catalog.
type QuestionSource interface {
	QuestionIDs() []string
}

// Tracker accumulates answers against a fixed set of catalog questions.
type Tracker struct {
	questionIDs []string
	known       map[string]struct{}
	responses   domain.Responses
}

// NewTracker creates an empty tracker for the given catalog.
func NewTracker(source QuestionSource) *Tracker {
	ids := source.QuestionIDs()
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	return &Tracker{
		questionIDs: ids,
		known:       known,
		responses:   make(domain.Responses),
	}
}

// SaveResponse upserts the answer for a question.
func (t *Tracker) SaveResponse(questionID string, value domain.ResponseValue) error {
	if _, ok := t.known[questionID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if value == nil {
		return fmt.Errorf("%w: nil answer for question %s", domain.ErrInvalidResponse, questionID)
	}

	t.responses[questionID] = value
	return nil
}

// Response returns the current answer for a question, if any.
func (t *Tracker) Response(questionID string) (domain.ResponseValue, bool) {
	v, ok := t.responses[questionID]
	return v, ok
}

// Remove clears the answer for a question.
func (t *Tracker) Remove(questionID string) {
	delete(t.responses, questionID)
}

// AnsweredCount is the number of catalog questions with an answer.
func (t *Tracker) AnsweredCount() int {
	return len(t.responses)
}

// ProgressFraction is answered / total, or 0 for an empty catalog.
func (t *Tracker) ProgressFraction() float64 {
	if len(t.questionIDs) == 0 {
		return 0
	}
	return float64(len(t.responses)) / float64(len(t.questionIDs))
}

// IsComplete reports whether every catalog question has an answer.
func (t *Tracker) IsComplete() bool {
	for _, id := range t.questionIDs {
		if _, ok := t.responses[id]; !ok {
			return false
		}
	}
	return true
}

// Unanswered lists the question ids still missing an answer, in catalog order.
func (t *Tracker) Unanswered() []string {
	var missing []string
	for _, id := range t.questionIDs {
		if _, ok := t.responses[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Reset discards every answer.
func (t *Tracker) Reset() {
	t.responses = make(domain.Responses)
}

// Snapshot returns a copy of the answers that later edits do not affect.
func (t *Tracker) Snapshot() domain.Responses {
	return t.responses.Clone()
}
