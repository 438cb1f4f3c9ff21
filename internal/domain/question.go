package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// QuestionType identifies how answers to a question are shaped and compared.
type QuestionType string

// Supported question types
const (
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeYesNo          QuestionType = "yes_no"
	QuestionTypeScale          QuestionType = "scale"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
)

// Catalog validation errors
var (
	ErrQuestionIDEmpty       = errors.New("question ID cannot be empty")
	ErrQuestionTypeInvalid   = errors.New("invalid question type")
	ErrQuestionNoOptions     = errors.New("question must declare at least one option")
	ErrOptionIDEmpty         = errors.New("option ID cannot be empty")
	ErrOptionIDDuplicate     = errors.New("option ID must be unique within a question")
	ErrOptionValueInvalid    = errors.New("option value must be a finite number")
	ErrCategoryIDEmpty       = errors.New("category ID cannot be empty")
	ErrCategoryWeightInvalid = errors.New("category weight must be a finite number greater than or equal to 0")
	ErrCategoryNoQuestions   = errors.New("category must contain at least one question")
)

// Option is one selectable answer of a question. Value is conventionally
// normalized to [0,1] and drives value-distance similarity.
type Option struct {
	ID    string  `json:"id" yaml:"id"`
	Label string  `json:"label,omitempty" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Question is a single catalog entry. Options keep their declared order.
type Question struct {
	ID      string       `json:"id" yaml:"id"`
	Text    string       `json:"text,omitempty" yaml:"text"`
	Type    QuestionType `json:"type" yaml:"type"`
	Options []Option     `json:"options" yaml:"options"`
}

// Validate checks if the Question has valid data.
// Returns an error if any field fails validation.
func (q *Question) Validate() error {
	if q.ID == "" {
		return ErrQuestionIDEmpty
	}

	if !IsValidQuestionType(q.Type) {
		return fmt.Errorf("%w: %q on question %s", ErrQuestionTypeInvalid, q.Type, q.ID)
	}

	if len(q.Options) == 0 {
		return fmt.Errorf("%w: %s", ErrQuestionNoOptions, q.ID)
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if opt.ID == "" {
			return fmt.Errorf("%w: question %s", ErrOptionIDEmpty, q.ID)
		}
		if _, dup := seen[opt.ID]; dup {
			return fmt.Errorf("%w: question %s, option %s", ErrOptionIDDuplicate, q.ID, opt.ID)
		}
		seen[opt.ID] = struct{}{}
		if !isFinite(opt.Value) {
			return fmt.Errorf("%w: question %s, option %s has value %v", ErrOptionValueInvalid, q.ID, opt.ID, opt.Value)
		}
	}

	return nil
}

// OptionValue resolves an option id to its declared value.
func (q *Question) OptionValue(optionID string) (float64, bool) {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt.Value, true
		}
	}
	return 0, false
}

// Category is a weighted group of questions. Categories are loaded once from
// the catalog and never mutated.
type Category struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name,omitempty" yaml:"name"`
	Weight    float64    `json:"weight" yaml:"weight"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Validate checks if the Category and all of its questions are valid.
func (c *Category) Validate() error {
	if c.ID == "" {
		return ErrCategoryIDEmpty
	}

	if !isFinite(c.Weight) || c.Weight < 0 {
		return fmt.Errorf("%w: category %s has weight %v", ErrCategoryWeightInvalid, c.ID, c.Weight)
	}

	if len(c.Questions) == 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNoQuestions, c.ID)
	}

	for i := range c.Questions {
		if err := c.Questions[i].Validate(); err != nil {
			return fmt.Errorf("category %s: %w", c.ID, err)
		}
	}

	return nil
}

// Clone returns a copy of the category that shares no slices with c.
func (c Category) Clone() Category {
	questions := make([]Question, len(c.Questions))
	for i, q := range c.Questions {
		q.Options = slices.Clone(q.Options)
		questions[i] = q
	}
	c.Questions = questions
	return c
}

// CloneCategories deep-copies categories, questions and options.
func CloneCategories(categories []Category) []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = c.Clone()
	}
	return out
}

// IsValidQuestionType checks if the given type is a known QuestionType.
func IsValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeYesNo,
		QuestionTypeScale, QuestionTypeMultipleChoice:
		return true
	default:
		return false
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
