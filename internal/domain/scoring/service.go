package scoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
)

// Common errors
var (
	ErrNilResponse   = errors.New("compatibility response cannot be nil")
	ErrEmptyCatalog  = errors.New("scoring requires at least one category")
	ErrInvalidParams = errors.New("invalid scoring parameters")
)

// Service defines the interface for compatibility scoring operations.
// Implementations hold no mutable state and are safe for concurrent use.
type Service interface {
	// OverallScore scores two completed responses against the catalog.
	OverallScore(
		resp1, resp2 *domain.CompatibilityResponse,
		now time.Time,
	) (*domain.CompatibilityScore, error)

	// Categories returns a copy of the catalog the service scores against.
	Categories() []domain.Category
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	categories []domain.Category
	params     *Params
}

// NewDefaultService creates a scoring service over the given catalog with
// default parameters.
func NewDefaultService(categories []domain.Category) (Service, error) {
	return NewServiceWithParams(categories, NewDefaultParams())
}

// NewServiceWithParams creates a scoring service with custom parameters.
// The categories are validated and copied; later changes by the caller do
// not affect scoring.
func NewServiceWithParams(categories []domain.Category, params *Params) (Service, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	if params == nil {
		return nil, fmt.Errorf("%w: params cannot be nil", ErrInvalidParams)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	for i := range categories {
		if err := categories[i].Validate(); err != nil {
			return nil, err
		}
	}

	p := *params
	return &defaultService{
		categories: domain.CloneCategories(categories),
		params:     &p,
	}, nil
}

// OverallScore implements the Service interface
func (s *defaultService) OverallScore(
	resp1, resp2 *domain.CompatibilityResponse,
	now time.Time,
) (*domain.CompatibilityScore, error) {
	if resp1 == nil || resp2 == nil {
		return nil, ErrNilResponse
	}

	return calculateScore(s.categories, resp1, resp2, now, s.params), nil
}

// Categories implements the Service interface
func (s *defaultService) Categories() []domain.Category {
	return domain.CloneCategories(s.categories)
}
