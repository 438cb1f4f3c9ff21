package scoring

import (
	"errors"
	"fmt"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
)

// ErrInvalidBands is returned when level thresholds are not strictly descending.
var ErrInvalidBands = errors.New("level thresholds must satisfy 100 >= excellent > good > fair >= 0")

// Params defines the configurable parts of scoring. Only the qualitative
// level bands are configurable; the similarity formulas are fixed.
type Params struct {
	// Lower bounds (inclusive) on the overall score for each level.
	// Scores below FairThreshold are CompatibilityLevelLow.
	ExcellentThreshold float64
	GoodThreshold      float64
	FairThreshold      float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	ExcellentThreshold float64
	GoodThreshold      float64
	FairThreshold      float64
}

// NewDefaultParams creates a new Params instance with default values:
// >=80 excellent, >=60 good, >=40 fair, otherwise low.
func NewDefaultParams() *Params {
	return &Params{
		ExcellentThreshold: 80,
		GoodThreshold:      60,
		FairThreshold:      40,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero values keep the defaults.
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	if config.ExcellentThreshold > 0 {
		params.ExcellentThreshold = config.ExcellentThreshold
	}
	if config.GoodThreshold > 0 {
		params.GoodThreshold = config.GoodThreshold
	}
	if config.FairThreshold > 0 {
		params.FairThreshold = config.FairThreshold
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return params, nil
}

// Validate checks the thresholds are ordered and within [0,100].
func (p *Params) Validate() error {
	if p.ExcellentThreshold > 100 ||
		p.ExcellentThreshold <= p.GoodThreshold ||
		p.GoodThreshold <= p.FairThreshold ||
		p.FairThreshold < 0 {
		return fmt.Errorf("%w: got excellent=%v good=%v fair=%v", ErrInvalidBands,
			p.ExcellentThreshold, p.GoodThreshold, p.FairThreshold)
	}
	return nil
}

// Level maps an overall score onto its band.
func (p *Params) Level(overall float64) domain.CompatibilityLevel {
	switch {
	case overall >= p.ExcellentThreshold:
		return domain.CompatibilityLevelExcellent
	case overall >= p.GoodThreshold:
		return domain.CompatibilityLevelGood
	case overall >= p.FairThreshold:
		return domain.CompatibilityLevelFair
	default:
		return domain.CompatibilityLevelLow
	}
}
