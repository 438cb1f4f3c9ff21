// Package catalog loads the compatibility questionnaire: weighted categories
// of typed questions. A Catalog is built once at startup and never mutated, so
// it can be shared freely across goroutines.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Catalog errors
var (
	ErrInvalidCatalog       = errors.New("invalid catalog")
	ErrDuplicateCategoryID  = errors.New("duplicate category ID")
	ErrDuplicateQuestionID  = errors.New("duplicate question ID")
	ErrCatalogFileNotLoaded = errors.New("catalog file could not be read")
)

// DefaultWeightTolerance is the allowed deviation of the weight sum from 1.
const DefaultWeightTolerance = 0.001

// document is the on-disk YAML shape of a catalog.
type document struct {
	Version    string            `yaml:"version"    validate:"required"`
	Categories []domain.Category `yaml:"categories" validate:"required,min=1"`
}

// Catalog is a validated, immutable questionnaire.
type Catalog struct {
	version     string
	categories  []domain.Category
	questionIDs []string
}

// Load reads and parses a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogFileNotLoaded, path, err)
	}

	return Parse(data)
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Parse decodes and validates a YAML catalog document.
// Weights are taken as given; see WeightsNormalized.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	return New(doc.Version, doc.Categories)
}

// New builds a Catalog from already-decoded categories. The categories are
// validated and copied.
func New(version string, categories []domain.Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}

	c := &Catalog{
		version:    version,
		categories: domain.CloneCategories(categories),
	}

	seenCategories := make(map[string]struct{}, len(categories))
	seenQuestions := make(map[string]struct{})
	for i := range c.categories {
		cat := &c.categories[i]
		if err := cat.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}

		if _, dup := seenCategories[cat.ID]; dup {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidCatalog, ErrDuplicateCategoryID, cat.ID)
		}
		seenCategories[cat.ID] = struct{}{}

		for _, q := range cat.Questions {
			if _, dup := seenQuestions[q.ID]; dup {
				return nil, fmt.Errorf("%w: %w: %s", ErrInvalidCatalog, ErrDuplicateQuestionID, q.ID)
			}
			seenQuestions[q.ID] = struct{}{}
			c.questionIDs = append(c.questionIDs, q.ID)
		}
	}

	return c, nil
}

// Version returns the catalog version string.
func (c *Catalog) Version() string {
	return c.version
}

// Categories returns a deep copy of the categories in catalog order.
func (c *Catalog) Categories() []domain.Category {
	return domain.CloneCategories(c.categories)
}

// QuestionIDs returns every question id in catalog order.
func (c *Catalog) QuestionIDs() []string {
	return slices.Clone(c.questionIDs)
}

// TotalQuestions is the number of questions across all categories.
func (c *Catalog) TotalQuestions() int {
	return len(c.questionIDs)
}

// WeightSum is the sum of all category weights.
func (c *Catalog) WeightSum() float64 {
	var sum float64
	for _, cat := range c.categories {
		sum += cat.Weight
	}
	return sum
}

// WeightsNormalized reports whether the weights sum to 1 within tolerance.
// Scores are only guaranteed to stay within [0,100] when they do.
func (c *Catalog) WeightsNormalized(tolerance float64) bool {
	return math.Abs(c.WeightSum()-1) <= tolerance
}
