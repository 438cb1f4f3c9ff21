package store

import (
	"context"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
)

// ResponseStore persists completed questionnaire responses.
// Each user has at most one stored response.
type ResponseStore interface {
	// SaveResponse stores the response, replacing any earlier snapshot for the
	// same user. The write is atomic: either the whole snapshot is stored or
	// nothing changes.
	// Returns ErrInvalidEntity if the response fails domain validation.
	SaveResponse(ctx context.Context, response *domain.CompatibilityResponse) error

	// GetResponse retrieves the latest completed response for a user.
	// Returns ErrResponseNotFound if the user has not submitted one.
	GetResponse(ctx context.Context, userID string) (*domain.CompatibilityResponse, error)
}
