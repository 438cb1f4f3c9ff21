package events

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Analytics event names emitted by the report service.
const (
	EventQuestionnaireSubmitted = "questionnaire_submitted"
	EventReportGenerated        = "report_generated"
	EventReportShared           = "report_shared"
)

// Event is a named analytics event with flat string parameters.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Name identifies what happened, e.g. "report_generated"
	Name string `json:"name"`

	// Parameters holds event-specific attributes
	Parameters map[string]string `json:"parameters,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates an Event with a fresh ID. The parameters map is copied.
func NewEvent(name string, params map[string]string) *Event {
	return &Event{
		ID:         uuid.New(),
		Name:       name,
		Parameters: maps.Clone(params),
		CreatedAt:  time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows producers to publish events without knowing the handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// Tracker records analytics events. Track never blocks on delivery and
// never reports failure to the caller.
type Tracker interface {
	Track(ctx context.Context, name string, params map[string]string)
}

// NoopTracker discards every event.
type NoopTracker struct{}

// Track implements Tracker.
func (NoopTracker) Track(context.Context, string, map[string]string) {}

var _ Tracker = NoopTracker{}
