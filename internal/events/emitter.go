package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// subscription binds a handler to the event names it receives.
// An empty name set receives every event.
type subscription struct {
	handler EventHandler
	names   []string
}

func (s subscription) wants(name string) bool {
	return len(s.names) == 0 || slices.Contains(s.names, name)
}

// InMemoryEventEmitter dispatches events synchronously to the handlers
// registered for them, in registration order.
type InMemoryEventEmitter struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With(slog.String("component", "event_emitter")),
	}
}

// RegisterHandler subscribes handler to the named events, or to all events
// when no names are given.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler, names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.subs = append(e.subs, subscription{handler: handler, names: slices.Clone(names)})
	e.logger.Debug("registered event handler",
		slog.Int("handler_count", len(e.subs)),
		slog.Any("event_names", names))
}

// EmitEvent delivers event to every subscribed handler. A failing handler
// does not stop delivery to the rest; the first error is returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	var targets []EventHandler
	for _, s := range e.subs {
		if s.wants(event.Name) {
			targets = append(targets, s.handler)
		}
	}
	e.mu.RUnlock()

	if len(targets) == 0 {
		e.logger.Debug("no handlers for event",
			slog.String("event_id", event.ID.String()),
			slog.String("event_name", event.Name))
		return nil
	}

	var firstErr error
	for i, handler := range targets {
		err := handler.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		e.logger.Error("event handler failed",
			slog.String("error", err.Error()),
			slog.Int("handler_index", i),
			slog.String("event_id", event.ID.String()),
			slog.String("event_name", event.Name))
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
