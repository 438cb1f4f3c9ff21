package events

import (
	"context"
	"log/slog"

	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/logger"
)

// LogHandler writes every event to a structured logger. It is the default
// sink when no analytics backend is configured.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler. If l is nil, slog.Default() is used.
func NewLogHandler(l *slog.Logger) *LogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &LogHandler{logger: l.With("component", "analytics")}
}

var _ EventHandler = (*LogHandler)(nil)

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *Event) error {
	attrs := make([]any, 0, len(event.Parameters)+3)
	attrs = append(attrs,
		slog.String("event_id", event.ID.String()),
		slog.String("event_name", event.Name),
		slog.Time("created_at", event.CreatedAt))
	for k, v := range event.Parameters {
		attrs = append(attrs, slog.String(k, v))
	}

	logger.FromContextOrDefault(ctx, h.logger).Info("analytics event", attrs...)
	return nil
}
