package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/logger"
)

// AsyncTrackerConfig holds configuration for the async tracker.
type AsyncTrackerConfig struct {
	// QueueSize is the number of events buffered before new ones are dropped.
	// If zero or negative, the DefaultAsyncTrackerConfig value is used.
	QueueSize int

	// WorkerCount determines how many goroutines deliver events.
	// If zero or negative, the DefaultAsyncTrackerConfig value is used.
	WorkerCount int
}

// DefaultAsyncTrackerConfig returns an AsyncTrackerConfig with reasonable defaults
func DefaultAsyncTrackerConfig() AsyncTrackerConfig {
	return AsyncTrackerConfig{
		QueueSize:   256,
		WorkerCount: 2,
	}
}

type queuedEvent struct {
	ctx   context.Context
	event *Event
}

// AsyncTracker is a fire-and-forget Tracker. Events go into a bounded
// queue and a pool of workers passes them to the emitter.
type AsyncTracker struct {
	emitter EventEmitter
	queue   chan queuedEvent
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	dropped atomic.Int64
}

// NewAsyncTracker creates an AsyncTracker and starts its workers.
func NewAsyncTracker(emitter EventEmitter, config AsyncTrackerConfig, l *slog.Logger) *AsyncTracker {
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if l == nil {
		l = slog.Default()
	}
	l = l.With("component", "async_tracker")

	defaults := DefaultAsyncTrackerConfig()
	if config.QueueSize <= 0 {
		l.Warn("invalid queue size specified, using default",
			"specified_size", config.QueueSize,
			"default_size", defaults.QueueSize)
		config.QueueSize = defaults.QueueSize
	}
	if config.WorkerCount <= 0 {
		l.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", defaults.WorkerCount)
		config.WorkerCount = defaults.WorkerCount
	}

	t := &AsyncTracker{
		emitter: emitter,
		queue:   make(chan queuedEvent, config.QueueSize),
		logger:  l,
	}

	for i := 0; i < config.WorkerCount; i++ {
		t.wg.Add(1)
		go t.worker(i)
	}

	l.Info("async tracker started",
		"worker_count", config.WorkerCount,
		"queue_size", config.QueueSize)

	return t
}

var _ Tracker = (*AsyncTracker)(nil)

// Track queues the event without blocking. The event is dropped when the
// queue is full or the tracker is closed. Cancellation of ctx does not
// cancel delivery; its values (such as the request logger) are kept.
func (t *AsyncTracker) Track(ctx context.Context, name string, params map[string]string) {
	event := NewEvent(name, params)
	log := logger.FromContextOrDefault(ctx, t.logger)

	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		t.dropped.Add(1)
		log.Warn("analytics event dropped, tracker closed",
			"event_id", event.ID,
			"event_name", name)
		return
	}

	select {
	case t.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
		log.Debug("analytics event queued",
			"event_id", event.ID,
			"event_name", name,
			"queue_len", len(t.queue),
			"queue_cap", cap(t.queue))
	default:
		t.dropped.Add(1)
		log.Warn("analytics event dropped, queue full",
			"event_id", event.ID,
			"event_name", name,
			"queue_cap", cap(t.queue))
	}
}

// Dropped returns how many events were discarded.
func (t *AsyncTracker) Dropped() int64 {
	return t.dropped.Load()
}

// Close stops accepting events and waits until queued events are delivered
// or ctx is done.
func (t *AsyncTracker) Close(ctx context.Context) error {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.queue)
	}
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("async tracker stopped", "dropped", t.Dropped())
		return nil
	case <-ctx.Done():
		t.logger.Warn("async tracker stop timed out", "error", ctx.Err())
		return ctx.Err()
	}
}

func (t *AsyncTracker) worker(id int) {
	defer t.wg.Done()

	for item := range t.queue {
		if err := t.emitter.EmitEvent(item.ctx, item.event); err != nil {
			t.logger.Error("failed to deliver analytics event",
				"worker_id", id,
				"event_id", item.event.ID,
				"event_name", item.event.Name,
				"error", err)
		}
	}

	t.logger.Debug("worker stopping", "worker_id", id)
}
