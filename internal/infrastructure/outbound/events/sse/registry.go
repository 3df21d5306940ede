package sse

import (
	"context"
	"log/slog"
	"sync"

	"blog-service/internal/domain/idgen"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

const minBufferSize = 1

// Subscriber is one open event stream. Its channel is closed once it is unsubscribed.
type Subscriber struct {
	ID     int64
	events chan model.Event
}

func (s *Subscriber) Events() <-chan model.Event {
	return s.events
}

// Registry tracks open event streams and fans events out to them.
// Sends never block: a subscriber whose buffer is full misses that event.
type Registry struct {
	mu          sync.Mutex
	subscribers map[int64]*Subscriber
	closed      bool
	bufferSize  int
	ids         *idgen.Generator
	log         ports.Logger
	metrics     ports.MetricsProvider
}

func NewRegistry(bufferSize int, log ports.Logger, metrics ports.MetricsProvider) *Registry {
	if bufferSize < minBufferSize {
		bufferSize = minBufferSize
	}
	return &Registry{
		subscribers: make(map[int64]*Subscriber),
		bufferSize:  bufferSize,
		ids:         idgen.New(),
		log:         log,
		metrics:     metrics,
	}
}

// Subscribe registers a new stream and queues the "connected" acknowledgement as its first event.
// After Close it returns a subscriber whose channel is already closed.
func (r *Registry) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID:     r.ids.Next(),
		events: make(chan model.Event, r.bufferSize),
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		close(sub.events)
		r.log.Debug("Subscriber rejected, registry closed", slog.Int64("subscriber_id", sub.ID))
		return sub
	}
	sub.events <- model.Event{Name: model.EventConnected}
	r.subscribers[sub.ID] = sub
	count := len(r.subscribers)
	r.mu.Unlock()

	r.metrics.SetActiveConnections(count)
	r.log.Debug("Subscriber connected", slog.Int64("subscriber_id", sub.ID), slog.Int("subscribers", count))
	return sub
}

// Unsubscribe is a no-op for unknown ids.
func (r *Registry) Unsubscribe(id int64) {
	r.mu.Lock()
	sub, ok := r.subscribers[id]
	if ok {
		delete(r.subscribers, id)
		close(sub.events)
	}
	count := len(r.subscribers)
	r.mu.Unlock()

	if !ok {
		return
	}
	r.metrics.SetActiveConnections(count)
	r.log.Debug("Subscriber disconnected", slog.Int64("subscriber_id", id), slog.Int("subscribers", count))
}

func (r *Registry) Broadcast(ctx context.Context, event model.Event) int {
	r.mu.Lock()
	delivered, dropped := 0, 0
	for id, sub := range r.subscribers {
		select {
		case sub.events <- event:
			delivered++
		default:
			dropped++
			r.log.Warn("Subscriber buffer full, dropping event",
				slog.Int64("subscriber_id", id),
				slog.String("event", event.Name))
		}
	}
	r.mu.Unlock()

	r.metrics.IncrementBroadcastEvents(event.Name, delivered, dropped)
	r.log.Debug("Event broadcast",
		slog.String("event", event.Name),
		slog.Int("delivered", delivered),
		slog.Int("dropped", dropped))
	return delivered
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}

// Close drops every subscriber; their streams end once they drain.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	for id, sub := range r.subscribers {
		delete(r.subscribers, id)
		close(sub.events)
	}
	r.mu.Unlock()

	r.metrics.SetActiveConnections(0)
}
