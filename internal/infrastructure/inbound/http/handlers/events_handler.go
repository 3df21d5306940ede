package http_handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/outbound/events/sse"
)

type EventSubscriber interface {
	Subscribe() *sse.Subscriber
	Unsubscribe(id int64)
}

// EventsHandler streams events as text/event-stream until the client goes away
// or the subscriber is closed on shutdown.
type EventsHandler struct {
	subscribers EventSubscriber
	log         ports.Logger
}

func NewEventsHandler(subscribers EventSubscriber, log ports.Logger) *EventsHandler {
	return &EventsHandler{
		subscribers: subscribers,
		log:         log,
	}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, h.log, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.subscribers.Subscribe()
	defer h.subscribers.Unsubscribe(sub.ID)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				h.log.Error("Failed to encode event", slog.String("event", event.Name), slog.String("error", err.Error()))
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				h.log.Debug("Event stream write failed",
					slog.Int64("subscriber_id", sub.ID),
					slog.String("error", err.Error()))
				return
			}
			flusher.Flush()
		}
	}
}
