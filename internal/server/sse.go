package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

// EventHub fans notifications out to each user's live SSE streams. Delivery
// is best effort; a slow subscriber drops events rather than blocking the
// mutation that produced them.
type EventHub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan db.Notification]struct{}
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[uuid.UUID]map[chan db.Notification]struct{})}
}

// Subscribe registers a stream for the user. The returned cancel func must be
// called when the stream ends.
func (h *EventHub) Subscribe(userID uuid.UUID) (<-chan db.Notification, func()) {
	ch := make(chan db.Notification, 16)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan db.Notification]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a notification to the user's live streams.
func (h *EventHub) Publish(userID uuid.UUID, n db.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- n:
		default:
		}
	}
}

// SSEWriter writes server-sent events to a response.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares the response for an event stream. It returns an error
// if the connection cannot flush incrementally.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// SendEvent writes one named event with a JSON payload.
func (s *SSEWriter) SendEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SendComment writes a comment line, used as a keepalive.
func (s *SSEWriter) SendComment(comment string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", comment); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
