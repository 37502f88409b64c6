package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// SSEHandler streams change events to admin clients as server-sent events.
// Clients respond to any event by refetching the resident list in full.
type SSEHandler struct {
	subscriber Subscriber
	logger     *slog.Logger
}

// NewSSEHandler builds the stream handler.
func NewSSEHandler(subscriber Subscriber, logger *slog.Logger) *SSEHandler {
	return &SSEHandler{subscriber: subscriber, logger: logger}
}

func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, err := h.subscriber.Subscribe(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "feed subscribe failed", "error", err)
		http.Error(w, "feed unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			body, err := json.Marshal(event)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "event: changed\ndata: %s\n\n", body)
			flusher.Flush()
		}
	}
}
