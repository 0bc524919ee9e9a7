package rest

import (
	"fmt"
	"net/http"
	"time"

	"realty-backoffice/internal/adapters/notifier"
	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/port"
)

type EventsHandler struct {
	notifier  *notifier.SSENotifier
	keepAlive time.Duration
}

func NewEventsHandler(n *notifier.SSENotifier) *EventsHandler {
	return &EventsHandler{notifier: n, keepAlive: 15 * time.Second}
}

// Subscribe - GET /events: поток изменений списков
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubscribeToEvents"})

	principal, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.notifier.AddClient(principal.UserID.String())
	defer h.notifier.RemoveClient(clientChan)

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case data := <-clientChan:
			if _, err := w.Write(data); err != nil {
				logger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// строка с двоеточием - комментарий SSE, держит соединение открытым
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-h.notifier.Done():
			logger.Debug("Notifier stopped, closing SSE connection", nil)
			return

		case <-r.Context().Done():
			logger.Info("SSE client disconnected", nil)
			return
		}
	}
}
