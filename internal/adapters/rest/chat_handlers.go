package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/port/usecases_port"
	"realty-backoffice/internal/wire"
)

type ChatHandlers struct {
	sendUC   usecases_port.SendChatMessageUseCase
	streamUC usecases_port.StreamChatMessageUseCase
	clearUC  usecases_port.ClearChatMemoryUseCase
	healthUC usecases_port.ChatHealthUseCase
	now      func() time.Time
}

func NewChatHandlers(
	sendUC usecases_port.SendChatMessageUseCase,
	streamUC usecases_port.StreamChatMessageUseCase,
	clearUC usecases_port.ClearChatMemoryUseCase,
	healthUC usecases_port.ChatHealthUseCase,
) *ChatHandlers {
	return &ChatHandlers{sendUC: sendUC, streamUC: streamUC, clearUC: clearUC, healthUC: healthUC, now: time.Now}
}

// Send обрабатывает POST /chat/send. Ошибки тоже отдаются в формате ответа чата.
func (h *ChatHandlers) Send(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req wire.ChatRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}

	reply, err := h.sendUC.Execute(r.Context(), principal.UserID.String(), req.Message)
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Chat request failed", port.Fields{"error": err.Error()})
		RespondWithJSON(w, statusFor(err), wire.ChatResponseDTO{
			Timestamp: h.now().UTC(),
			Success:   false,
			Error:     err.Error(),
		})
		return
	}

	RespondWithJSON(w, http.StatusOK, wire.ChatResponseDTO{
		Response:  reply.Response,
		Timestamp: reply.Timestamp,
		Success:   true,
	})
}

// Stream обрабатывает POST /chat/stream: части ответа уходят SSE-событиями
func (h *ChatHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ChatStream"})

	principal, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	var req wire.ChatRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, nil)
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
	w.WriteHeader(http.StatusOK)

	writeChunk := func(event string, payload interface{}) error {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	err := h.streamUC.Execute(r.Context(), principal.UserID.String(), req.Message, func(chunk string) error {
		return writeChunk("chunk", wire.ChatChunkDTO{Content: chunk})
	})
	if err != nil {
		logger.Warn("Chat stream failed", port.Fields{"error": err.Error()})
		_ = writeChunk("error", wire.ChatResponseDTO{Timestamp: h.now().UTC(), Error: err.Error()})
		return
	}
	_ = writeChunk("done", wire.ChatChunkDTO{Done: true})
}

// ClearMemory обрабатывает POST /chat/clear-memory
func (h *ChatHandlers) ClearMemory(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	if err := h.clearUC.Execute(r.Context(), principal.UserID.String()); err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.MessageDTO{Success: true, Message: "Conversation memory cleared"})
}

// Health обрабатывает GET /chat/health
func (h *ChatHandlers) Health(w http.ResponseWriter, r *http.Request) {
	health := h.healthUC.Execute(r.Context())
	status := http.StatusOK
	if !health.Available {
		status = http.StatusServiceUnavailable
	}
	RespondWithJSON(w, status, wire.ChatHealthDTO{
		Status:    health.Status,
		Model:     health.Model,
		ModelURL:  health.ModelURL,
		Available: health.Available,
		Timestamp: health.Timestamp,
	})
}
