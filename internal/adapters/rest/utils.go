package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/wire"

	"github.com/go-chi/chi/v5"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, wire.ErrorDTO{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// statusFor переводит доменную ошибку в HTTP-статус
func statusFor(err error) int {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, domain.ErrUnsupportedImage),
		errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOfferNotFound),
		errors.Is(err, domain.ErrDemandNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, domain.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrChatUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError отвечает по доменной ошибке. Ошибки проверки отдаются с полями,
// имена которых переводятся через names. Текст 500 наружу не уходит.
func writeError(w http.ResponseWriter, r *http.Request, err error, names map[string]string) {
	logger := contextkeys.LoggerFromContext(r.Context())
	status := statusFor(err)

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		fields := vErr.Fields
		if names != nil {
			fields = wire.RenameFields(fields, names)
		}
		RespondWithJSON(w, status, wire.ErrorDTO{Error: "Validation failed", Fields: fields})
		return
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed with an unexpected error", err, nil)
		WriteJSONError(w, status, "Internal server error")
		return
	}
	logger.Warn("Request rejected", port.Fields{"status_code": status, "error": err.Error()})
	WriteJSONError(w, status, err.Error())
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domain.ValidationError{Fields: map[string]string{"body": "is not a valid JSON document"}}
	}
	return nil
}

// pathID читает {id} из пути
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Fields: map[string]string{"id": "must be a positive integer"}}
	}
	return id, nil
}

func principalOrUnauthorized(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := contextkeys.PrincipalFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
	}
	return p, ok
}
