package rest

import (
	"net/http"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/port/usecases_port"
	"realty-backoffice/internal/wire"
)

// listingHandlers - общие маршруты чтения и удаления для предложений и заявок
type listingHandlers[T, D any] struct {
	entity     domain.EntityKind
	fieldNames map[string]string
	toDTO      func(T) D

	listUC   usecases_port.ListRecordsUseCase[T]
	allUC    usecases_port.FindAllRecordsUseCase[T]
	getUC    usecases_port.GetRecordUseCase[T]
	deleteUC usecases_port.DeleteRecordUseCase
}

func (h *listingHandlers[T, D]) decodeQuery(r *http.Request) (listing.Query, error) {
	return wire.DecodeQuery(h.entity, r.URL.Query(), listing.DefaultServerPageSize)
}

// Filtered - GET /: все записи по фильтрам, плоским массивом
func (h *listingHandlers[T, D]) Filtered(w http.ResponseWriter, r *http.Request) {
	q, err := h.decodeQuery(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	items, err := h.allUC.Execute(r.Context(), q)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.Convert(items, h.toDTO))
}

// All - GET /all: все записи без фильтров
func (h *listingHandlers[T, D]) All(w http.ResponseWriter, r *http.Request) {
	items, err := h.allUC.Execute(r.Context(), listing.Query{})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.Convert(items, h.toDTO))
}

// Paginated - GET /paginated: одна страница в конверте {content, totalElements, ...}
func (h *listingHandlers[T, D]) Paginated(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "Paginated",
		"entity":  string(h.entity),
	})

	q, err := h.decodeQuery(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	res, err := h.listUC.Execute(r.Context(), q)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}

	logger.Debug("Page served", port.Fields{"page": res.Page, "total": res.Total})
	RespondWithJSON(w, http.StatusOK, wire.NewPageDTO(res, h.toDTO))
}

func (h *listingHandlers[T, D]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	item, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, h.toDTO(*item))
}

func (h *listingHandlers[T, D]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		writeError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
