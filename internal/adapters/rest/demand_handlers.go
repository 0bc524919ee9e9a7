package rest

import (
	"net/http"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port/usecases_port"
	"realty-backoffice/internal/wire"
)

// DemandUseCases - сценарии маршрутов /demandes
type DemandUseCases struct {
	List   usecases_port.ListRecordsUseCase[domain.Demand]
	All    usecases_port.FindAllRecordsUseCase[domain.Demand]
	Get    usecases_port.GetRecordUseCase[domain.Demand]
	Delete usecases_port.DeleteRecordUseCase
	Create usecases_port.CreateDemandUseCase
	Update usecases_port.UpdateDemandUseCase
}

type DemandHandlers struct {
	listingHandlers[domain.Demand, wire.DemandDTO]
	createUC usecases_port.CreateDemandUseCase
	updateUC usecases_port.UpdateDemandUseCase
}

func NewDemandHandlers(uc DemandUseCases) *DemandHandlers {
	return &DemandHandlers{
		listingHandlers: listingHandlers[domain.Demand, wire.DemandDTO]{
			entity:     domain.EntityDemand,
			fieldNames: wire.DemandFieldNames,
			toDTO:      wire.NewDemandDTO,
			listUC:     uc.List,
			allUC:      uc.All,
			getUC:      uc.Get,
			deleteUC:   uc.Delete,
		},
		createUC: uc.Create,
		updateUC: uc.Update,
	}
}

func (h *DemandHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var dto wire.DemandDTO
	if err := decodeJSON(r, &dto); err != nil {
		writeError(w, r, err, nil)
		return
	}
	demand, err := h.createUC.Execute(r.Context(), dto.Draft())
	if err != nil {
		writeError(w, r, err, h.fieldNames)
		return
	}
	RespondWithJSON(w, http.StatusCreated, wire.NewDemandDTO(*demand))
}

func (h *DemandHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	var dto wire.DemandDTO
	if err := decodeJSON(r, &dto); err != nil {
		writeError(w, r, err, nil)
		return
	}
	demand, err := h.updateUC.Execute(r.Context(), id, dto.Draft())
	if err != nil {
		writeError(w, r, err, h.fieldNames)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.NewDemandDTO(*demand))
}
