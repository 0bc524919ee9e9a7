package rest

import (
	"net/http"

	"realty-backoffice/internal/core/port/usecases_port"
	"realty-backoffice/internal/wire"
)

type DashboardHandler struct {
	statsUC usecases_port.GetDashboardStatsUseCase
}

func NewDashboardHandler(statsUC usecases_port.GetDashboardStatsUseCase) *DashboardHandler {
	return &DashboardHandler{statsUC: statsUC}
}

// Statistics - GET /dashboard/statistiques, только для администраторов
func (h *DashboardHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUC.Execute(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.NewDashboardDTO(*stats))
}
