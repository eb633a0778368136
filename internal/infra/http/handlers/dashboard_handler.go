package handlers

import (
	"net/http"
	"time"

	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
	"github.com/rafaelcosta1/atende-crm/internal/usecase"
)

type DashboardHandler struct {
	DashboardUC *usecase.DashboardUseCase
}

func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{DashboardUC: dashboardUC}
}

// Get (GET /dashboard?from=&to=), por padrão o mês corrente
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if v := r.URL.Query().Get("from"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			from = parsed
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			to = parsed
		}
	}

	output, err := h.DashboardUC.Execute(r.Context(), orgID, from, to)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
