package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
	"github.com/rafaelcosta1/atende-crm/internal/usecase"
)

type AppointmentHandler struct {
	ApptRepo entity.AppointmentRepositoryInterface
	CreateUC *usecase.CreateAppointmentUseCase
}

func NewAppointmentHandler(apptRepo entity.AppointmentRepositoryInterface, createUC *usecase.CreateAppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{
		ApptRepo: apptRepo,
		CreateUC: createUC,
	}
}

// Create (POST /appointments)
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	var input usecase.CreateAppointmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	appointment, err := h.CreateUC.Execute(r.Context(), orgID, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appointment)
}

// List (GET /appointments?from=&to=), por padrão os próximos 30 dias
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 1, 0)

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

	appointments, err := h.ApptRepo.ListByOrganization(r.Context(), orgID, from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar agendamentos"})
		return
	}
	if appointments == nil {
		appointments = []*entity.Appointment{}
	}

	writeJSON(w, http.StatusOK, appointments)
}

// UpdateStatus (PUT /appointments/{id}/status)
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	apptID := chi.URLParam(r, "id")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !entity.IsValidAppointmentStatus(input.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status inválido: " + input.Status})
		return
	}

	if err := h.ApptRepo.UpdateStatus(r.Context(), orgID, apptID, input.Status); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "agendamento não encontrado"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": input.Status})
}
