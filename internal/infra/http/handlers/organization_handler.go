package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
)

type OrganizationHandler struct {
	OrgRepo entity.OrganizationRepositoryInterface
}

func NewOrganizationHandler(orgRepo entity.OrganizationRepositoryInterface) *OrganizationHandler {
	return &OrganizationHandler{OrgRepo: orgRepo}
}

type organizationRequest struct {
	Name string `json:"name"`
}

// Create (POST /organizations) faz o onboarding de um novo tenant
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	org, err := entity.NewOrganization(req.Name)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.OrgRepo.Create(r.Context(), org); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao criar organização"})
		return
	}

	writeJSON(w, http.StatusCreated, org)
}

// Get (GET /organization) devolve os dados da organização do tenant
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	org, err := h.OrgRepo.FindByID(r.Context(), orgID)
	if err != nil {
		if errors.Is(err, entity.ErrOrganizationNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "organização não encontrada"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao buscar organização"})
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// Update (PUT /organization)
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	org, err := h.OrgRepo.FindByID(r.Context(), orgID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "organização não encontrada"})
		return
	}

	org.Name = req.Name
	if err := h.OrgRepo.Update(r.Context(), org); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao atualizar organização"})
		return
	}

	writeJSON(w, http.StatusOK, org)
}
