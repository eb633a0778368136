package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
)

type ClientHandler struct {
	ClientRepo entity.ClientRepositoryInterface
}

func NewClientHandler(clientRepo entity.ClientRepositoryInterface) *ClientHandler {
	return &ClientHandler{ClientRepo: clientRepo}
}

type clientRequest struct {
	LeadID    string `json:"lead_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
	Notes     string `json:"notes"`
}

// Create (POST /clients)
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	client, err := entity.NewClient(orgID, req.Name, req.Phone, req.Email)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	client.LeadID = req.LeadID
	client.BirthDate = req.BirthDate
	client.Notes = req.Notes

	if err := h.ClientRepo.Create(r.Context(), client); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao salvar cliente"})
		return
	}

	writeJSON(w, http.StatusCreated, client)
}

// List (GET /clients)
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	clients, err := h.ClientRepo.ListByOrganization(r.Context(), orgID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar clientes"})
		return
	}
	if clients == nil {
		clients = []*entity.Client{}
	}

	writeJSON(w, http.StatusOK, clients)
}

// Get (GET /clients/{id})
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	clientID := chi.URLParam(r, "id")

	client, err := h.ClientRepo.FindByID(r.Context(), orgID, clientID)
	if err != nil {
		if errors.Is(err, entity.ErrClientNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "cliente não encontrado"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao buscar cliente"})
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// Update (PUT /clients/{id})
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	clientID := chi.URLParam(r, "id")

	client, err := h.ClientRepo.FindByID(r.Context(), orgID, clientID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cliente não encontrado"})
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = req.Email
	client.BirthDate = req.BirthDate
	client.Notes = req.Notes

	if err := client.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.ClientRepo.Update(r.Context(), client); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao atualizar cliente"})
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// Delete (DELETE /clients/{id})
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	clientID := chi.URLParam(r, "id")

	if err := h.ClientRepo.Delete(r.Context(), orgID, clientID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cliente não encontrado"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
