package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
)

type TeamHandler struct {
	UserRepo entity.UserRepositoryInterface
}

func NewTeamHandler(userRepo entity.UserRepositoryInterface) *TeamHandler {
	return &TeamHandler{UserRepo: userRepo}
}

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Create (POST /team)
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := entity.NewUser(orgID, req.Name, req.Email, req.Role)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.UserRepo.Create(r.Context(), user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyUsed) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao salvar usuário"})
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// List (GET /team)
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	users, err := h.UserRepo.ListByOrganization(r.Context(), orgID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar equipe"})
		return
	}
	if users == nil {
		users = []*entity.User{}
	}

	writeJSON(w, http.StatusOK, users)
}

// Update (PUT /team/{id})
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	userID := chi.URLParam(r, "id")

	user, err := h.UserRepo.FindByID(r.Context(), orgID, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "usuário não encontrado"})
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role

	if err := user.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.UserRepo.Update(r.Context(), user); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao atualizar usuário"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Delete (DELETE /team/{id})
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	userID := chi.URLParam(r, "id")

	if err := h.UserRepo.Delete(r.Context(), orgID, userID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "usuário não encontrado"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
