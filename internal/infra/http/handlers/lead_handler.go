package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
	"github.com/rafaelcosta1/atende-crm/internal/usecase"
)

const leadListingCacheTTL = 30 * time.Second

type LeadHandler struct {
	LeadRepo       entity.LeadRepositoryInterface
	UserRepo       entity.UserRepositoryInterface
	CreateLeadUC   *usecase.CreateLeadUseCase
	ChangeStatusUC *usecase.ChangeLeadStatusUseCase
	Cache          usecase.CachePort
	rateLimiter    *RateLimiter
}

func NewLeadHandler(
	leadRepo entity.LeadRepositoryInterface,
	userRepo entity.UserRepositoryInterface,
	createLeadUC *usecase.CreateLeadUseCase,
	changeStatusUC *usecase.ChangeLeadStatusUseCase,
	cache usecase.CachePort,
) *LeadHandler {
	return &LeadHandler{
		LeadRepo:       leadRepo,
		UserRepo:       userRepo,
		CreateLeadUC:   createLeadUC,
		ChangeStatusUC: changeStatusUC,
		Cache:          cache,
		rateLimiter:    NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

// Create (POST /leads) é o cadastro manual pela equipe
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	output, err := h.CreateLeadUC.Execute(r.Context(), orgID, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// CaptureLead (POST /capture/{orgID}) é o intake público de canais
// inbound (landing page, formulários). Sem header de tenant, por isso
// protegido por rate limit.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{
			"error": "Too many requests. Please try again later.",
		})
		return
	}

	orgID := chi.URLParam(r, "orgID")

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	if input.Source == "" {
		input.Source = "website"
	}

	output, err := h.CreateLeadUC.Execute(r.Context(), orgID, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// List (GET /leads?status=) devolve a listagem cacheada por tenant+filtro
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	status := r.URL.Query().Get("status")

	cacheKey := "leads:" + orgID + ":" + status
	if h.Cache != nil {
		if cached, err := h.Cache.Get(r.Context(), cacheKey); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	leads, err := h.LeadRepo.ListByOrganization(r.Context(), orgID, status)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar leads"})
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}

	body, err := json.Marshal(leads)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar leads"})
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Set(r.Context(), cacheKey, string(body), leadListingCacheTTL); err != nil {
			log.Printf("⚠️ Cache: falha ao gravar listagem de %s: %v", orgID, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Get (GET /leads/{id})
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	leadID := chi.URLParam(r, "id")

	lead, err := h.LeadRepo.FindByID(r.Context(), orgID, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead não encontrado"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao buscar lead"})
		return
	}
	if lead.Deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead não encontrado"})
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// ChangeStatus (POST /leads/{id}/status) é o portão do funil
func (h *LeadHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	leadID := chi.URLParam(r, "id")

	var input usecase.ChangeLeadStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	lead, err := h.ChangeStatusUC.Execute(r.Context(), orgID, leadID, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Delete (DELETE /leads/{id}[?hard=true]): soft delete por padrão,
// remoção definitiva apenas para admin.
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	leadID := chi.URLParam(r, "id")

	if r.URL.Query().Get("hard") == "true" {
		userID := r.Header.Get("X-User-ID")
		user, err := h.UserRepo.FindByID(r.Context(), orgID, userID)
		if err != nil || !user.CanHardDelete() {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": entity.ErrNotAllowed.Error()})
			return
		}
		if err := h.LeadRepo.Delete(r.Context(), orgID, leadID); err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead não encontrado"})
			return
		}
	} else {
		if err := h.LeadRepo.SoftDelete(r.Context(), orgID, leadID); err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead não encontrado"})
			return
		}
	}

	if h.Cache != nil {
		if err := h.Cache.DeletePattern(r.Context(), "leads:"+orgID+":*"); err != nil {
			log.Printf("⚠️ Cache: falha ao invalidar listagens de %s: %v", orgID, err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
