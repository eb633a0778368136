package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
	"github.com/rafaelcosta1/atende-crm/internal/infra/storage"
)

const maxImageSize = 10 << 20 // 10MB

type PropertyHandler struct {
	PropertyRepo entity.PropertyRepositoryInterface
	Uploader     *storage.Uploader
}

func NewPropertyHandler(propertyRepo entity.PropertyRepositoryInterface, uploader *storage.Uploader) *PropertyHandler {
	return &PropertyHandler{
		PropertyRepo: propertyRepo,
		Uploader:     uploader,
	}
}

type createPropertyRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	PriceCents  int64          `json:"price_cents"`
	Address     entity.Address `json:"address"`
}

// Create (POST /properties)
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	property, err := entity.NewProperty(orgID, req.Title, req.PriceCents, req.Address)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	property.Description = req.Description

	if err := h.PropertyRepo.Create(r.Context(), property); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao salvar imóvel"})
		return
	}

	writeJSON(w, http.StatusCreated, property)
}

// List (GET /properties)
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)

	properties, err := h.PropertyRepo.ListByOrganization(r.Context(), orgID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar imóveis"})
		return
	}
	if properties == nil {
		properties = []*entity.Property{}
	}

	writeJSON(w, http.StatusOK, properties)
}

// Get (GET /properties/{id})
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	propertyID := chi.URLParam(r, "id")

	property, err := h.PropertyRepo.FindByID(r.Context(), orgID, propertyID)
	if err != nil {
		if errors.Is(err, entity.ErrPropertyNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "imóvel não encontrado"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao buscar imóvel"})
		return
	}

	writeJSON(w, http.StatusOK, property)
}

// Update (PUT /properties/{id})
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	propertyID := chi.URLParam(r, "id")

	property, err := h.PropertyRepo.FindByID(r.Context(), orgID, propertyID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "imóvel não encontrado"})
		return
	}

	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	property.Title = req.Title
	property.Description = req.Description
	property.PriceCents = req.PriceCents
	property.Address = req.Address

	if err := property.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.PropertyRepo.Update(r.Context(), property); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao atualizar imóvel"})
		return
	}

	writeJSON(w, http.StatusOK, property)
}

// UploadImage (POST /properties/{id}/images) recebe multipart; a URL pública
// volta na resposta e fica gravada no imóvel.
func (h *PropertyHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	propertyID := chi.URLParam(r, "id")

	if h.Uploader == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "storage não configurado"})
		return
	}

	if _, err := h.PropertyRepo.FindByID(r.Context(), orgID, propertyID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "imóvel não encontrado"})
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "arquivo inválido ou grande demais"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "campo 'image' é obrigatório"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao ler arquivo"})
		return
	}

	url, err := h.Uploader.Upload(r.Context(), orgID, propertyID, header.Filename,
		header.Header.Get("Content-Type"), data)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "falha no upload"})
		return
	}

	if err := h.PropertyRepo.AddImageURL(r.Context(), orgID, propertyID, url); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gravar URL da imagem"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// Delete (DELETE /properties/{id})
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	propertyID := chi.URLParam(r, "id")

	if err := h.PropertyRepo.Delete(r.Context(), orgID, propertyID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "imóvel não encontrado"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
