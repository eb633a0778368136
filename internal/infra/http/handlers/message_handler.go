package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
	"github.com/rafaelcosta1/atende-crm/internal/usecase"
)

type MessageHandler struct {
	MessageRepo entity.MessageRepositoryInterface
	SendUC      *usecase.SendMessageUseCase
}

func NewMessageHandler(messageRepo entity.MessageRepositoryInterface, sendUC *usecase.SendMessageUseCase) *MessageHandler {
	return &MessageHandler{
		MessageRepo: messageRepo,
		SendUC:      sendUC,
	}
}

// Send (POST /leads/{id}/messages) faz a mutação otimista: se a entrega
// falhar a mensagem tentativa é removida e a UI recebe o erro.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	leadID := chi.URLParam(r, "id")

	var input usecase.SendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	input.LeadID = leadID

	message, err := h.SendUC.Execute(r.Context(), orgID, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, message)
}

// List (GET /leads/{id}/messages)
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrganizationID(r)
	leadID := chi.URLParam(r, "id")

	messages, err := h.MessageRepo.ListByLead(r.Context(), orgID, leadID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar mensagens"})
		return
	}
	if messages == nil {
		messages = []*entity.Message{}
	}

	writeJSON(w, http.StatusOK, messages)
}
