package usecase

import (
	"context"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
	"github.com/rafaelcosta1/atende-crm/internal/infra/integration/zapi"
)

// SendMessageUseCase aplica a mutação otimista do chat: grava a mensagem
// como pendente, dispara para o Z-API e, se a entrega falhar, remove a
// linha tentativa (rollback) e devolve o erro para a UI.
type SendMessageUseCase struct {
	MessageRepo entity.MessageRepositoryInterface
	Gateway     WhatsAppGateway
}

func NewSendMessageUseCase(messageRepo entity.MessageRepositoryInterface, gateway WhatsAppGateway) *SendMessageUseCase {
	return &SendMessageUseCase{
		MessageRepo: messageRepo,
		Gateway:     gateway,
	}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, orgID string, input SendMessageInput) (*entity.Message, error) {
	validationErrors := ValidateSendMessageInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	message := entity.NewMessage(orgID, input.LeadID, input.Phone, input.Body)
	message.MediaURL = input.MediaURL
	message.MediaType = input.MediaType

	txn := NewMutation()

	// Fase 1: estado tentativo (a UI já mostra a mensagem como pendente)
	txn.AddOperation("persist_pending_message", func(ctx context.Context) error {
		return uc.MessageRepo.Create(ctx, message)
	})

	txn.AddCompensation("remove_pending_message", func(ctx context.Context) error {
		return uc.MessageRepo.Delete(ctx, orgID, message.ID)
	})

	// Fase 2: entrega. Não-2xx do Z-API desfaz a fase 1.
	txn.AddOperation("deliver_whatsapp", func(ctx context.Context) error {
		return uc.Gateway.SendMessage(ctx, zapi.SendMessageInput{
			Phone:     message.Phone,
			Message:   message.Body,
			MediaURL:  message.MediaURL,
			MediaType: message.MediaType,
		})
	})

	if err := txn.Execute(ctx); err != nil {
		middleware.RecordIntegrationError("zapi")
		return nil, &TechnicalError{
			Code:    "DELIVERY_FAILED",
			Message: "não foi possível enviar a mensagem: " + err.Error(),
		}
	}

	if err := uc.MessageRepo.UpdateStatus(ctx, orgID, message.ID, entity.MessageSent); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to mark message as sent: " + err.Error()}
	}
	message.Status = entity.MessageSent

	return message, nil
}
