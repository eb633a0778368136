package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/usecase"
)

// TestSendMessageSuccess - mensagem é gravada como pendente, entregue
// no Z-API e promovida para sent.
func TestSendMessageSuccess(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockGateway := new(MockWhatsAppGateway)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockGateway.On("SendMessage", ctx, mock.Anything).Return(nil)
	mockRepo.On("UpdateStatus", ctx, "org-1", mock.Anything, entity.MessageSent).Return(nil)

	uc := usecase.NewSendMessageUseCase(mockRepo, mockGateway)

	message, err := uc.Execute(ctx, "org-1", usecase.SendMessageInput{
		LeadID: "lead-123",
		Phone:  "5511999998888",
		Body:   "Olá! Podemos agendar uma visita?",
	})

	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, entity.MessageSent, message.Status)

	mockRepo.AssertCalled(t, "Create", ctx, mock.Anything)
	mockGateway.AssertCalled(t, "SendMessage", ctx, mock.Anything)
	mockRepo.AssertNotCalled(t, "Delete")
}

// TestSendMessageDeliveryFailureRollsBack - não-2xx do Z-API desfaz a
// linha pendente e devolve erro para a UI.
func TestSendMessageDeliveryFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockGateway := new(MockWhatsAppGateway)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockGateway.On("SendMessage", ctx, mock.Anything).Return(errors.New("z-api error: 500"))
	mockRepo.On("Delete", ctx, "org-1", mock.Anything).Return(nil)

	uc := usecase.NewSendMessageUseCase(mockRepo, mockGateway)

	message, err := uc.Execute(ctx, "org-1", usecase.SendMessageInput{
		LeadID: "lead-123",
		Phone:  "5511999998888",
		Body:   "Olá!",
	})

	assert.Error(t, err)
	assert.Nil(t, message)
	assert.True(t, usecase.IsTechnicalError(err))

	// A mensagem tentativa foi removida (rollback da mutação otimista)
	mockRepo.AssertCalled(t, "Delete", ctx, "org-1", mock.Anything)
	mockRepo.AssertNotCalled(t, "UpdateStatus")
}

// TestSendMessagePersistFailure - se nem a fase pendente grava, não há
// nada para compensar nem entregar.
func TestSendMessagePersistFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockGateway := new(MockWhatsAppGateway)

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("database down"))

	uc := usecase.NewSendMessageUseCase(mockRepo, mockGateway)

	message, err := uc.Execute(ctx, "org-1", usecase.SendMessageInput{
		LeadID: "lead-123",
		Phone:  "5511999998888",
		Body:   "Olá!",
	})

	assert.Error(t, err)
	assert.Nil(t, message)
	mockGateway.AssertNotCalled(t, "SendMessage")
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestSendMessageValidationFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockGateway := new(MockWhatsAppGateway)

	uc := usecase.NewSendMessageUseCase(mockRepo, mockGateway)

	// Sem corpo e sem mídia
	message, err := uc.Execute(ctx, "org-1", usecase.SendMessageInput{
		LeadID: "lead-123",
		Phone:  "5511999998888",
	})

	assert.Error(t, err)
	assert.Nil(t, message)
	assert.True(t, usecase.IsDomainError(err))
	mockRepo.AssertNotCalled(t, "Create")
}

// TestSendMessageMediaOnly - mídia sem texto é um envio válido.
func TestSendMessageMediaOnly(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockGateway := new(MockWhatsAppGateway)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockGateway.On("SendMessage", ctx, mock.Anything).Return(nil)
	mockRepo.On("UpdateStatus", ctx, "org-1", mock.Anything, entity.MessageSent).Return(nil)

	uc := usecase.NewSendMessageUseCase(mockRepo, mockGateway)

	message, err := uc.Execute(ctx, "org-1", usecase.SendMessageInput{
		LeadID:    "lead-123",
		Phone:     "5511999998888",
		MediaURL:  "https://storage.example.com/org-1/prop-9/planta.pdf",
		MediaType: "document",
	})

	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, "document", message.MediaType)
}
