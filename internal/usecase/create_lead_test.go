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

// TestCreateLeadSuccess - fluxo completo: persiste, publica o webhook e
// invalida as listagens cacheadas.
func TestCreateLeadSuccess(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockQueue := new(MockQueueProducer)
	mockCache := new(MockCachePort)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockQueue.On("PublishLeadCreated", ctx, mock.Anything).Return(nil)
	mockCache.On("DeletePattern", ctx, "leads:org-1:*").Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockRepo, mockQueue, mockCache)

	output, err := uc.Execute(ctx, "org-1", usecase.CreateLeadInput{
		Name:        "Maria Souza",
		Phone:       "(11) 99999-8888",
		Email:       "maria@example.com",
		Source:      "instagram",
		Interest:    "Apartamento 2 quartos",
		BudgetCents: 45000000,
		Temperature: entity.TemperatureHot,
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.NotEmpty(t, output.ID)
	assert.Equal(t, entity.StatusNew, output.Status)
	assert.Equal(t, "Lead cadastrado com sucesso!", output.Msg)

	mockRepo.AssertCalled(t, "Create", ctx, mock.Anything)
	mockQueue.AssertCalled(t, "PublishLeadCreated", ctx, mock.Anything)
	mockCache.AssertCalled(t, "DeletePattern", ctx, "leads:org-1:*")
}

// TestCreateLeadValidationFailure - sem nome não passa da validação.
func TestCreateLeadValidationFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	uc := usecase.NewCreateLeadUseCase(mockRepo, nil, nil)

	output, err := uc.Execute(ctx, "org-1", usecase.CreateLeadInput{
		Name:  "",
		Phone: "(11) 99999-8888",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, usecase.IsDomainError(err))
	mockRepo.AssertNotCalled(t, "Create")
}

// TestCreateLeadRequiresContact - precisa de telefone ou email.
func TestCreateLeadRequiresContact(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	uc := usecase.NewCreateLeadUseCase(mockRepo, nil, nil)

	output, err := uc.Execute(ctx, "org-1", usecase.CreateLeadInput{
		Name: "Maria Souza",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, usecase.IsDomainError(err))
	mockRepo.AssertNotCalled(t, "Create")
}

// TestCreateLeadQueueFailureIsSwallowed - o webhook é fire-and-forget:
// falha na fila não desfaz o lead já salvo.
func TestCreateLeadQueueFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockQueue.On("PublishLeadCreated", ctx, mock.Anything).Return(errors.New("broker unavailable"))

	uc := usecase.NewCreateLeadUseCase(mockRepo, mockQueue, nil)

	output, err := uc.Execute(ctx, "org-1", usecase.CreateLeadInput{
		Name:  "Maria Souza",
		Phone: "(11) 99999-8888",
	})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	mockQueue.AssertCalled(t, "PublishLeadCreated", ctx, mock.Anything)
}

func TestCreateLeadDatabaseFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

	uc := usecase.NewCreateLeadUseCase(mockRepo, mockQueue, nil)

	output, err := uc.Execute(ctx, "org-1", usecase.CreateLeadInput{
		Name:  "Maria Souza",
		Phone: "(11) 99999-8888",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, usecase.IsTechnicalError(err))
	mockQueue.AssertNotCalled(t, "PublishLeadCreated")
}

func TestCreateLeadInvalidTemperature(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	uc := usecase.NewCreateLeadUseCase(mockRepo, nil, nil)

	output, err := uc.Execute(ctx, "org-1", usecase.CreateLeadInput{
		Name:        "Maria Souza",
		Phone:       "(11) 99999-8888",
		Temperature: "boiling",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, usecase.IsDomainError(err))
}
