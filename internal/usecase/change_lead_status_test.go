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

func newLeadInStatus(t *testing.T, status string) *entity.Lead {
	t.Helper()
	lead, err := entity.NewLead("org-1", "Maria Souza", "11999998888", "maria@example.com", "instagram")
	assert.NoError(t, err)
	if status != entity.StatusNew {
		if status == entity.StatusLost {
			assert.NoError(t, lead.MarkLost(entity.LossReasonOutro, ""))
		} else {
			assert.NoError(t, lead.SetStatus(status))
		}
	}
	return lead
}

// TestChangeStatusHappyPath - transição comum do funil (new -> contacted)
func TestChangeStatusHappyPath(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	lead := newLeadInStatus(t, entity.StatusNew)
	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(nil)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status: entity.StatusContacted,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusContacted, updated.Status)
	assert.Nil(t, updated.Loss)
	mockRepo.AssertCalled(t, "Update", ctx, mock.Anything)
}

// TestChangeStatusToLostWithoutReason - o portão do funil: sem motivo
// confirmado, nada é gravado.
func TestChangeStatusToLostWithoutReason(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	lead := newLeadInStatus(t, entity.StatusContacted)
	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status: entity.StatusLost,
	})

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, usecase.IsDomainError(err))

	var domainErr *usecase.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "LOSS_REASON_REQUIRED", domainErr.Code)

	// O lead permanece intocado no banco
	mockRepo.AssertNotCalled(t, "Update")
	assert.Equal(t, entity.StatusContacted, lead.Status)
}

// TestChangeStatusToLostWithReason - perda confirmada grava status,
// motivo e descrição de uma vez.
func TestChangeStatusToLostWithReason(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	lead := newLeadInStatus(t, entity.StatusAttended)
	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(nil)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status:          entity.StatusLost,
		LossReason:      entity.LossReasonPrecoAlto,
		LossDescription: "Cliente achou caro",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusLost, updated.Status)
	assert.NotNil(t, updated.Loss)
	assert.Equal(t, entity.LossReasonPrecoAlto, updated.Loss.Reason)
	assert.Equal(t, "Cliente achou caro", updated.Loss.Description)
	mockRepo.AssertCalled(t, "Update", ctx, mock.Anything)
}

// TestChangeStatusToLostWithReasonOutsideCatalog
func TestChangeStatusToLostWithReasonOutsideCatalog(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	lead := newLeadInStatus(t, entity.StatusContacted)
	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status:     entity.StatusLost,
		LossReason: "ficou_caro",
	})

	assert.Error(t, err)
	assert.Nil(t, updated)

	var domainErr *usecase.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_LOSS_REASON", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Update")
}

// TestChangeStatusOutOfLostClearsLossFields - um lead perdido pode
// voltar para o funil; motivo e descrição são apagados.
func TestChangeStatusOutOfLostClearsLossFields(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	lead := newLeadInStatus(t, entity.StatusLost)
	assert.NotNil(t, lead.Loss)

	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(nil)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status: entity.StatusScheduled,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusScheduled, updated.Status)
	assert.Nil(t, updated.Loss)
}

// TestChangeStatusIdempotent - reaplicar o status atual só atualiza o
// updated_at, sem mexer no restante do registro.
func TestChangeStatusIdempotent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	lead := newLeadInStatus(t, entity.StatusContacted)
	before := lead.UpdatedAt

	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(nil)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status: entity.StatusContacted,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusContacted, updated.Status)
	assert.True(t, updated.UpdatedAt.After(before) || updated.UpdatedAt.Equal(before))
	mockRepo.AssertCalled(t, "Update", ctx, mock.Anything)
}

func TestChangeStatusInvalidStatus(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", "lead-123", usecase.ChangeLeadStatusInput{
		Status: "archived",
	})

	assert.Error(t, err)
	assert.Nil(t, updated)

	var domainErr *usecase.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	mockRepo.AssertNotCalled(t, "FindByID")
}

func TestChangeStatusLeadNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", ctx, "org-1", "lead-999").Return(nil, entity.ErrLeadNotFound)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", "lead-999", usecase.ChangeLeadStatusInput{
		Status: entity.StatusContacted,
	})

	assert.Error(t, err)
	assert.Nil(t, updated)

	var domainErr *usecase.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "LEAD_NOT_FOUND", domainErr.Code)
}

// TestChangeStatusSoftDeletedLead - lead marcado como removido se
// comporta como inexistente.
func TestChangeStatusSoftDeletedLead(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	lead := newLeadInStatus(t, entity.StatusNew)
	lead.Deleted = true
	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status: entity.StatusContacted,
	})

	assert.Error(t, err)
	assert.Nil(t, updated)

	var domainErr *usecase.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "LEAD_NOT_FOUND", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestChangeStatusDatabaseFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	lead := newLeadInStatus(t, entity.StatusNew)
	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(errors.New("connection reset"))

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, nil)

	updated, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status: entity.StatusSold,
	})

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, usecase.IsTechnicalError(err))
}

// TestChangeStatusInvalidatesCache - transição derruba as listagens e o
// dashboard cacheados do tenant.
func TestChangeStatusInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockCache := new(MockCachePort)

	lead := newLeadInStatus(t, entity.StatusNew)
	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(nil)
	mockCache.On("DeletePattern", ctx, "leads:org-1:*").Return(nil)
	mockCache.On("DeletePattern", ctx, "dashboard:org-1").Return(nil)

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, mockCache)

	_, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status: entity.StatusContacted,
	})

	assert.NoError(t, err)
	mockCache.AssertCalled(t, "DeletePattern", ctx, "leads:org-1:*")
	mockCache.AssertCalled(t, "DeletePattern", ctx, "dashboard:org-1")
}

// TestChangeStatusCacheFailureDoesNotFail - cache fora do ar não
// derruba a transição já persistida.
func TestChangeStatusCacheFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockCache := new(MockCachePort)

	lead := newLeadInStatus(t, entity.StatusNew)
	mockRepo.On("FindByID", ctx, "org-1", lead.ID).Return(lead, nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(nil)
	mockCache.On("DeletePattern", ctx, mock.Anything).Return(errors.New("redis down"))

	uc := usecase.NewChangeLeadStatusUseCase(mockRepo, mockCache)

	updated, err := uc.Execute(ctx, "org-1", lead.ID, usecase.ChangeLeadStatusInput{
		Status: entity.StatusContacted,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusContacted, updated.Status)
}
