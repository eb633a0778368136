package usecase

import (
	"context"
	"log"
	"time"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
	"github.com/rafaelcosta1/atende-crm/internal/infra/queue"
)

type CreateLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Queue    QueueProducerInterface
	Cache    CachePort
}

func NewCreateLeadUseCase(leadRepo entity.LeadRepositoryInterface, producer QueueProducerInterface, cache CachePort) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		LeadRepo: leadRepo,
		Queue:    producer,
		Cache:    cache,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, orgID string, input CreateLeadInput) (*CreateLeadOutput, error) {
	validationErrors := ValidateCreateLeadInput(input)
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

	lead, err := entity.NewLead(orgID, input.Name, input.Phone, input.Email, input.Source)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_LEAD", Message: err.Error()}
	}

	lead.Interest = input.Interest
	lead.BudgetCents = input.BudgetCents
	lead.Notes = input.Notes
	if input.Temperature != "" {
		lead.Temperature = input.Temperature
	}

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	middleware.RecordLeadCreated(lead.Source)

	// Webhook de automação (n8n) é fire-and-forget: falha na fila é
	// registrada e engolida, o lead já está salvo.
	if uc.Queue != nil {
		payload := queue.LeadCreatedPayload{
			LeadID:    lead.ID,
			Name:      lead.Name,
			Phone:     lead.Phone,
			Email:     lead.Email,
			Source:    lead.Source,
			Interest:  lead.Interest,
			Budget:    lead.BudgetCents,
			Notes:     lead.Notes,
			Timestamp: time.Now().Unix(),
		}
		if err := uc.Queue.PublishLeadCreated(ctx, payload); err != nil {
			log.Printf("⚠️ Webhook: falha ao enfileirar lead.created para %s: %v", lead.ID, err)
		}
	}

	if uc.Cache != nil {
		if err := uc.Cache.DeletePattern(ctx, "leads:"+orgID+":*"); err != nil {
			log.Printf("⚠️ Cache: falha ao invalidar listagens de %s: %v", orgID, err)
		}
	}

	return &CreateLeadOutput{
		ID:     lead.ID,
		Status: lead.Status,
		Msg:    "Lead cadastrado com sucesso!",
	}, nil
}
