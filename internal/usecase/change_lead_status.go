package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
)

// ChangeLeadStatusUseCase é o portão de transição do funil.
// Qualquer status pode virar qualquer status, com uma exceção: mover
// para "lost" exige um motivo do catálogo confirmado pelo usuário.
// Sem motivo, nada é gravado.
type ChangeLeadStatusUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Cache    CachePort
}

func NewChangeLeadStatusUseCase(leadRepo entity.LeadRepositoryInterface, cache CachePort) *ChangeLeadStatusUseCase {
	return &ChangeLeadStatusUseCase{
		LeadRepo: leadRepo,
		Cache:    cache,
	}
}

func (uc *ChangeLeadStatusUseCase) Execute(ctx context.Context, orgID, leadID string, input ChangeLeadStatusInput) (*entity.Lead, error) {
	if !entity.IsValidStatus(input.Status) {
		return nil, &DomainError{
			Code:    "INVALID_STATUS",
			Message: "status de pipeline inválido: " + input.Status,
		}
	}

	lead, err := uc.LeadRepo.FindByID(ctx, orgID, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead não encontrado"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load lead: " + err.Error()}
	}
	if lead.Deleted {
		return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead não encontrado"}
	}

	// Reaplicar o status atual é um no-op além do refresh do updated_at
	if input.Status == lead.Status && (input.Status != entity.StatusLost || input.LossReason == "") {
		lead.UpdatedAt = time.Now()
		if err := uc.LeadRepo.Update(ctx, lead); err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to touch lead: " + err.Error()}
		}
		uc.invalidateListings(ctx, orgID)
		return lead, nil
	}

	if input.Status == entity.StatusLost {
		// O registro só é tocado depois da confirmação com motivo.
		if err := lead.MarkLost(input.LossReason, input.LossDescription); err != nil {
			if errors.Is(err, entity.ErrLossReasonRequired) {
				return nil, &DomainError{
					Code:    "LOSS_REASON_REQUIRED",
					Message: "selecione um motivo de perda antes de confirmar",
				}
			}
			return nil, &DomainError{
				Code:    "INVALID_LOSS_REASON",
				Message: "motivo de perda fora do catálogo: " + input.LossReason,
			}
		}
	} else {
		if err := lead.SetStatus(input.Status); err != nil {
			return nil, &DomainError{Code: "INVALID_STATUS", Message: err.Error()}
		}
	}

	if err := uc.LeadRepo.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist status change: " + err.Error(),
		}
	}

	middleware.RecordLeadTransition(lead.Status)
	if lead.Status == entity.StatusLost {
		middleware.RecordLeadLost(lead.Loss.Reason)
	}

	uc.invalidateListings(ctx, orgID)
	return lead, nil
}

// invalidateListings derruba listagens e dashboards cacheados do tenant.
// Falha de cache não derruba a operação principal.
func (uc *ChangeLeadStatusUseCase) invalidateListings(ctx context.Context, orgID string) {
	if uc.Cache == nil {
		return
	}
	if err := uc.Cache.DeletePattern(ctx, "leads:"+orgID+":*"); err != nil {
		log.Printf("⚠️ Cache: falha ao invalidar listagens de %s: %v", orgID, err)
	}
	if err := uc.Cache.DeletePattern(ctx, "dashboard:"+orgID); err != nil {
		log.Printf("⚠️ Cache: falha ao invalidar dashboard de %s: %v", orgID, err)
	}
}
