package usecase

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
)

const dashboardCacheTTL = 60 * time.Second

// DashboardUseCase agrega o funil do tenant: leads por status, motivos
// de perda e receita de agendamentos do período. O resultado fica 60s
// no Redis; o portão de status invalida na transição.
type DashboardUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	ApptRepo entity.AppointmentRepositoryInterface
	Cache    CachePort
}

func NewDashboardUseCase(leadRepo entity.LeadRepositoryInterface, apptRepo entity.AppointmentRepositoryInterface, cache CachePort) *DashboardUseCase {
	return &DashboardUseCase{
		LeadRepo: leadRepo,
		ApptRepo: apptRepo,
		Cache:    cache,
	}
}

func (uc *DashboardUseCase) Execute(ctx context.Context, orgID string, from, to time.Time) (*DashboardOutput, error) {
	cacheKey := "dashboard:" + orgID

	if uc.Cache != nil {
		if cached, err := uc.Cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var out DashboardOutput
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return &out, nil
			}
		}
	}

	byStatus, err := uc.LeadRepo.CountByStatus(ctx, orgID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to aggregate leads: " + err.Error()}
	}

	lossReasons, err := uc.LeadRepo.CountLossReasons(ctx, orgID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to aggregate loss reasons: " + err.Error()}
	}

	revenue, err := uc.ApptRepo.SumRevenue(ctx, orgID, from, to)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to aggregate revenue: " + err.Error()}
	}

	out := &DashboardOutput{
		LeadsByStatus: byStatus,
		LossReasons:   lossReasons,
		RevenueCents:  revenue,
		GeneratedAt:   time.Now().Format(time.RFC3339),
	}

	if uc.Cache != nil {
		if body, err := json.Marshal(out); err == nil {
			if err := uc.Cache.Set(ctx, cacheKey, string(body), dashboardCacheTTL); err != nil {
				log.Printf("⚠️ Cache: falha ao gravar dashboard de %s: %v", orgID, err)
			}
		}
	}

	return out, nil
}
