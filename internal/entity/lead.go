package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status do pipeline. "lost" é terminal na UI, mas o funil não impõe
// ordem (um lead pode voltar de "sold" para "new").
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusScheduled = "scheduled"
	StatusAttended  = "attended"
	StatusSold      = "sold"
	StatusLost      = "lost"
)

// Temperatura do lead (classificação comercial)
const (
	TemperatureCold = "cold"
	TemperatureWarm = "warm"
	TemperatureHot  = "hot"
)

// Catálogo fixo de motivos de perda
const (
	LossReasonPrecoAlto      = "preco_alto"
	LossReasonDistancia      = "distancia"
	LossReasonConcorrente    = "escolheu_concorrente"
	LossReasonSemResposta    = "sem_resposta"
	LossReasonInsatisfacao   = "insatisfacao_atendimento"
	LossReasonDesistiu       = "desistiu"
	LossReasonServicoAusente = "servico_nao_oferecido"
	LossReasonOutro          = "outro"
)

var (
	ErrLeadNotFound       = errors.New("lead não encontrado")
	ErrInvalidStatus      = errors.New("status de pipeline inválido")
	ErrInvalidLossReason  = errors.New("motivo de perda inválido")
	ErrLossReasonRequired = errors.New("motivo de perda é obrigatório para status lost")
)

// Value Object: LossInfo
// Só existe quando o lead está perdido. Regra central do funil:
// status == lost <=> Loss != nil
type LossInfo struct {
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`
}

type Lead struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Source         string    `json:"source,omitempty"`
	Interest       string    `json:"interest,omitempty"`
	BudgetCents    int64     `json:"budget_cents,omitempty"` // Em centavos, sem float
	Notes          string    `json:"notes,omitempty"`
	Status         string    `json:"status"`
	Temperature    string    `json:"temperature"`
	Loss           *LossInfo `json:"loss,omitempty"`
	Deleted        bool      `json:"deleted"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Factory
func NewLead(orgID, name, phone, email, source string) (*Lead, error) {
	lead := &Lead{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           name,
		Phone:          phone,
		Email:          email,
		Source:         source,
		Status:         StatusNew,
		Temperature:    TemperatureCold,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.OrganizationID == "" {
		return errors.New("organization_id is required")
	}
	if l.Name == "" {
		return errors.New("name is required")
	}
	if !IsValidStatus(l.Status) {
		return ErrInvalidStatus
	}
	// Invariante: campos de perda existem se e somente se o lead está perdido
	if l.Status == StatusLost && l.Loss == nil {
		return ErrLossReasonRequired
	}
	if l.Status != StatusLost && l.Loss != nil {
		return errors.New("loss fields must be empty when lead is not lost")
	}
	if l.Loss != nil && !IsValidLossReason(l.Loss.Reason) {
		return ErrInvalidLossReason
	}
	return nil
}

// MarkLost aplica a transição para lost exigindo um motivo do catálogo.
func (l *Lead) MarkLost(reason, description string) error {
	if reason == "" {
		return ErrLossReasonRequired
	}
	if !IsValidLossReason(reason) {
		return ErrInvalidLossReason
	}
	l.Status = StatusLost
	l.Loss = &LossInfo{Reason: reason, Description: description}
	l.UpdatedAt = time.Now()
	return nil
}

// SetStatus aplica qualquer transição que não seja para lost,
// limpando os campos de perda de uma marcação anterior.
func (l *Lead) SetStatus(status string) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	if status == StatusLost {
		return ErrLossReasonRequired
	}
	l.Status = status
	l.Loss = nil
	l.UpdatedAt = time.Now()
	return nil
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusContacted, StatusScheduled, StatusAttended, StatusSold, StatusLost:
		return true
	}
	return false
}

func IsValidLossReason(reason string) bool {
	switch reason {
	case LossReasonPrecoAlto, LossReasonDistancia, LossReasonConcorrente,
		LossReasonSemResposta, LossReasonInsatisfacao, LossReasonDesistiu,
		LossReasonServicoAusente, LossReasonOutro:
		return true
	}
	return false
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, orgID, id string) (*Lead, error)
	ListByOrganization(ctx context.Context, orgID, status string) ([]*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	SoftDelete(ctx context.Context, orgID, id string) error
	Delete(ctx context.Context, orgID, id string) error
	CountByStatus(ctx context.Context, orgID string) (map[string]int, error)
	CountLossReasons(ctx context.Context, orgID string) (map[string]int, error)
}
