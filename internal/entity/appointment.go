package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

var (
	ErrAppointmentNotFound = errors.New("agendamento não encontrado")
	ErrSlotTaken           = errors.New("profissional já possui agendamento neste horário")
)

type Appointment struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	LeadID         string    `json:"lead_id,omitempty"`
	ClientID       string    `json:"client_id,omitempty"`
	ProfessionalID string    `json:"professional_id"`
	Procedure      string    `json:"procedure"`
	StartsAt       time.Time `json:"starts_at"`
	Status         string    `json:"status"` // scheduled, completed, cancelled, no_show
	ValueCents     int64     `json:"value_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAppointment cria uma nova instância com ID e Timestamps
func NewAppointment(orgID, professionalID, procedure string, startsAt time.Time, valueCents int64) *Appointment {
	return &Appointment{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ProfessionalID: professionalID,
		Procedure:      procedure,
		StartsAt:       startsAt,
		Status:         AppointmentScheduled,
		ValueCents:     valueCents,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

type AppointmentRepositoryInterface interface {
	Create(ctx context.Context, a *Appointment) error
	FindByID(ctx context.Context, orgID, id string) (*Appointment, error)
	ListByOrganization(ctx context.Context, orgID string, from, to time.Time) ([]*Appointment, error)
	UpdateStatus(ctx context.Context, orgID, id, status string) error
	CountBySlot(ctx context.Context, orgID, professionalID string, startsAt time.Time) (int, error)
	SumRevenue(ctx context.Context, orgID string, from, to time.Time) (int64, error)
}
