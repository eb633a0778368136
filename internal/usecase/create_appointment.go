package usecase

import (
	"context"
	"log"
	"time"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
)

type CreateAppointmentUseCase struct {
	ApptRepo     entity.AppointmentRepositoryInterface
	LeadRepo     entity.LeadRepositoryInterface
	ClientRepo   entity.ClientRepositoryInterface
	EmailService EmailService
}

func NewCreateAppointmentUseCase(
	apptRepo entity.AppointmentRepositoryInterface,
	leadRepo entity.LeadRepositoryInterface,
	clientRepo entity.ClientRepositoryInterface,
	emailService EmailService,
) *CreateAppointmentUseCase {
	return &CreateAppointmentUseCase{
		ApptRepo:     apptRepo,
		LeadRepo:     leadRepo,
		ClientRepo:   clientRepo,
		EmailService: emailService,
	}
}

func (uc *CreateAppointmentUseCase) Execute(ctx context.Context, orgID string, input CreateAppointmentInput) (*entity.Appointment, error) {
	validationErrors := ValidateCreateAppointmentInput(input)
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

	startsAt, err := time.Parse(time.RFC3339, input.StartsAt)
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "starts_at must be ISO8601"}
	}

	// Um profissional não pode ter dois agendamentos no mesmo horário
	count, err := uc.ApptRepo.CountBySlot(ctx, orgID, input.ProfessionalID, startsAt)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to check slot: " + err.Error()}
	}
	if count > 0 {
		return nil, &DomainError{
			Code:    "SLOT_TAKEN",
			Message: entity.ErrSlotTaken.Error(),
		}
	}

	appointment := entity.NewAppointment(orgID, input.ProfessionalID, input.Procedure, startsAt, input.ValueCents)
	appointment.LeadID = input.LeadID
	appointment.ClientID = input.ClientID

	if err := uc.ApptRepo.Create(ctx, appointment); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist appointment: " + err.Error(),
		}
	}

	middleware.RecordAppointmentBooked()

	// Confirmação por email sai em background, sem segurar a resposta
	go uc.sendConfirmation(orgID, appointment)

	return appointment, nil
}

func (uc *CreateAppointmentUseCase) sendConfirmation(orgID string, a *entity.Appointment) {
	if uc.EmailService == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var name, email string
	if a.LeadID != "" {
		if lead, err := uc.LeadRepo.FindByID(ctx, orgID, a.LeadID); err == nil {
			name, email = lead.Name, lead.Email
		}
	} else if a.ClientID != "" {
		if client, err := uc.ClientRepo.FindByID(ctx, orgID, a.ClientID); err == nil {
			name, email = client.Name, client.Email
		}
	}

	if email == "" {
		return
	}

	if err := uc.EmailService.SendAppointmentConfirmation(email, name, a.Procedure, a.StartsAt); err != nil {
		log.Printf("⚠️ Email: falha ao enviar confirmação de agendamento para %s: %v", email, err)
	}
}
