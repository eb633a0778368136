package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Phone) == "" && strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"phone", "phone or email is required"})
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Temperature != "" && !isValidTemperature(input.Temperature) {
		errors = append(errors, ValidationError{"temperature", "must be cold, warm or hot"})
	}

	if input.BudgetCents < 0 {
		errors = append(errors, ValidationError{"budget_cents", "must not be negative"})
	}

	return errors
}

func ValidateCreateAppointmentInput(input CreateAppointmentInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.ProfessionalID) == "" {
		errors = append(errors, ValidationError{"professional_id", "is required"})
	}

	if strings.TrimSpace(input.Procedure) == "" {
		errors = append(errors, ValidationError{"procedure", "is required"})
	}

	if strings.TrimSpace(input.StartsAt) == "" {
		errors = append(errors, ValidationError{"starts_at", "is required"})
	} else if !isValidDateTime(input.StartsAt) {
		errors = append(errors, ValidationError{"starts_at", "must be a valid ISO8601 datetime"})
	}

	if input.LeadID == "" && input.ClientID == "" {
		errors = append(errors, ValidationError{"lead_id", "lead_id or client_id is required"})
	}

	if input.ValueCents < 0 {
		errors = append(errors, ValidationError{"value_cents", "must not be negative"})
	}

	return errors
}

func ValidateSendMessageInput(input SendMessageInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errors = append(errors, ValidationError{"lead_id", "is required"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.Body) == "" && strings.TrimSpace(input.MediaURL) == "" {
		errors = append(errors, ValidationError{"message", "body or media_url is required"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	// Fixo (10) ou celular (11), com DDD. Aceita também E.164 com código do país.
	return len(cleaned) >= 10 && len(cleaned) <= 13
}

func isValidTemperature(temp string) bool {
	switch temp {
	case entity.TemperatureCold, entity.TemperatureWarm, entity.TemperatureHot:
		return true
	}
	return false
}

func isValidDateTime(dateStr string) bool {
	if _, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339Nano, dateStr); err == nil {
		return true
	}
	return false
}
