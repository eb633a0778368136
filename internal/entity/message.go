package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMessageNotFound = errors.New("mensagem não encontrada")

// Ciclo de vida da mutação otimista: pending -> sent | (removida no rollback)
const (
	MessagePending = "pending"
	MessageSent    = "sent"
	MessageFailed  = "failed"
)

type Message struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	LeadID         string    `json:"lead_id"`
	Phone          string    `json:"phone"`
	Body           string    `json:"body,omitempty"`
	MediaURL       string    `json:"media_url,omitempty"`
	MediaType      string    `json:"media_type,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewMessage(orgID, leadID, phone, body string) *Message {
	return &Message{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		LeadID:         leadID,
		Phone:          phone,
		Body:           body,
		Status:         MessagePending,
		CreatedAt:      time.Now(),
	}
}

type MessageRepositoryInterface interface {
	Create(ctx context.Context, m *Message) error
	ListByLead(ctx context.Context, orgID, leadID string) ([]*Message, error)
	UpdateStatus(ctx context.Context, orgID, id, status string) error
	Delete(ctx context.Context, orgID, id string) error
}
