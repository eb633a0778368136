package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrClientNotFound = errors.New("cliente não encontrado")

// Entidade: Client (lead convertido)
type Client struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	LeadID         string    `json:"lead_id,omitempty"` // Origem da conversão, se houver
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	BirthDate      string    `json:"birth_date,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewClient(orgID, name, phone, email string) (*Client, error) {
	client := &Client{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           name,
		Phone:          phone,
		Email:          email,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *Client) Validate() error {
	if c.OrganizationID == "" {
		return errors.New("organization_id is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type ClientRepositoryInterface interface {
	Create(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, orgID, id string) (*Client, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, orgID, id string) error
}
