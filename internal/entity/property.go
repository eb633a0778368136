package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrPropertyNotFound = errors.New("imóvel não encontrado")

const (
	PropertyAvailable = "available"
	PropertyReserved  = "reserved"
	PropertySold      = "sold"
)

// Value Object: Address
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

type Property struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	PriceCents     int64     `json:"price_cents"`
	Status         string    `json:"status"`
	Address        Address   `json:"address"`
	ImageURLs      []string  `json:"image_urls,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewProperty(orgID, title string, priceCents int64, address Address) (*Property, error) {
	p := &Property{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Title:          title,
		PriceCents:     priceCents,
		Status:         PropertyAvailable,
		Address:        address,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Property) Validate() error {
	if p.OrganizationID == "" {
		return errors.New("organization_id is required")
	}
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.PriceCents < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}

type PropertyRepositoryInterface interface {
	Create(ctx context.Context, p *Property) error
	FindByID(ctx context.Context, orgID, id string) (*Property, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*Property, error)
	Update(ctx context.Context, p *Property) error
	AddImageURL(ctx context.Context, orgID, id, url string) error
	Delete(ctx context.Context, orgID, id string) error
}
