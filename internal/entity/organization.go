package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errors.New("usuário não encontrado")
	ErrNotAllowed           = errors.New("operação não permitida para este papel")
	ErrEmailAlreadyUsed     = errors.New("email já cadastrado nesta organização")
	ErrOrganizationNotFound = errors.New("organização não encontrada")
)

const (
	RoleAdmin     = "admin"
	RoleAtendente = "atendente"
	RoleCorretor  = "corretor"
)

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewOrganization(name string) (*Organization, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	return &Organization{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

type OrganizationRepositoryInterface interface {
	Create(ctx context.Context, o *Organization) error
	FindByID(ctx context.Context, id string) (*Organization, error)
	Update(ctx context.Context, o *Organization) error
}

// Entidade: User (membro da equipe, escopado pela organização)
type User struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewUser(orgID, name, email, role string) (*User, error) {
	u := &User{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           name,
		Email:          email,
		Role:           role,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	if u.OrganizationID == "" {
		return errors.New("organization_id is required")
	}
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if !IsValidRole(u.Role) {
		return errors.New("role must be admin, atendente or corretor")
	}
	return nil
}

// Apenas admin pode remover registros em definitivo
func (u *User) CanHardDelete() bool {
	return u.Role == RoleAdmin
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAtendente, RoleCorretor:
		return true
	}
	return false
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, orgID, id string) (*User, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, orgID, id string) error
}
