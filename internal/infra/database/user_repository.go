package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, organization_id, name, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		u.ID,
		u.OrganizationID,
		u.Name,
		u.Email,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyUsed
		}
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, orgID, id string) (*entity.User, error) {
	query := `
		SELECT id, organization_id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1 AND organization_id = $2
	`

	u := &entity.User{}
	err := r.DB.QueryRowContext(ctx, query, id, orgID).Scan(
		&u.ID,
		&u.OrganizationID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) ListByOrganization(ctx context.Context, orgID string) ([]*entity.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, organization_id, name, email, role, created_at, updated_at
		 FROM users WHERE organization_id = $1 ORDER BY name`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(
			&u.ID,
			&u.OrganizationID,
			&u.Name,
			&u.Email,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name = $3, email = $4, role = $5, updated_at = NOW()
		 WHERE id = $1 AND organization_id = $2`,
		u.ID, u.OrganizationID, u.Name, u.Email, u.Role,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, orgID, id string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1 AND organization_id = $2`,
		id, orgID,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}
