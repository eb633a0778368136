package database

import (
	"context"
	"database/sql"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
)

type OrganizationRepository struct {
	DB *sql.DB
}

func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{DB: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *entity.Organization) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO organizations (id, name, created_at) VALUES ($1, $2, $3)`,
		o.ID, o.Name, o.CreatedAt,
	)
	return err
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*entity.Organization, error) {
	o := &entity.Organization{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM organizations WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.Name, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, o *entity.Organization) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE organizations SET name = $2 WHERE id = $1`,
		o.ID, o.Name,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrOrganizationNotFound
	}
	return nil
}
