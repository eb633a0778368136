package database

import (
	"context"
	"database/sql"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, organization_id, lead_id, name, phone, email, birth_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.OrganizationID,
		nullString(c.LeadID),
		c.Name,
		nullString(c.Phone),
		nullString(c.Email),
		nullString(c.BirthDate),
		nullString(c.Notes),
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *ClientRepository) FindByID(ctx context.Context, orgID, id string) (*entity.Client, error) {
	query := `
		SELECT id, organization_id, COALESCE(lead_id, ''), name, COALESCE(phone, ''),
			COALESCE(email, ''), COALESCE(birth_date, ''), COALESCE(notes, ''), created_at, updated_at
		FROM clients
		WHERE id = $1 AND organization_id = $2
	`

	c := &entity.Client{}
	err := r.DB.QueryRowContext(ctx, query, id, orgID).Scan(
		&c.ID,
		&c.OrganizationID,
		&c.LeadID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.BirthDate,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClientRepository) ListByOrganization(ctx context.Context, orgID string) ([]*entity.Client, error) {
	query := `
		SELECT id, organization_id, COALESCE(lead_id, ''), name, COALESCE(phone, ''),
			COALESCE(email, ''), COALESCE(birth_date, ''), COALESCE(notes, ''), created_at, updated_at
		FROM clients
		WHERE organization_id = $1
		ORDER BY name
	`

	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		c := &entity.Client{}
		if err := rows.Scan(
			&c.ID,
			&c.OrganizationID,
			&c.LeadID,
			&c.Name,
			&c.Phone,
			&c.Email,
			&c.BirthDate,
			&c.Notes,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE clients SET name = $3, phone = $4, email = $5, birth_date = $6, notes = $7, updated_at = NOW()
		 WHERE id = $1 AND organization_id = $2`,
		c.ID, c.OrganizationID, c.Name, nullString(c.Phone), nullString(c.Email),
		nullString(c.BirthDate), nullString(c.Notes),
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, orgID, id string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM clients WHERE id = $1 AND organization_id = $2`,
		id, orgID,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrClientNotFound
	}
	return nil
}
