package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
)

type PropertyRepository struct {
	DB *sql.DB
}

func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	query := `
		INSERT INTO properties (id, organization_id, title, description, price_cents, status,
			street, number, complement, district, city, state, zip_code, image_urls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.OrganizationID,
		p.Title,
		nullString(p.Description),
		p.PriceCents,
		p.Status,
		nullString(p.Address.Street),
		nullString(p.Address.Number),
		nullString(p.Address.Complement),
		nullString(p.Address.District),
		nullString(p.Address.City),
		nullString(p.Address.State),
		nullString(p.Address.ZipCode),
		pq.Array(p.ImageURLs),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PropertyRepository) FindByID(ctx context.Context, orgID, id string) (*entity.Property, error) {
	query := `
		SELECT id, organization_id, title, COALESCE(description, ''), price_cents, status,
			COALESCE(street, ''), COALESCE(number, ''), COALESCE(complement, ''),
			COALESCE(district, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip_code, ''),
			image_urls, created_at, updated_at
		FROM properties
		WHERE id = $1 AND organization_id = $2
	`

	p := &entity.Property{}
	err := r.DB.QueryRowContext(ctx, query, id, orgID).Scan(
		&p.ID,
		&p.OrganizationID,
		&p.Title,
		&p.Description,
		&p.PriceCents,
		&p.Status,
		&p.Address.Street,
		&p.Address.Number,
		&p.Address.Complement,
		&p.Address.District,
		&p.Address.City,
		&p.Address.State,
		&p.Address.ZipCode,
		pq.Array(&p.ImageURLs),
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepository) ListByOrganization(ctx context.Context, orgID string) ([]*entity.Property, error) {
	query := `
		SELECT id, organization_id, title, COALESCE(description, ''), price_cents, status,
			COALESCE(street, ''), COALESCE(number, ''), COALESCE(complement, ''),
			COALESCE(district, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip_code, ''),
			image_urls, created_at, updated_at
		FROM properties
		WHERE organization_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*entity.Property
	for rows.Next() {
		p := &entity.Property{}
		if err := rows.Scan(
			&p.ID,
			&p.OrganizationID,
			&p.Title,
			&p.Description,
			&p.PriceCents,
			&p.Status,
			&p.Address.Street,
			&p.Address.Number,
			&p.Address.Complement,
			&p.Address.District,
			&p.Address.City,
			&p.Address.State,
			&p.Address.ZipCode,
			pq.Array(&p.ImageURLs),
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) Update(ctx context.Context, p *entity.Property) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE properties
		 SET title = $3, description = $4, price_cents = $5, status = $6,
			street = $7, number = $8, complement = $9, district = $10,
			city = $11, state = $12, zip_code = $13, updated_at = NOW()
		 WHERE id = $1 AND organization_id = $2`,
		p.ID, p.OrganizationID, p.Title, nullString(p.Description), p.PriceCents, p.Status,
		nullString(p.Address.Street), nullString(p.Address.Number), nullString(p.Address.Complement),
		nullString(p.Address.District), nullString(p.Address.City), nullString(p.Address.State),
		nullString(p.Address.ZipCode),
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) AddImageURL(ctx context.Context, orgID, id, url string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE properties SET image_urls = array_append(image_urls, $3), updated_at = NOW()
		 WHERE id = $1 AND organization_id = $2`,
		id, orgID, url,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, orgID, id string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM properties WHERE id = $1 AND organization_id = $2`,
		id, orgID,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrPropertyNotFound
	}
	return nil
}
