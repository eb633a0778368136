package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, organization_id, name, phone, email, source, interest,
			budget_cents, notes, status, temperature, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.OrganizationID,
		lead.Name,
		nullString(lead.Phone),
		nullString(lead.Email),
		nullString(lead.Source),
		nullString(lead.Interest),
		lead.BudgetCents,
		nullString(lead.Notes),
		lead.Status,
		lead.Temperature,
		lead.Deleted,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	if err != nil {
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, orgID, id string) (*entity.Lead, error) {
	query := `
		SELECT id, organization_id, name, COALESCE(phone, ''), COALESCE(email, ''),
			COALESCE(source, ''), COALESCE(interest, ''), budget_cents, COALESCE(notes, ''),
			status, temperature, loss_reason, loss_description, deleted, created_at, updated_at
		FROM leads
		WHERE id = $1 AND organization_id = $2
	`

	lead := &entity.Lead{}
	var lossReason, lossDescription sql.NullString

	err := r.DB.QueryRowContext(ctx, query, id, orgID).Scan(
		&lead.ID,
		&lead.OrganizationID,
		&lead.Name,
		&lead.Phone,
		&lead.Email,
		&lead.Source,
		&lead.Interest,
		&lead.BudgetCents,
		&lead.Notes,
		&lead.Status,
		&lead.Temperature,
		&lossReason,
		&lossDescription,
		&lead.Deleted,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	if lossReason.Valid {
		lead.Loss = &entity.LossInfo{
			Reason:      lossReason.String,
			Description: lossDescription.String,
		}
	}

	return lead, nil
}

func (r *LeadRepository) ListByOrganization(ctx context.Context, orgID, status string) ([]*entity.Lead, error) {
	query := `
		SELECT id, organization_id, name, COALESCE(phone, ''), COALESCE(email, ''),
			COALESCE(source, ''), COALESCE(interest, ''), budget_cents, COALESCE(notes, ''),
			status, temperature, loss_reason, loss_description, deleted, created_at, updated_at
		FROM leads
		WHERE organization_id = $1 AND deleted = false
	`
	args := []interface{}{orgID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead := &entity.Lead{}
		var lossReason, lossDescription sql.NullString

		if err := rows.Scan(
			&lead.ID,
			&lead.OrganizationID,
			&lead.Name,
			&lead.Phone,
			&lead.Email,
			&lead.Source,
			&lead.Interest,
			&lead.BudgetCents,
			&lead.Notes,
			&lead.Status,
			&lead.Temperature,
			&lossReason,
			&lossDescription,
			&lead.Deleted,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if lossReason.Valid {
			lead.Loss = &entity.LossInfo{
				Reason:      lossReason.String,
				Description: lossDescription.String,
			}
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// Update grava o lead inteiro, inclusive os campos de perda. Quando o
// lead não está perdido, loss_reason/loss_description vão como NULL,
// garantindo o invariante também na persistência.
func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET name = $3, phone = $4, email = $5, source = $6, interest = $7,
			budget_cents = $8, notes = $9, status = $10, temperature = $11,
			loss_reason = $12, loss_description = $13, deleted = $14, updated_at = $15
		WHERE id = $1 AND organization_id = $2
	`

	var lossReason, lossDescription *string
	if lead.Loss != nil {
		lossReason = &lead.Loss.Reason
		lossDescription = nullString(lead.Loss.Description)
	}

	result, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.OrganizationID,
		lead.Name,
		nullString(lead.Phone),
		nullString(lead.Email),
		nullString(lead.Source),
		nullString(lead.Interest),
		lead.BudgetCents,
		nullString(lead.Notes),
		lead.Status,
		lead.Temperature,
		lossReason,
		lossDescription,
		lead.Deleted,
		lead.UpdatedAt,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

func (r *LeadRepository) SoftDelete(ctx context.Context, orgID, id string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET deleted = true, updated_at = NOW() WHERE id = $1 AND organization_id = $2`,
		id, orgID,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, orgID, id string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM leads WHERE id = $1 AND organization_id = $2`,
		id, orgID,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) CountByStatus(ctx context.Context, orgID string) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM leads WHERE organization_id = $1 AND deleted = false GROUP BY status`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *LeadRepository) CountLossReasons(ctx context.Context, orgID string) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT loss_reason, COUNT(*)
		 FROM leads
		 WHERE organization_id = $1 AND status = 'lost' AND loss_reason IS NOT NULL
		 GROUP BY loss_reason`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var reason string
		var count int
		if err := rows.Scan(&reason, &count); err != nil {
			return nil, err
		}
		counts[reason] = count
	}
	return counts, rows.Err()
}
