package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, organization_id, lead_id, client_id, professional_id,
			procedure, starts_at, status, value_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.OrganizationID,
		nullString(a.LeadID),
		nullString(a.ClientID),
		a.ProfessionalID,
		a.Procedure,
		a.StartsAt,
		a.Status,
		a.ValueCents,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentRepository) FindByID(ctx context.Context, orgID, id string) (*entity.Appointment, error) {
	query := `
		SELECT id, organization_id, COALESCE(lead_id, ''), COALESCE(client_id, ''),
			professional_id, procedure, starts_at, status, value_cents, created_at, updated_at
		FROM appointments
		WHERE id = $1 AND organization_id = $2
	`

	a := &entity.Appointment{}
	err := r.DB.QueryRowContext(ctx, query, id, orgID).Scan(
		&a.ID,
		&a.OrganizationID,
		&a.LeadID,
		&a.ClientID,
		&a.ProfessionalID,
		&a.Procedure,
		&a.StartsAt,
		&a.Status,
		&a.ValueCents,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) ListByOrganization(ctx context.Context, orgID string, from, to time.Time) ([]*entity.Appointment, error) {
	query := `
		SELECT id, organization_id, COALESCE(lead_id, ''), COALESCE(client_id, ''),
			professional_id, procedure, starts_at, status, value_cents, created_at, updated_at
		FROM appointments
		WHERE organization_id = $1 AND starts_at >= $2 AND starts_at < $3
		ORDER BY starts_at
	`

	rows, err := r.DB.QueryContext(ctx, query, orgID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []*entity.Appointment
	for rows.Next() {
		a := &entity.Appointment{}
		if err := rows.Scan(
			&a.ID,
			&a.OrganizationID,
			&a.LeadID,
			&a.ClientID,
			&a.ProfessionalID,
			&a.Procedure,
			&a.StartsAt,
			&a.Status,
			&a.ValueCents,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, orgID, id, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE appointments SET status = $3, updated_at = NOW() WHERE id = $1 AND organization_id = $2`,
		id, orgID, status,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrAppointmentNotFound
	}
	return nil
}

// CountBySlot conta agendamentos ativos do profissional no horário exato.
// Agendamentos cancelados liberam o slot.
func (r *AppointmentRepository) CountBySlot(ctx context.Context, orgID, professionalID string, startsAt time.Time) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM appointments
		 WHERE organization_id = $1 AND professional_id = $2 AND starts_at = $3
		   AND status != 'cancelled'`,
		orgID, professionalID, startsAt,
	).Scan(&count)
	return count, err
}

func (r *AppointmentRepository) SumRevenue(ctx context.Context, orgID string, from, to time.Time) (int64, error) {
	var total int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(value_cents), 0) FROM appointments
		 WHERE organization_id = $1 AND status = 'completed'
		   AND starts_at >= $2 AND starts_at < $3`,
		orgID, from, to,
	).Scan(&total)
	return total, err
}
