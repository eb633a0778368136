package database

import (
	"context"
	"database/sql"

	"github.com/rafaelcosta1/atende-crm/internal/entity"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	query := `
		INSERT INTO messages (id, organization_id, lead_id, phone, body, media_url, media_type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		m.ID,
		m.OrganizationID,
		m.LeadID,
		m.Phone,
		nullString(m.Body),
		nullString(m.MediaURL),
		nullString(m.MediaType),
		m.Status,
		m.CreatedAt,
	)
	return err
}

func (r *MessageRepository) ListByLead(ctx context.Context, orgID, leadID string) ([]*entity.Message, error) {
	query := `
		SELECT id, organization_id, lead_id, phone, COALESCE(body, ''),
			COALESCE(media_url, ''), COALESCE(media_type, ''), status, created_at
		FROM messages
		WHERE organization_id = $1 AND lead_id = $2
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, orgID, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		m := &entity.Message{}
		if err := rows.Scan(
			&m.ID,
			&m.OrganizationID,
			&m.LeadID,
			&m.Phone,
			&m.Body,
			&m.MediaURL,
			&m.MediaType,
			&m.Status,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) UpdateStatus(ctx context.Context, orgID, id, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE messages SET status = $3 WHERE id = $1 AND organization_id = $2`,
		id, orgID, status,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrMessageNotFound
	}
	return nil
}

// Delete remove a linha tentativa quando a entrega falha (rollback da
// mutação otimista).
func (r *MessageRepository) Delete(ctx context.Context, orgID, id string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM messages WHERE id = $1 AND organization_id = $2`,
		id, orgID,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrMessageNotFound
	}
	return nil
}
